// Copyright © 2024 The d64 authors.

package cmd

import (
	"fmt"
	"os"

	"github.com/cbmtools/d64/config"
	"github.com/cbmtools/d64/d64"
	"github.com/spf13/cobra"
)

var formatName string

// formatCmd represents the format command, used to create a fresh
// disk image.
var formatCmd = &cobra.Command{
	Use:   "format",
	Short: "create a fresh, empty disk image",
	Long: `Format a fresh disk image.

format disk-image.d64
`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runFormat(args); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(-1)
		}
	},
}

func init() {
	RootCmd.AddCommand(formatCmd)
	formatCmd.Flags().StringVarP(&formatName, "name", "n", "", "disk name (defaults to the configured default)")
}

func runFormat(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: format <disk image>")
	}
	cfg := config.Load()
	name := formatName
	if name == "" {
		name = cfg.DefaultDiskName
	}
	disk, err := d64.Format(cfg.Tracks40, name)
	if err != nil {
		return err
	}
	return disk.Save(args[0])
}
