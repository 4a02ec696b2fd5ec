// Copyright © 2024 The d64 authors.

package cmd

import (
	"fmt"
	"os"

	"github.com/cbmtools/d64/d64"
	"github.com/spf13/cobra"
)

// compactCmd represents the compact command, used to repack the
// directory and free now-empty directory sectors.
var compactCmd = &cobra.Command{
	Use:   "compact",
	Short: "repack the directory, freeing empty directory sectors",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runCompact(args); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(-1)
		}
	},
}

func init() {
	RootCmd.AddCommand(compactCmd)
}

func runCompact(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: compact <disk image>")
	}
	disk, err := d64.Load(args[0])
	if err != nil {
		return err
	}
	if err := disk.CompactDirectory(); err != nil {
		return err
	}
	return disk.Save(args[0])
}
