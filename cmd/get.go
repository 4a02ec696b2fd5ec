// Copyright © 2024 The d64 authors.

package cmd

import (
	"fmt"
	"os"

	"github.com/cbmtools/d64/d64"
	"github.com/cbmtools/d64/helpers"
	"github.com/spf13/cobra"
)

var getForce bool

// getCmd represents the get command, used to extract a file's raw
// contents to the host filesystem.
var getCmd = &cobra.Command{
	Use:   "get",
	Short: "extract a file's raw contents",
	Long: `Extract a file's raw contents to a host file ("-" for stdout).

get disk-image.d64 FILENAME [destination host file]

If the destination is omitted, it is derived from FILENAME plus a
type-derived suffix (.prg, .seq, .usr, .rel).
`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runGet(args); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(-1)
		}
	},
}

func init() {
	RootCmd.AddCommand(getCmd)
	getCmd.Flags().BoolVarP(&getForce, "force", "f", false, "overwrite an existing destination file")
}

func runGet(args []string) error {
	if len(args) != 2 && len(args) != 3 {
		return fmt.Errorf("usage: get <disk image> <source filename> [destination host file]")
	}
	disk, err := d64.Load(args[0])
	if err != nil {
		return err
	}
	dest := ""
	if len(args) == 3 {
		dest = args[2]
	} else {
		dest, err = disk.DefaultExtractName(args[1])
		if err != nil {
			return err
		}
	}
	contents, err := disk.ReadFile(args[1])
	if err != nil {
		return err
	}
	return helpers.WriteOutput(dest, contents, getForce)
}
