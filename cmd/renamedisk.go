// Copyright © 2024 The d64 authors.

package cmd

import (
	"fmt"
	"os"

	"github.com/cbmtools/d64/d64"
	"github.com/spf13/cobra"
)

// renameDiskCmd represents the renamedisk command, used to overwrite
// the disk name field in the BAM.
var renameDiskCmd = &cobra.Command{
	Use:   "renamedisk",
	Short: "rename the disk",
	Long: `Rename the disk itself (the BAM's disk name field, not a file).

renamedisk disk-image.d64 NEWNAME
`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runRenameDisk(args); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(-1)
		}
	},
}

func init() {
	RootCmd.AddCommand(renameDiskCmd)
}

func runRenameDisk(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: renamedisk <disk image> <new disk name>")
	}
	disk, err := d64.Load(args[0])
	if err != nil {
		return err
	}
	disk.RenameDisk(args[1])
	return disk.Save(args[0])
}
