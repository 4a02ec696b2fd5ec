// Copyright © 2024 The d64 authors.

package cmd

import (
	"fmt"
	"os"

	"github.com/cbmtools/d64/d64"
	"github.com/spf13/cobra"
)

// renameCmd represents the rename command, used to rename a file in
// place.
var renameCmd = &cobra.Command{
	Use:   "rename",
	Short: "rename a file",
	Long: `Rename a file.

rename disk-image.d64 OLDNAME NEWNAME
`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runRename(args); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(-1)
		}
	},
}

func init() {
	RootCmd.AddCommand(renameCmd)
}

func runRename(args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: rename <disk image> <old name> <new name>")
	}
	disk, err := d64.Load(args[0])
	if err != nil {
		return err
	}
	if err := disk.RenameFile(args[1], args[2]); err != nil {
		return err
	}
	return disk.Save(args[0])
}
