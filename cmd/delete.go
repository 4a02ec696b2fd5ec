// Copyright © 2024 The d64 authors.

package cmd

import (
	"fmt"
	"os"

	"github.com/cbmtools/d64/d64"
	"github.com/spf13/cobra"
)

var deleteMissingOK bool

// deleteCmd represents the delete command, used to remove a file.
var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "delete a file",
	Long: `Delete a file.

delete disk-image.d64 FILENAME
`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runDelete(args); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(-1)
		}
	},
}

func init() {
	RootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().BoolVarP(&deleteMissingOK, "missingok", "f", false, "don't consider deleting a nonexistent file an error")
}

func runDelete(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: delete <disk image> <filename>")
	}
	disk, err := d64.Load(args[0])
	if err != nil {
		return err
	}
	err = disk.RemoveFile(args[1])
	if err != nil {
		if d64.IsNotFound(err) && deleteMissingOK {
			return nil
		}
		return err
	}
	return disk.Save(args[0])
}
