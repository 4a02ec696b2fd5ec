// Copyright © 2024 The d64 authors.

package cmd

import (
	"fmt"
	"os"

	"github.com/cbmtools/d64/d64"
	"github.com/spf13/cobra"
)

// reorderCmd represents the reorder command, used to move named
// files to the front of the directory, in the given order.
var reorderCmd = &cobra.Command{
	Use:   "reorder",
	Short: "reorder the directory, putting named files first",
	Long: `Reorder the directory.

reorder disk-image.d64 FILENAME [FILENAME...]

Named files come first, in the order given; every other file keeps
its existing relative order after them. If the resulting order
matches the current one, the image is left unmodified.
`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runReorder(args); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(-1)
		}
	},
}

func init() {
	RootCmd.AddCommand(reorderCmd)
}

func runReorder(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: reorder <disk image> <filename> [filename...]")
	}
	disk, err := d64.Load(args[0])
	if err != nil {
		return err
	}
	changed, err := disk.ReorderByNames(args[1:])
	if err != nil {
		return err
	}
	if !changed {
		fmt.Println("no change")
		return nil
	}
	return disk.Save(args[0])
}
