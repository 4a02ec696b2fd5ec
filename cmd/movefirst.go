// Copyright © 2024 The d64 authors.

package cmd

import (
	"fmt"
	"os"

	"github.com/cbmtools/d64/d64"
	"github.com/spf13/cobra"
)

// moveFirstCmd represents the movefirst command, used to move a file
// to the first directory slot.
var moveFirstCmd = &cobra.Command{
	Use:   "movefirst",
	Short: "move a file to the first directory slot",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runMoveFirst(args); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(-1)
		}
	},
}

func init() {
	RootCmd.AddCommand(moveFirstCmd)
}

func runMoveFirst(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: movefirst <disk image> <filename>")
	}
	disk, err := d64.Load(args[0])
	if err != nil {
		return err
	}
	changed, err := disk.MoveToFront(args[1])
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	return disk.Save(args[0])
}
