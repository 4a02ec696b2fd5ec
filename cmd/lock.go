// Copyright © 2024 The d64 authors.

package cmd

import (
	"fmt"
	"os"

	"github.com/cbmtools/d64/d64"
	"github.com/spf13/cobra"
)

// lockCmd represents the lock command, used to set the locked bit on
// a file.
var lockCmd = &cobra.Command{
	Use:   "lock",
	Short: "lock a file",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runLockUnlock(args, true); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(-1)
		}
	},
}

// unlockCmd represents the unlock command, used to clear the locked
// bit on a file.
var unlockCmd = &cobra.Command{
	Use:   "unlock",
	Short: "unlock a file",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runLockUnlock(args, false); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(-1)
		}
	},
}

func init() {
	RootCmd.AddCommand(lockCmd)
	RootCmd.AddCommand(unlockCmd)
}

func runLockUnlock(args []string, locked bool) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: lock|unlock <disk image> <filename>")
	}
	disk, err := d64.Load(args[0])
	if err != nil {
		return err
	}
	if locked {
		err = disk.Lock(args[1])
	} else {
		err = disk.Unlock(args[1])
	}
	if err != nil {
		return err
	}
	return disk.Save(args[0])
}
