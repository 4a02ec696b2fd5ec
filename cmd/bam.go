// Copyright © 2024 The d64 authors.

package cmd

import (
	"fmt"
	"os"

	"github.com/cbmtools/d64/d64"
	"github.com/spf13/cobra"
)

// bamCmd represents the bam command, used to print a summary of free
// space and the free-sector list.
var bamCmd = &cobra.Command{
	Use:   "bam",
	Short: "print the Block Availability Map summary",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runBAM(args); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(-1)
		}
	},
}

func init() {
	RootCmd.AddCommand(bamCmd)
}

func runBAM(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: bam <disk image>")
	}
	disk, err := d64.Load(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("disk name: %q\n", disk.DiskName())
	fmt.Printf("free sectors (excluding directory track): %d\n", disk.FreeSectorCount())
	for _, ts := range disk.FreeSectors() {
		fmt.Printf("  (%d,%d)\n", ts.Track, ts.Sector)
	}
	return nil
}
