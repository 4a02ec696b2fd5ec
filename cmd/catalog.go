// Copyright © 2024 The d64 authors.

package cmd

import (
	"fmt"
	"os"

	"github.com/cbmtools/d64/d64"
	"github.com/spf13/cobra"
)

// catalogCmd represents the catalog command, used to list the files
// on a disk image.
var catalogCmd = &cobra.Command{
	Use:     "catalog",
	Aliases: []string{"cat", "ls"},
	Short:   "print a list of files",
	Long:    `Catalog a disk image.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runCatalog(args); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(-1)
		}
	},
}

func init() {
	RootCmd.AddCommand(catalogCmd)
}

func runCatalog(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: catalog <disk image>")
	}
	disk, err := d64.Load(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("0 \"%s\"\n", disk.DiskName())
	entries, err := disk.Directory()
	if err != nil {
		return err
	}
	for _, e := range entries {
		lock := " "
		if e.Type.Locked() {
			lock = "<"
		}
		fmt.Printf("%-4d %-16s %-3s%s\n", e.FileSize, e.Name, e.Type.Code(), lock)
	}
	fmt.Printf("%d blocks free.\n", disk.FreeSectorCount())
	return nil
}
