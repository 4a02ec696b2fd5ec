// Copyright © 2024 The d64 authors.

package cmd

import (
	"fmt"
	"os"

	"github.com/cbmtools/d64/d64"
	"github.com/cbmtools/d64/helpers"
	"github.com/spf13/cobra"
)

var (
	putType    string // flag for file type
	putRecSize int    // flag for REL record size
	putLocked  bool   // flag for whether the new file should be locked
)

// putCmd represents the put command, used to add the raw contents of
// a host file to a disk image.
var putCmd = &cobra.Command{
	Use:   "put",
	Short: "add the raw contents of a file to a disk image",
	Long: `Add the raw contents of a host file to a disk image.

put disk-image.d64 FILENAME <name of host file with contents>
`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runPut(args); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(-1)
		}
	},
}

func init() {
	RootCmd.AddCommand(putCmd)
	putCmd.Flags().StringVarP(&putType, "type", "t", "PRG", "file type: DEL, SEQ, PRG, USR, or REL")
	putCmd.Flags().IntVarP(&putRecSize, "recsize", "r", 0, "REL record size (required for -t REL)")
	putCmd.Flags().BoolVarP(&putLocked, "locked", "l", false, "create the file locked")
}

func runPut(args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: put <disk image> <target filename> <source filename>")
	}
	code, err := parseTypeCode(putType)
	if err != nil {
		return err
	}
	disk, err := d64.Load(args[0])
	if err != nil {
		return err
	}
	contents, err := helpers.FileContentsOrStdIn(args[2])
	if err != nil {
		return err
	}
	if err := disk.AddFile(args[1], code, contents, byte(putRecSize), putLocked); err != nil {
		return err
	}
	return disk.Save(args[0])
}

func parseTypeCode(s string) (d64.TypeCode, error) {
	switch s {
	case "DEL":
		return d64.TypeDEL, nil
	case "SEQ":
		return d64.TypeSEQ, nil
	case "PRG":
		return d64.TypePRG, nil
	case "USR":
		return d64.TypeUSR, nil
	case "REL":
		return d64.TypeREL, nil
	default:
		return 0, fmt.Errorf("unknown file type %q: want DEL, SEQ, PRG, USR, or REL", s)
	}
}
