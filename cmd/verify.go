// Copyright © 2024 The d64 authors.

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/cbmtools/d64/config"
	"github.com/cbmtools/d64/d64"
	"github.com/spf13/cobra"
)

var verifyFix bool

// verifyCmd represents the verify command, used to cross-check the
// BAM against directory reachability.
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "check the BAM against directory reachability",
	Run: func(cmd *cobra.Command, args []string) {
		ok, err := runVerify(args)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(-1)
		}
		if !ok {
			os.Exit(1)
		}
	},
}

func init() {
	RootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().BoolVar(&verifyFix, "fix", false, "repair mismatches and save the image")
}

func runVerify(args []string) (bool, error) {
	if len(args) != 1 {
		return false, fmt.Errorf("usage: verify <disk image>")
	}
	disk, err := d64.Load(args[0])
	if err != nil {
		return false, err
	}

	cfg := config.Load()
	var w io.Writer = os.Stderr
	if cfg.VerifyLog != "" {
		f, err := os.OpenFile(cfg.VerifyLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return false, err
		}
		defer f.Close()
		w = f
	}

	ok, err := disk.VerifyBAM(verifyFix, w)
	if err != nil {
		return false, err
	}
	if verifyFix {
		if err := disk.Save(args[0]); err != nil {
			return false, err
		}
	}
	return ok, nil
}
