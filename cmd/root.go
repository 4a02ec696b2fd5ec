// Copyright © 2024 The d64 authors.

package cmd

import (
	"fmt"
	"os"

	"github.com/cbmtools/d64/config"
	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "d64tool",
	Short: "Operate on Commodore 1541/1571 D64 disk images and their contents",
	Long: `d64tool is a commandline tool for working with D64 disk images:
formatting, cataloging, adding and extracting files, and checking the
Block Availability Map against the directory.`,
}

func init() {
	config.Init(RootCmd)
}

// Execute adds all child commands to the root command and parses
// flags. Called once by main.main().
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}
