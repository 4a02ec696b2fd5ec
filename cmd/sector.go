// Copyright © 2024 The d64 authors.

package cmd

import (
	"encoding/hex"
	"fmt"
	"os"
	"strconv"

	"github.com/cbmtools/d64/d64"
	"github.com/cbmtools/d64/helpers"
	"github.com/spf13/cobra"
)

// sectorCmd represents the sector command, used to dump or poke a
// single raw sector.
var sectorCmd = &cobra.Command{
	Use:   "sector",
	Short: "dump or write a single raw sector",
}

var sectorDumpCmd = &cobra.Command{
	Use:   "dump <disk image> <track> <sector>",
	Short: "hex-dump a raw sector",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runSectorDump(args); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(-1)
		}
	},
}

var sectorPokeCmd = &cobra.Command{
	Use:   "poke <disk image> <track> <sector> <256-byte source file>",
	Short: "overwrite a raw sector from a 256-byte host file",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runSectorPoke(args); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(-1)
		}
	},
}

func init() {
	RootCmd.AddCommand(sectorCmd)
	sectorCmd.AddCommand(sectorDumpCmd)
	sectorCmd.AddCommand(sectorPokeCmd)
}

func parseTrackSector(trackArg, sectorArg string) (byte, byte, error) {
	track, err := strconv.Atoi(trackArg)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid track %q: %v", trackArg, err)
	}
	sector, err := strconv.Atoi(sectorArg)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid sector %q: %v", sectorArg, err)
	}
	return byte(track), byte(sector), nil
}

func runSectorDump(args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: sector dump <disk image> <track> <sector>")
	}
	track, sector, err := parseTrackSector(args[1], args[2])
	if err != nil {
		return err
	}
	disk, err := d64.Load(args[0])
	if err != nil {
		return err
	}
	data, err := disk.ReadSector(track, sector)
	if err != nil {
		return err
	}
	fmt.Print(hex.Dump(data))
	return nil
}

func runSectorPoke(args []string) error {
	if len(args) != 4 {
		return fmt.Errorf("usage: sector poke <disk image> <track> <sector> <source file>")
	}
	track, sector, err := parseTrackSector(args[1], args[2])
	if err != nil {
		return err
	}
	data, err := helpers.FileContentsOrStdIn(args[3])
	if err != nil {
		return err
	}
	disk, err := d64.Load(args[0])
	if err != nil {
		return err
	}
	if err := disk.WriteSector(track, sector, data); err != nil {
		return err
	}
	return disk.Save(args[0])
}
