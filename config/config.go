// Copyright © 2024 The d64 authors.

// Package config loads d64tool's configuration, merging command-line
// flags, D64TOOL_-prefixed environment variables, and an optional
// .d64tool.yaml file, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config holds the settings shared across subcommands.
type Config struct {
	// DefaultDiskName is used by `format` when --name is not given.
	DefaultDiskName string
	// Tracks40 selects the 40-track DolphinDOS geometry by default.
	Tracks40 bool
	// VerifyLog names the file verify output is appended to, or ""
	// for stderr.
	VerifyLog string
}

var v = viper.New()

// Init registers the persistent flags shared by every subcommand on
// root, and binds them into viper alongside the D64TOOL_ environment
// namespace and an optional .d64tool.yaml in the working directory or
// the user's home directory.
func Init(root *cobra.Command) {
	root.PersistentFlags().String("name", "NEW DISK", "default disk name used by format")
	root.PersistentFlags().Bool("tracks40", false, "use 40-track DolphinDOS geometry")
	root.PersistentFlags().String("verify-log", "", "file to append verify findings to (default stderr)")

	v.BindPFlag("name", root.PersistentFlags().Lookup("name"))
	v.BindPFlag("tracks40", root.PersistentFlags().Lookup("tracks40"))
	v.BindPFlag("verify-log", root.PersistentFlags().Lookup("verify-log"))

	v.SetEnvPrefix("D64TOOL")
	v.AutomaticEnv()

	v.SetConfigName(".d64tool")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}
	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			fmt.Fprintf(os.Stderr, "warning: reading %s: %v\n", configPath(), err)
		}
	}
}

// Load returns the merged configuration. Call after Init and after
// cobra has parsed flags.
func Load() Config {
	return Config{
		DefaultDiskName: v.GetString("name"),
		Tracks40:        v.GetBool("tracks40"),
		VerifyLog:       v.GetString("verify-log"),
	}
}

func configPath() string {
	if used := v.ConfigFileUsed(); used != "" {
		return used
	}
	return filepath.Join(".", ".d64tool.yaml")
}
