// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the archive-timeline CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the archive-timeline CLI.
var rootCmd = &cobra.Command{
	Use:   "archive-timeline",
	Short: "Build a timeline dataset from a IIIF photograph collection",
	Long: `archive-timeline reads a IIIF collection manifest, keeps the items whose
title names a year, fetches each item's manifest for its description and
full-size image, and writes a flat JSON list of timeline events.

The scrape subcommand runs the pipeline; catalog loads the resulting events
into a SQLite database and queries it by era.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./archive-timeline.yaml or ~/.config/archive-timeline/config.yaml)")
}

// initConfig reads an optional YAML config file. Environment variables are
// not consulted.
func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("archive-timeline")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "archive-timeline"))
		}
	}

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		fmt.Fprintf(os.Stderr, "warning: could not read config %s: %v\n", cfgFile, err)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
