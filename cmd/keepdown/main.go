// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the keepdown CLI.
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

// rootCmd is the base command for the keepdown CLI.
var rootCmd = &cobra.Command{
	Use:   "keepdown",
	Short: "Convert exported note archives into PDF and Markdown documents",
	Long: `keepdown converts exported note archives (Google-Keep-style JSON files)
into PDF and Markdown documents. A plain-text ledger records which input
files were already converted, so repeated runs only process new notes.

The convert subcommand runs the batch; ledger inspects or resets the
completion record.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./keepdown.yaml or ~/.config/keepdown/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("keepdown")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "keepdown"))
		}
	}

	viper.SetEnvPrefix("KEEPDOWN")
	viper.AutomaticEnv()

	viper.SetDefault("keep_dir", "keep")
	viper.SetDefault("out_dir", "generated")
	viper.SetDefault("ledger", "processed.txt")
	viper.SetDefault("backend", "pandoc")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
