// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/keepdown/internal/ledger"
)

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Inspect or reset the conversion ledger",
}

var ledgerListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the note paths recorded as converted",
	RunE: func(cmd *cobra.Command, args []string) error {
		led, err := ledger.Load(ledgerPath(cmd))
		if err != nil {
			return err
		}
		for _, p := range led.Entries() {
			fmt.Println(p)
		}
		fmt.Fprintf(os.Stderr, "%d note(s) recorded\n", led.Len())
		return nil
	},
}

var ledgerClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Reset the ledger so the next run reconverts everything",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ledgerPath(cmd)
		if err := ledger.New().Save(path); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "Cleared ledger:", path)
		return nil
	},
}

func ledgerPath(cmd *cobra.Command) string {
	if cmd.Flags().Changed("ledger") {
		path, _ := cmd.Flags().GetString("ledger")
		return path
	}
	return viper.GetString("ledger")
}

func init() {
	for _, c := range []*cobra.Command{ledgerListCmd, ledgerClearCmd} {
		c.Flags().String("ledger", "", "ledger file (default: processed.txt)")
		ledgerCmd.AddCommand(c)
	}
	rootCmd.AddCommand(ledgerCmd)
}
