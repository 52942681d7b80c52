// Package main is the entry point for the creature-api server
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "creature-api",
	Short: "Creature economy API server",
	Long:  `creature-api serves the capture-and-trade economy: accounts, summons, captures, the collection, the market, and trades.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
