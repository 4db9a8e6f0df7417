// Package main provides the sdramsim command-line tool.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any
// subcommands.
var rootCmd = &cobra.Command{
	Use:   "sdramsim",
	Short: "sdramsim simulates the SDRAM controller and its device.",
	Long: `sdramsim runs the cycle-accurate SDRAM controller model ` +
		`against a behavioral device model, driving randomized traffic ` +
		`on both client ports plus a periodic refresh requester, and ` +
		`verifies every read against a software scoreboard.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
