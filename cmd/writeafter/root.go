package main

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "writeafter",
	Short: "writeafter runs and inspects delayed message delivery pools.",
	Long: `writeafter runs and inspects delayed message delivery pools. ` +
		`Currently, it supports running a scripted demo schedule against ` +
		`the wall clock.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
