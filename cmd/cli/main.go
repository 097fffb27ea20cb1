package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/myrjola/snapsolve/cmd/cli/ask"
	"github.com/myrjola/snapsolve/cmd/cli/svg"
	"github.com/spf13/cobra"
)

func init() {
	// A missing .env file is fine, the environment can be set by other means.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	rootCmd.AddGroup(ask.Group)
	rootCmd.AddCommand(ask.Ask)
	rootCmd.AddGroup(svg.Group)
	rootCmd.AddCommand(svg.Clean)
}

var rootCmd = &cobra.Command{
	Use:  "snapsolve-cli",
	Long: `Command line utilities for Snapsolve https://github.com/myrjola/snapsolve`,
	Run: func(cmd *cobra.Command, args []string) {
		// Do Stuff Here
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
