// Package main provides the talentsite command: the HTTP API server, the
// database tooling and the terminal front ends.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "talentsite",
	Short: "Recruitment consultancy site and back office",
	Long: `talentsite serves the public job board, talent bank and contact form, the
administrator back office API, and the LinkedIn profile generator.

Configuration is read from an optional JSON file (--config), then overlaid with
environment variables (a .env file in the working directory is loaded first).`,
	SilenceUsage: true,
}

var configPath string

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config.json file (environment variables override its values)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
