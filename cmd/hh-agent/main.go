// Package main provides the hh-agent command line: an interactive job-search
// session on hh.ru plus one-shot helpers.
package main

import (
	"fmt"
	"os"

	"go-hh-agent/internal/config"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "hh-agent",
	Short: "Interactive hh.ru job-search agent",
	Long:  "hh-agent turns a free-text goal into an hh.ru search, lists vacancies in a real browser session and prepares cover-letter responses.",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Path to the yaml config file")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
