// Package main provides the entry point for the student counselling HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "counsel",
	Short: "Student counselling API server",
	Long:  "Counsel matches Indian students against a university catalog, ranks the candidates, and serves AI-backed admission analysis via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
