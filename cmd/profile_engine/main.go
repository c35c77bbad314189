// Package main provides the CLI entry point for the profile engine.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "profile_engine",
	Short: "CV profile merge and preservation engine",
	Long:  "profile_engine accumulates extracted CV fragments into one durable profile per user: lenient fragment decoding, no-loss merging, sticky-field preservation, and a write-once merge history.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
