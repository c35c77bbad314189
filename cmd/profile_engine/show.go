package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-profile-engine/internal/observability"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show a user's accumulated profile",
	RunE:  runShow,
}

var (
	showUser   string
	showJSON   bool
	showConfig string
)

func init() {
	showCmd.Flags().StringVarP(&showUser, "user", "u", "", "User ID (required)")
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Print the full record as JSON")
	showCmd.Flags().StringVarP(&showConfig, "config", "c", "", "Path to config JSON file")

	showCmd.MarkFlagRequired("user")

	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadCLIConfig(showConfig)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	engine, cleanup, err := buildEngine(ctx, cfg, false)
	if err != nil {
		return err
	}
	defer cleanup()

	record, err := engine.Profile(ctx, showUser)
	if err != nil {
		return err
	}
	if record == nil {
		fmt.Fprintf(os.Stdout, "No profile for user %s\n", showUser)
		return nil
	}

	if showJSON {
		out, err := json.MarshalIndent(record, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode record: %w", err)
		}
		fmt.Fprintln(os.Stdout, string(out))
		return nil
	}

	observability.NewPrinter(os.Stdout).PrintProfileSummary(record)
	return nil
}
