package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-profile-engine/internal/observability"
	"github.com/jonathan/cv-profile-engine/internal/pipeline"
	"github.com/jonathan/cv-profile-engine/internal/types"
)

var regenerateCmd = &cobra.Command{
	Use:   "regenerate",
	Short: "Replace a profile with a regenerated record",
	Long:  "Replace the user's record with a regenerated full record. Client references, a durable photo, and the rejected-suggestion ledger always carry forward from the previous version.",
	RunE:  runRegenerate,
}

var (
	regenUser    string
	regenRecord  string
	regenConfig  string
	regenVerbose bool
)

func init() {
	regenerateCmd.Flags().StringVarP(&regenUser, "user", "u", "", "User ID (required)")
	regenerateCmd.Flags().StringVarP(&regenRecord, "record", "r", "", "Path to regenerated record JSON file (required)")
	regenerateCmd.Flags().StringVarP(&regenConfig, "config", "c", "", "Path to config JSON file")
	regenerateCmd.Flags().BoolVarP(&regenVerbose, "verbose", "v", false, "Print detailed information")

	regenerateCmd.MarkFlagRequired("user")
	regenerateCmd.MarkFlagRequired("record")

	rootCmd.AddCommand(regenerateCmd)
}

func runRegenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadCLIConfig(regenConfig)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(regenRecord)
	if err != nil {
		return fmt.Errorf("failed to read record file: %w", err)
	}
	var next types.ProfileRecord
	if err := json.Unmarshal(raw, &next); err != nil {
		return fmt.Errorf("failed to parse record JSON: %w", err)
	}

	ctx := cmd.Context()
	engine, cleanup, err := buildEngine(ctx, cfg, regenVerbose)
	if err != nil {
		return err
	}
	defer cleanup()

	outcome, err := engine.Regenerate(ctx, pipeline.RegenerateRequest{UserID: regenUser, Next: next})
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintMergeHistory(outcome.History)
	if regenVerbose {
		printer.PrintProfileSummary(&outcome.Record)
	}
	return nil
}
