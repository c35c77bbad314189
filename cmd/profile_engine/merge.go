package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-profile-engine/internal/observability"
	"github.com/jonathan/cv-profile-engine/internal/pipeline"
)

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge an extracted fragment into a user's profile",
	Long:  "Merge a partial profile fragment (JSON) into the user's accumulated record. Existing data is never lost; decisions are recorded in the merge history.",
	RunE:  runMerge,
}

var (
	mergeUser     string
	mergeFragment string
	mergeSource   string
	mergeConfig   string
	mergeVerbose  bool
)

func init() {
	mergeCmd.Flags().StringVarP(&mergeUser, "user", "u", "", "User ID (required)")
	mergeCmd.Flags().StringVarP(&mergeFragment, "fragment", "f", "", "Path to fragment JSON file (required)")
	mergeCmd.Flags().StringVarP(&mergeSource, "source", "s", "", "Source label, e.g. the document name (defaults to the fragment filename)")
	mergeCmd.Flags().StringVarP(&mergeConfig, "config", "c", "", "Path to config JSON file")
	mergeCmd.Flags().BoolVarP(&mergeVerbose, "verbose", "v", false, "Print detailed merge information")

	mergeCmd.MarkFlagRequired("user")
	mergeCmd.MarkFlagRequired("fragment")

	rootCmd.AddCommand(mergeCmd)
}

func runMerge(cmd *cobra.Command, args []string) error {
	cfg, err := loadCLIConfig(mergeConfig)
	if err != nil {
		return err
	}

	fragment, err := os.ReadFile(mergeFragment)
	if err != nil {
		return fmt.Errorf("failed to read fragment file: %w", err)
	}

	source := mergeSource
	if source == "" {
		source = mergeFragment
	}

	ctx := cmd.Context()
	engine, cleanup, err := buildEngine(ctx, cfg, mergeVerbose)
	if err != nil {
		return err
	}
	defer cleanup()

	outcome, err := engine.MergeFragment(ctx, pipeline.MergeRequest{
		UserID:   mergeUser,
		Source:   source,
		Fragment: fragment,
	})
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintMergeHistory(outcome.History)
	if mergeVerbose {
		printer.PrintWarnings(outcome.History)
		printer.PrintProfileSummary(&outcome.Record)
	}

	return nil
}
