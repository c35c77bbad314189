package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-profile-engine/internal/config"
	"github.com/jonathan/cv-profile-engine/internal/extraction"
	"github.com/jonathan/cv-profile-engine/internal/ingestion"
	"github.com/jonathan/cv-profile-engine/internal/observability"
	"github.com/jonathan/cv-profile-engine/internal/pipeline"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract a profile fragment from a document",
	Long:  "Read a CV or mission report (PDF or text), extract a partial profile fragment with Gemini, and either print it or merge it directly into the user's profile.",
	RunE:  runExtract,
}

var (
	extractFile    string
	extractMime    string
	extractUser    string
	extractMerge   bool
	extractOut     string
	extractConfig  string
	extractVerbose bool
)

func init() {
	extractCmd.Flags().StringVarP(&extractFile, "file", "f", "", "Path to document (required)")
	extractCmd.Flags().StringVarP(&extractMime, "mime", "m", "", "MIME type reported by the uploader, if known")
	extractCmd.Flags().StringVarP(&extractUser, "user", "u", "", "User ID (required with --merge)")
	extractCmd.Flags().BoolVar(&extractMerge, "merge", false, "Merge the extracted fragment into the user's profile")
	extractCmd.Flags().StringVarP(&extractOut, "out", "o", "", "Write the extracted fragment JSON to this file")
	extractCmd.Flags().StringVarP(&extractConfig, "config", "c", "", "Path to config JSON file")
	extractCmd.Flags().BoolVarP(&extractVerbose, "verbose", "v", false, "Print detailed information")

	extractCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	if extractMerge && extractUser == "" {
		return fmt.Errorf("--user is required with --merge")
	}

	cfg, err := loadCLIConfig(extractConfig)
	if err != nil {
		return err
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("API key is required (config file or GEMINI_API_KEY)")
	}

	ctx := cmd.Context()

	doc, err := ingestion.ReadDocument(extractFile, extractMime)
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Read %s (%s, %d chars)\n", doc.Filename, doc.Type, doc.Meta.Chars)

	client, err := extraction.NewGeminiClient(ctx, extractionConfig(cfg), cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create extraction client: %w", err)
	}
	defer client.Close()

	record, warnings, err := extraction.NewExtractor(client).ExtractProfile(ctx, doc.Text, doc.Type)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s: %s\n", w.Field, w.Message)
	}

	fragment, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode fragment: %w", err)
	}

	if extractOut != "" {
		if err := os.WriteFile(extractOut, fragment, 0o644); err != nil {
			return fmt.Errorf("failed to write fragment: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Fragment written to %s\n", extractOut)
	}

	if !extractMerge {
		if extractOut == "" {
			fmt.Fprintln(os.Stdout, string(fragment))
		}
		return nil
	}

	engine, cleanup, err := buildEngine(ctx, cfg, extractVerbose)
	if err != nil {
		return err
	}
	defer cleanup()

	outcome, err := engine.MergeFragment(ctx, pipeline.MergeRequest{
		UserID:   extractUser,
		Source:   doc.Filename,
		Fragment: fragment,
	})
	if err != nil {
		return err
	}

	observability.NewPrinter(os.Stdout).PrintMergeHistory(outcome.History)
	return nil
}

// extractionConfig maps CLI config onto extraction model tiers.
func extractionConfig(cfg config.Config) *extraction.Config {
	ec := extraction.DefaultConfig()
	if cfg.LiteModel != "" {
		ec.Models[extraction.TierLite] = cfg.LiteModel
		ec.Models[extraction.TierStandard] = cfg.StandardModel
	}
	return ec
}
