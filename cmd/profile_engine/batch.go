package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-profile-engine/internal/pipeline"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Merge a directory of fragments into a user's profile",
	Long:  "Merge every *.json fragment in a directory into the user's profile. Fragments are merged concurrently; updates for the same user serialize in the store.",
	RunE:  runBatch,
}

var (
	batchUser        string
	batchDir         string
	batchConcurrency int
	batchConfig      string
	batchVerbose     bool
)

func init() {
	batchCmd.Flags().StringVarP(&batchUser, "user", "u", "", "User ID (required)")
	batchCmd.Flags().StringVarP(&batchDir, "dir", "d", "", "Directory of fragment JSON files (required)")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 4, "Maximum concurrent merges")
	batchCmd.Flags().StringVarP(&batchConfig, "config", "c", "", "Path to config JSON file")
	batchCmd.Flags().BoolVarP(&batchVerbose, "verbose", "v", false, "Print detailed information")

	batchCmd.MarkFlagRequired("user")
	batchCmd.MarkFlagRequired("dir")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadCLIConfig(batchConfig)
	if err != nil {
		return err
	}

	paths, err := filepath.Glob(filepath.Join(batchDir, "*.json"))
	if err != nil {
		return fmt.Errorf("failed to list fragments: %w", err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no *.json fragments found in %s", batchDir)
	}

	reqs := make([]pipeline.MergeRequest, 0, len(paths))
	for _, path := range paths {
		fragment, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		reqs = append(reqs, pipeline.MergeRequest{
			UserID:   batchUser,
			Source:   filepath.Base(path),
			Fragment: fragment,
		})
	}

	ctx := cmd.Context()
	engine, cleanup, err := buildEngine(ctx, cfg, batchVerbose)
	if err != nil {
		return err
	}
	defer cleanup()

	outcomes, err := engine.MergeMany(ctx, reqs, batchConcurrency)
	if err != nil {
		return err
	}

	total := 0
	for _, out := range outcomes {
		total += len(out.History.Lines)
	}
	fmt.Fprintf(os.Stdout, "Merged %d fragments (%d history lines)\n", len(outcomes), total)
	return nil
}
