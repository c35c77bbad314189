package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-profile-engine/internal/observability"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show a user's merge history",
	RunE:  runHistory,
}

var (
	historyUser   string
	historyLimit  int
	historyConfig string
)

func init() {
	historyCmd.Flags().StringVarP(&historyUser, "user", "u", "", "User ID (required)")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "Maximum entries to show")
	historyCmd.Flags().StringVarP(&historyConfig, "config", "c", "", "Path to config JSON file")

	historyCmd.MarkFlagRequired("user")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadCLIConfig(historyConfig)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	engine, cleanup, err := buildEngine(ctx, cfg, false)
	if err != nil {
		return err
	}
	defer cleanup()

	entries, err := engine.History(ctx, historyUser, historyLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintf(os.Stdout, "No merge history for user %s\n", historyUser)
		return nil
	}

	printer := observability.NewPrinter(os.Stdout)
	for i := range entries {
		printer.PrintMergeHistory(&entries[i])
	}
	return nil
}
