package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-profile-engine/internal/ingestion"
)

var sanitizeCmd = &cobra.Command{
	Use:   "sanitize",
	Short: "Clean extracted text",
	Long:  "Strip invisible characters and repair common PDF extraction artifacts in text read from a file or stdin.",
	RunE:  runSanitize,
}

var sanitizeFile string

func init() {
	sanitizeCmd.Flags().StringVarP(&sanitizeFile, "file", "f", "", "Path to text file (reads stdin when omitted)")

	rootCmd.AddCommand(sanitizeCmd)
}

func runSanitize(cmd *cobra.Command, args []string) error {
	var raw []byte
	var err error
	if sanitizeFile != "" {
		raw, err = os.ReadFile(sanitizeFile)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
	} else {
		raw, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
	}

	fmt.Fprintln(os.Stdout, ingestion.CleanText(string(raw)))
	return nil
}
