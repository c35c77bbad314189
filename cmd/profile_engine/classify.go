package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-profile-engine/internal/normalize"
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify a document's type",
	Long:  "Determine a document's canonical type from its MIME type, filename extension, and any stored legacy type label, in that order of precedence.",
	RunE:  runClassify,
}

var (
	classifyFile   string
	classifyMime   string
	classifyStored string
)

func init() {
	classifyCmd.Flags().StringVarP(&classifyFile, "file", "f", "", "Filename (extension is used when MIME is inconclusive)")
	classifyCmd.Flags().StringVarP(&classifyMime, "mime", "m", "", "MIME type reported by the uploader")
	classifyCmd.Flags().StringVar(&classifyStored, "stored-type", "", "Legacy stored file type label")

	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	if classifyFile == "" && classifyMime == "" && classifyStored == "" {
		return fmt.Errorf("at least one of --file, --mime, or --stored-type must be provided")
	}

	docType := normalize.NormalizeDocumentType(normalize.DocumentDescriptor{
		Filename:       classifyFile,
		MimeType:       classifyMime,
		StoredFileType: classifyStored,
	})
	fmt.Fprintln(os.Stdout, docType)
	return nil
}
