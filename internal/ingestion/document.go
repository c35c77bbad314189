package ingestion

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ledongthuc/pdf"

	"github.com/jonathan/cv-profile-engine/internal/normalize"
)

// Document is an ingested upload, ready for extraction.
type Document struct {
	Filename string
	Type     normalize.DocumentType
	Text     string
	Meta     *Metadata
}

// ReadDocument classifies a file, extracts its raw text, and cleans it.
// Word documents go through an external conversion service before they reach
// this layer, so only pdf and txt are readable here; anything else is a
// classification result the caller can act on, not a crash.
func ReadDocument(path, mimeType string) (*Document, error) {
	docType := normalize.NormalizeDocumentType(normalize.DocumentDescriptor{
		Filename: path,
		MimeType: mimeType,
	})

	var raw string
	switch docType {
	case normalize.DocPDF:
		text, err := extractPDFText(path)
		if err != nil {
			return nil, fmt.Errorf("failed to extract pdf text from %s: %w", path, err)
		}
		raw = text
	case normalize.DocTXT:
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		raw = string(content)
	default:
		return nil, &UnsupportedTypeError{Path: path, Type: docType}
	}

	text := CleanText(raw)
	if text == "" {
		return nil, fmt.Errorf("document %s contains no extractable text", path)
	}

	return &Document{
		Filename: filepath.Base(path),
		Type:     docType,
		Text:     text,
		Meta:     NewMetadata(text, filepath.Base(path), docType),
	}, nil
}

// extractPDFText pulls the plain text layer out of a PDF.
func extractPDFText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	reader, err := r.GetPlainText()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// UnsupportedTypeError reports a document the intake layer cannot read
// directly.
type UnsupportedTypeError struct {
	Path string
	Type normalize.DocumentType
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported document type %q for %s", e.Type, e.Path)
}
