package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/jonathan/cv-profile-engine/internal/normalize"
)

// Metadata describes an ingested document for the audit trail. The hash lets
// the pipeline skip re-extracting a document the user already uploaded.
type Metadata struct {
	Filename  string                 `json:"filename,omitempty"`
	Type      normalize.DocumentType `json:"type"`
	Timestamp string                 `json:"timestamp"` // RFC3339
	Hash      string                 `json:"hash"`      // SHA256 hex digest of the cleaned text
	Chars     int                    `json:"chars"`
}

// NewMetadata creates metadata for cleaned document text.
func NewMetadata(text, filename string, docType normalize.DocumentType) *Metadata {
	return &Metadata{
		Filename:  filename,
		Type:      docType,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      computeHash(text),
		Chars:     len(text),
	}
}

func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}
