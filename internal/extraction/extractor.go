package extraction

import (
	"context"
	"fmt"

	"github.com/jonathan/cv-profile-engine/internal/normalize"
	"github.com/jonathan/cv-profile-engine/internal/prompts"
	"github.com/jonathan/cv-profile-engine/internal/types"
)

// longDocumentChars is the threshold above which extraction uses the
// standard tier instead of lite.
const longDocumentChars = 4000

// Extractor turns cleaned document text into a canonical partial profile
// record. Whatever the model returns goes through the lenient fragment
// decoder, so malformed model output degrades into warnings instead of
// failing the profile update.
type Extractor struct {
	client Client
}

// NewExtractor creates an Extractor on top of an LLM client.
func NewExtractor(client Client) *Extractor {
	return &Extractor{client: client}
}

// ExtractProfile prompts the model for a profile fragment from document text.
// The returned warnings carry data-quality issues found in the model output.
func (e *Extractor) ExtractProfile(ctx context.Context, docText string, docType normalize.DocumentType) (*types.ProfileRecord, []normalize.Warning, error) {
	if docText == "" {
		return nil, nil, fmt.Errorf("document text is empty")
	}

	template, err := prompts.Get("extraction.json", "extract-profile-fragment")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load extraction prompt: %w", err)
	}

	prompt := prompts.Format(template, map[string]string{
		"DocumentType": string(docType),
		"DocumentText": docText,
	})

	tier := TierLite
	if len(docText) > longDocumentChars {
		tier = TierStandard
	}

	raw, err := e.client.GenerateJSON(ctx, prompt, tier)
	if err != nil {
		return nil, nil, fmt.Errorf("extraction call failed: %w", err)
	}

	fragment, warns := normalize.DecodeFragment([]byte(raw))
	return fragment, warns, nil
}
