package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ExtractionPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get("extraction.json", "extract-profile-fragment")
	require.NoError(t, err)
	assert.Contains(t, prompt, "experiences")
	assert.Contains(t, prompt, "{{.DocumentText}}")
}

func TestGet_MissingKey(t *testing.T) {
	ClearCache()

	_, err := Get("extraction.json", "does-not-exist")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does-not-exist")
}

func TestGet_MissingFile(t *testing.T) {
	_, err := Get("nope.json", "anything")
	require.Error(t, err)
}

func TestFormat_ReplacesPlaceholders(t *testing.T) {
	out := Format("Document ({{.DocumentType}}): {{.DocumentText}}", map[string]string{
		"DocumentType": "pdf",
		"DocumentText": "contenu",
	})
	assert.Equal(t, "Document (pdf): contenu", out)
}

func TestMustGet_PanicsOnMissing(t *testing.T) {
	assert.Panics(t, func() { MustGet("extraction.json", "missing") })
}
