// Package ingestion prepares uploaded documents for extraction: it
// classifies them, pulls raw text out of them, and cleans that text before
// it goes to the model.
package ingestion

import (
	"regexp"
	"strings"

	"github.com/jonathan/cv-profile-engine/internal/normalize"
)

var (
	multiSpaceRe = regexp.MustCompile(`[ \t]+`)
	blankLinesRe = regexp.MustCompile(`\n\n\n+`)
)

// CleanText normalizes raw document text while preserving line structure:
// CRLF to LF, collapsed intra-line whitespace, at most two consecutive blank
// lines, and the renderer-grade sanitization pass on top.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = multiSpaceRe.ReplaceAllString(strings.TrimRight(line, " \t"), " ")
		cleaned = append(cleaned, line)
	}

	result := strings.Join(cleaned, "\n")
	result = blankLinesRe.ReplaceAllString(result, "\n\n")
	result = strings.TrimSpace(result)

	return normalize.SanitizeText(result)
}
