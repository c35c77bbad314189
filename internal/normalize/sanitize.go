package normalize

import (
	"regexp"
	"strings"
)

// invisibleRunes are characters that upstream extraction leaks into text and
// that silently corrupt rendering.
var invisibleRunes = strings.NewReplacer(
	"\u200B", "", // zero-width space
	"\u200C", "", // zero-width non-joiner
	"\u200D", "", // zero-width joiner
	"\uFEFF", "", // byte-order mark
	"\u00AD", "", // soft hyphen
)

// wordPairRepairs is the fixed set of word-boundary concatenations the
// extraction step is known to produce. Matched as whole words only, so real
// words like "moderne" or "modelage" are never split. This list is not a
// dictionary; only add pairs observed in extraction output.
var wordPairRepairs = []struct {
	re          *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`\betde\b`), "et de"},
	{regexp.MustCompile(`\betla\b`), "et la"},
	{regexp.MustCompile(`\betles\b`), "et les"},
	{regexp.MustCompile(`\bdela\b`), "de la"},
	{regexp.MustCompile(`\bdansle\b`), "dans le"},
	{regexp.MustCompile(`\bdansla\b`), "dans la"},
	{regexp.MustCompile(`\bsurle\b`), "sur le"},
	{regexp.MustCompile(`\bsurla\b`), "sur la"},
	{regexp.MustCompile(`\bpourles\b`), "pour les"},
}

var (
	digitLetterRe  = regexp.MustCompile(`([0-9])(\pL)`)
	digitPercentRe = regexp.MustCompile(`([0-9])%`)
	plusDigitRe    = regexp.MustCompile(`\+([0-9])`)
)

// SanitizeText strips invisible characters and repairs the fixed set of
// unsafe concatenations produced by extraction ("etde" -> "et de",
// "12clients" -> "12 clients", "10%" -> "10 %", "+12" -> "+ 12").
// Pure and idempotent: applying it twice equals applying it once.
func SanitizeText(text string) string {
	if text == "" {
		return ""
	}

	out := invisibleRunes.Replace(text)

	for _, repair := range wordPairRepairs {
		out = repair.re.ReplaceAllString(out, repair.replacement)
	}

	out = digitLetterRe.ReplaceAllString(out, "$1 $2")
	out = digitPercentRe.ReplaceAllString(out, "$1 %")
	out = plusDigitRe.ReplaceAllString(out, "+ $1")

	return out
}
