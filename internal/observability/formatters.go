// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/cv-profile-engine/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintMergeHistory outputs a human-readable summary of one merge pass.
func (p *Printer) PrintMergeHistory(entry *types.MergeHistoryEntry) {
	if entry == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Source:   %s\n", entry.Source))
	sb.WriteString(fmt.Sprintf("Added: %d  Merged: %d  Preserved: %d  Dropped: %d\n",
		entry.Count(types.ActionAdded),
		entry.Count(types.ActionMerged),
		entry.Count(types.ActionPreserved),
		entry.Count(types.ActionDropped),
	))

	shown := 0
	for _, line := range entry.Lines {
		if line.Action == types.ActionWarning {
			continue
		}
		if shown >= maxItemsToShow {
			break
		}
		if shown == 0 {
			sb.WriteString("\n")
		}
		key := line.Key
		if key == "" {
			key = line.Detail
		}
		if len(key) > 35 {
			key = key[:32] + "..."
		}
		sb.WriteString(fmt.Sprintf("  %s %s: %s\n", actionMark(line.Action), line.Section, key))
		shown++
	}

	remaining := len(entry.Lines) - entry.Count(types.ActionWarning) - shown
	if remaining > 0 {
		sb.WriteString(fmt.Sprintf("  ... and %d more decisions\n", remaining))
	}

	p.printBox("MERGE SUMMARY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintWarnings outputs the data-quality warnings recorded on a merge pass.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintWarnings(entry *types.MergeHistoryEntry) {
	if entry == nil || entry.Count(types.ActionWarning) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ NO WARNINGS")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d warnings:\n\n", entry.Count(types.ActionWarning)))

	for _, line := range entry.Lines {
		if line.Action != types.ActionWarning {
			continue
		}
		detail := line.Detail
		if len(detail) > 45 {
			detail = detail[:42] + "..."
		}
		sb.WriteString(fmt.Sprintf("⚠ %s\n", line.Section))
		sb.WriteString(fmt.Sprintf("  %s\n", detail))
	}

	p.printBox("DATA QUALITY WARNINGS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintProfileSummary outputs section counts for an accumulated record.
func (p *Printer) PrintProfileSummary(record *types.ProfileRecord) {
	if record == nil {
		return
	}

	var sb strings.Builder
	if record.Profil.Nom != "" {
		sb.WriteString(fmt.Sprintf("Name:     %s\n", record.Profil.Nom))
	}
	if record.Profil.Titre != "" {
		sb.WriteString(fmt.Sprintf("Title:    %s\n", record.Profil.Titre))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Experiences:     %d\n", len(record.Experiences)))
	sb.WriteString(fmt.Sprintf("Formations:      %d\n", len(record.Formations)))
	sb.WriteString(fmt.Sprintf("Langues:         %d\n", len(record.Langues)))
	sb.WriteString(fmt.Sprintf("Clients:         %d\n", len(record.References.Clients)))
	sb.WriteString(fmt.Sprintf("Certifications:  %d\n", len(record.Certifications)))
	sb.WriteString(fmt.Sprintf("Projets:         %d\n", len(record.Projets)))
	sb.WriteString(fmt.Sprintf("Skills:          %d explicit tech, %d inferred\n",
		len(record.Competences.Explicit.Techniques), len(record.Competences.Inferred)))
	if len(record.RejectedInferred) > 0 {
		sb.WriteString(fmt.Sprintf("Rejected:        %s\n", joinTruncated(record.RejectedInferred, 40)))
	}

	p.printBox("PROFILE SUMMARY", strings.TrimSuffix(sb.String(), "\n"))
}

func actionMark(action string) string {
	switch action {
	case types.ActionAdded:
		return "+"
	case types.ActionMerged:
		return "~"
	case types.ActionPreserved:
		return "="
	case types.ActionDropped:
		return "-"
	default:
		return "?"
	}
}

func joinTruncated(items []string, max int) string {
	joined := strings.Join(items, ", ")
	if len(joined) > max {
		joined = joined[:max-3] + "..."
	}
	return joined
}
