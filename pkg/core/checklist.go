package core

import (
	"fmt"
	"strings"
)

// Select returns the checklist entries whose pattern matches at least one modified path,
// in checklist order. Patterns that fail to compile never match.
func Select(checklist ChecklistMap, modifiedPaths []string, opts MatchOptions) []ApplicablePattern {
	var applicable []ApplicablePattern

	for _, entry := range checklist {
		pattern, err := CompilePattern(entry.Pattern, opts)
		if err != nil {
			continue
		}

		for _, path := range modifiedPaths {
			if pattern.Match(path) {
				applicable = append(applicable, ApplicablePattern{Pattern: entry.Pattern, Items: entry.Items})
				break
			}
		}
	}

	return applicable
}

// FormatItems renders the checklist block for one applicable pattern
func FormatItems(pattern ApplicablePattern, showPaths bool) string {
	var b strings.Builder

	if showPaths {
		fmt.Fprintf(&b, "__Files matching `%s`:__\n", pattern.Pattern)
	}

	for _, item := range pattern.Items {
		fmt.Fprintf(&b, "- [ ] %s\n", item)
	}

	if showPaths {
		b.WriteString("\n")
	}

	return b.String()
}

// RenderBody builds the comment body: header, a blank line, the pattern blocks and the footer.
// The footer also marks the comment so later runs can find it again.
func RenderBody(header, footer string, applicable []ApplicablePattern, showPaths bool) string {
	var b strings.Builder

	b.WriteString(header)
	b.WriteString("\n\n")

	for _, pattern := range applicable {
		b.WriteString(FormatItems(pattern, showPaths))
	}

	b.WriteString("\n")
	b.WriteString(footer)

	return b.String()
}
