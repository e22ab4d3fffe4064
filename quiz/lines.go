package quiz

import (
	"strings"
	"unicode"

	"github.com/brunobiangulo/goquiz/markup"
)

// ExtractLines turns paragraph markup fragments into lines, keeping their
// order. A paragraph is dropped only when both its markup and its detagged
// text are empty after trimming trailing whitespace.
func ExtractLines(paragraphs []string) []Line {
	lines := make([]Line, 0, len(paragraphs))
	for _, p := range paragraphs {
		raw := strings.TrimRightFunc(p, unicode.IsSpace)
		text := markup.Text(raw)
		if raw == "" && text == "" {
			continue
		}
		lines = append(lines, Line{Markup: raw, Text: text})
	}
	return lines
}
