package parser

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/brunobiangulo/goquiz/markup"
)

// TextParser handles plain text (.txt) files. Every line becomes one
// paragraph; blank lines are kept so the line extractor decides what to drop.
type TextParser struct{}

func (p *TextParser) SupportedFormats() []string { return []string{"txt"} }

func (p *TextParser) Parse(ctx context.Context, path string) (*ParseResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading text file: %w", err)
	}

	content := strings.ReplaceAll(string(data), "\r\n", "\n")
	content = strings.TrimPrefix(content, "\ufeff")
	if content == "" {
		return &ParseResult{
			Paragraphs: []string{},
			Method:     "native",
		}, nil
	}

	lines := strings.Split(content, "\n")
	paras := make([]string, 0, len(lines))
	for _, l := range lines {
		paras = append(paras, markup.Escape(l))
	}

	return &ParseResult{
		Paragraphs: paras,
		Method:     "native",
	}, nil
}
