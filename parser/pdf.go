package parser

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/brunobiangulo/goquiz/markup"
)

// PDFParser extracts the text layer page by page. Each text line becomes a
// paragraph; PDFs carry no inline formatting we can rely on, so the markup
// is the escaped text.
type PDFParser struct{}

func (p *PDFParser) SupportedFormats() []string { return []string{"pdf"} }

func (p *PDFParser) Parse(ctx context.Context, path string) (result *ParseResult, err error) {
	// The reader panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, fmt.Errorf("malformed PDF: %v", r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}
	defer f.Close()

	totalPages := reader.NumPage()
	var paras []string

	for i := 1; i <= totalPages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip pages that fail to extract
			continue
		}

		paras = append(paras, splitPageIntoParagraphs(text)...)
	}

	if len(paras) == 0 {
		return nil, fmt.Errorf("no text layer found in PDF")
	}

	return &ParseResult{
		Paragraphs: paras,
		Method:     "native",
		Metadata: map[string]string{
			"page_count": strconv.Itoa(totalPages),
		},
	}, nil
}

// splitPageIntoParagraphs turns page text into one escaped fragment per
// non-blank line.
func splitPageIntoParagraphs(text string) []string {
	var paras []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		paras = append(paras, markup.Escape(trimmed))
	}
	return paras
}
