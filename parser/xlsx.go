package parser

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/brunobiangulo/goquiz/markup"
)

// XLSXParser reads question banks kept in spreadsheets: every non-empty row
// becomes one paragraph with its cells joined by a space, sheet by sheet.
type XLSXParser struct{}

func (p *XLSXParser) SupportedFormats() []string { return []string{"xlsx"} }

func (p *XLSXParser) Parse(ctx context.Context, path string) (*ParseResult, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening XLSX: %w", err)
	}
	defer f.Close()

	var paras []string
	sheets := f.GetSheetList()
	for _, sheet := range sheets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rows, err := f.GetRows(sheet)
		if err != nil {
			continue
		}

		for _, row := range rows {
			cells := make([]string, 0, len(row))
			for _, c := range row {
				if c = strings.TrimSpace(c); c != "" {
					cells = append(cells, markup.Escape(c))
				}
			}
			if len(cells) == 0 {
				continue
			}
			paras = append(paras, strings.Join(cells, " "))
		}
	}

	if len(paras) == 0 {
		return nil, fmt.Errorf("no data found in XLSX")
	}

	return &ParseResult{
		Paragraphs: paras,
		Method:     "native",
		Metadata: map[string]string{
			"sheet_count": strconv.Itoa(len(sheets)),
		},
	}, nil
}
