package parser

import (
	"context"
	"errors"
)

// ErrLegacyFormat is returned for binary Office formats that have no
// native decoder.
var ErrLegacyFormat = errors.New("legacy binary format cannot be decoded; save the file as docx, xlsx or pptx")

// LegacyParser claims the legacy binary formats so they fail with a clear
// message instead of "no parser".
type LegacyParser struct{}

func (p *LegacyParser) SupportedFormats() []string { return []string{"doc", "xls", "ppt"} }

func (p *LegacyParser) Parse(ctx context.Context, path string) (*ParseResult, error) {
	return nil, ErrLegacyFormat
}
