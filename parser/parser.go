package parser

import "context"

// ParseResult is what a parser produces from a document file: the body as
// paragraph-level markup fragments in reading order. Images are never
// decoded into this sequence.
type ParseResult struct {
	Paragraphs []string // inline HTML per paragraph (em, strong, sup, sub, br, table)
	Method     string   // "native"
	Metadata   map[string]string
}

// Parser can parse a specific document format.
type Parser interface {
	Parse(ctx context.Context, path string) (*ParseResult, error)
	SupportedFormats() []string
}
