package parser

import "fmt"

type Registry struct {
	parsers map[string]Parser
}

func NewRegistry() *Registry {
	r := &Registry{parsers: make(map[string]Parser)}
	// Register built-in parsers
	docx := &DOCXParser{}
	pdf := &PDFParser{}
	xlsx := &XLSXParser{}
	pptx := &PPTXParser{}
	txt := &TextParser{}
	legacy := &LegacyParser{}

	for _, p := range []Parser{docx, pdf, xlsx, pptx, txt, legacy} {
		for _, f := range p.SupportedFormats() {
			r.parsers[f] = p
		}
	}
	return r
}

func (r *Registry) Get(format string) (Parser, error) {
	p, ok := r.parsers[format]
	if !ok {
		return nil, fmt.Errorf("no parser for format: %s", format)
	}
	return p, nil
}

func (r *Registry) Register(format string, p Parser) {
	r.parsers[format] = p
}

// Formats lists every registered format.
func (r *Registry) Formats() []string {
	out := make([]string, 0, len(r.parsers))
	for f := range r.parsers {
		out = append(out, f)
	}
	return out
}
