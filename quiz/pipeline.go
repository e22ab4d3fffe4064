// Package quiz segments document lines into exam questions and records
// anything it could not parse confidently as diagnostics.
package quiz

// Convert runs the full pipeline over paragraph markup fragments: line
// extraction, segmentation, numbering audit, classification and
// aggregation. It never fails; anomalies surface as diagnostics.
func (b *Builder) Convert(paragraphs []string) *Result {
	return b.ConvertLines(ExtractLines(paragraphs))
}

// ConvertLines runs the pipeline from already extracted lines.
func (b *Builder) ConvertLines(lines []Line) *Result {
	blocks := Segment(lines)
	diags := AuditNumbering(blocks)
	questions, blockDiags := b.Build(blocks)
	diags = append(diags, blockDiags...)
	if diags == nil {
		diags = []Diagnostic{}
	}

	stats := Aggregate(blocks, questions, diags)
	b.logger().Info("document converted",
		"lines", len(lines),
		"blocks", stats.TotalBlocks,
		"unparsed", stats.Unparsed,
	)
	return &Result{
		Questions: questions,
		Unparsed:  diags,
		Stats:     stats,
	}
}
