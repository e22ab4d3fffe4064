package quiz

// Aggregate summarizes a conversion. Parsed always equals TotalBlocks;
// Unparsed counts diagnostic entries, not blocks.
func Aggregate(blocks []Block, questions []Question, diags []Diagnostic) Stats {
	s := Stats{
		TotalBlocks: len(blocks),
		Parsed:      len(questions),
		Unparsed:    len(diags),
	}
	if len(diags) > 0 {
		s.Categories = make(map[Reason]int)
		for _, d := range diags {
			s.Categories[d.Reason]++
		}
	}
	return s
}
