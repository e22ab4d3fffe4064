package quiz

import (
	"regexp"
	"strconv"
	"strings"
)

// numberPrefix is the numbering marker that opens a new question block.
var numberPrefix = regexp.MustCompile(`^\s*(\d{1,3})[.)]\s+(.*)$`)

// marker is the segmenter's per-line decision. Detection and the declared
// number are kept apart so either can be checked on its own.
type marker struct {
	IsNewBlock bool
	Number     *int
}

func detectMarker(l Line) marker {
	m := numberPrefix.FindStringSubmatch(l.Text)
	if m == nil {
		return marker{}
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return marker{IsNewBlock: true}
	}
	return marker{IsNewBlock: true, Number: &n}
}

// Segment partitions lines into question blocks. Lines before the first
// numbering marker are discarded. If no block is ever emitted, every line
// is wrapped into a single unnumbered block.
func Segment(lines []Line) []Block {
	var (
		blocks  []Block
		current *Block
	)
	emit := func() {
		if current == nil {
			return
		}
		if b, ok := closeBlock(*current); ok {
			blocks = append(blocks, b)
		}
		current = nil
	}

	for _, l := range lines {
		mk := detectMarker(l)
		switch {
		case mk.IsNewBlock:
			emit()
			current = &Block{DeclaredNumber: mk.Number, Lines: []Line{l}}
		case current != nil:
			current.Lines = append(current.Lines, l)
		}
	}
	emit()

	if len(blocks) == 0 && len(lines) > 0 {
		all := make([]Line, len(lines))
		copy(all, lines)
		blocks = append(blocks, Block{Lines: all})
	}
	return blocks
}

// closeBlock strips trailing blank lines. It reports false when nothing is left.
func closeBlock(b Block) (Block, bool) {
	end := len(b.Lines)
	for end > 0 && strings.TrimSpace(b.Lines[end-1].Text) == "" {
		end--
	}
	if end == 0 {
		return Block{}, false
	}
	b.Lines = b.Lines[:end]
	return b, true
}
