package quiz

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/brunobiangulo/goquiz/markup"
)

// Policy thresholds for per-block diagnostics.
const (
	minStemRunes   = 3
	maxChoices     = 8
	sampleMaxRunes = 120
)

// DefaultCategory is the placeholder category assigned to every question.
const DefaultCategory = "General"

// DefaultMediaBaseURL prefixes synthesized media paths.
const DefaultMediaBaseURL = "/media"

// questionNamespace seeds the name-based question IDs.
var questionNamespace = uuid.MustParse("6f1c2b1e-4d0a-5c53-9a47-2a1f3e8b7c90")

// Builder assembles question records from classified blocks.
type Builder struct {
	Category     string
	MediaBaseURL string
	Logger       *slog.Logger
}

// NewBuilder returns a Builder with the default category and media prefix.
func NewBuilder() *Builder {
	return &Builder{
		Category:     DefaultCategory,
		MediaBaseURL: DefaultMediaBaseURL,
		Logger:       slog.Default(),
	}
}

// Build classifies every block and emits exactly one question per block,
// in order, together with the per-block diagnostics.
func (b *Builder) Build(blocks []Block) ([]Question, []Diagnostic) {
	questions := make([]Question, 0, len(blocks))
	var diags []Diagnostic
	for pos, blk := range blocks {
		q, d := b.buildOne(pos, blk)
		questions = append(questions, q)
		diags = append(diags, d...)
	}
	return questions, diags
}

func (b *Builder) buildOne(pos int, blk Block) (Question, []Diagnostic) {
	c := Classify(blk)

	index := pos + 1
	if blk.DeclaredNumber != nil {
		index = *blk.DeclaredNumber
	}

	qtype := FreeResponse
	if len(c.Choices) >= 2 {
		qtype = MultipleChoice
	}

	choices := c.Choices
	if choices == nil {
		choices = []Choice{}
	}

	q := Question{
		ID:       questionID(pos, index),
		Index:    index,
		Type:     qtype,
		Category: b.category(),
		Stem:     c.Stem,
		Media: Media{
			Type: "image",
			URL:  b.mediaURL(index),
			Alt:  "",
		},
		Choices: choices,
		Answer:  "",
	}

	if c.Answer != nil {
		b.logger().Debug("answer key extracted", "index", index, "answer", *c.Answer)
	}

	var diags []Diagnostic
	if blk.DeclaredNumber == nil {
		var sample string
		if len(blk.Lines) > 0 {
			sample = markup.Truncate(blk.Lines[0].Text, sampleMaxRunes)
		}
		diags = append(diags, Diagnostic{Reason: ReasonNoNumber, Sample: sample})
	}
	if stemRunes(c.Stem) < minStemRunes {
		diags = append(diags, Diagnostic{
			Index:  intPtr(index),
			Reason: ReasonEmptyStem,
			Sample: markup.Truncate(c.Stem, sampleMaxRunes),
		})
	}
	switch n := len(c.Choices); {
	case n == 1:
		diags = append(diags, Diagnostic{
			Index:  intPtr(index),
			Reason: ReasonIncompleteChoice,
			Note:   fmt.Sprintf("only choice %s found", c.Choices[0].Key),
		})
	case n > maxChoices:
		diags = append(diags, Diagnostic{
			Index:  intPtr(index),
			Reason: ReasonTooManyChoices,
			Note:   fmt.Sprintf("%d choices found", n),
		})
	}

	if len(diags) > 0 {
		b.logger().Debug("block flagged", "index", index, "diagnostics", len(diags))
	}
	return q, diags
}

func (b *Builder) category() string {
	if b.Category == "" {
		return DefaultCategory
	}
	return b.Category
}

func (b *Builder) mediaURL(index int) string {
	base := b.MediaBaseURL
	if base == "" {
		base = DefaultMediaBaseURL
	}
	return fmt.Sprintf("%s/q%d.png", strings.TrimRight(base, "/"), index)
}

func (b *Builder) logger() *slog.Logger {
	if b.Logger == nil {
		return slog.Default()
	}
	return b.Logger
}

// questionID is derived from the block position and index only, so repeated
// runs over the same input yield identical IDs.
func questionID(pos, index int) string {
	return uuid.NewSHA1(questionNamespace, []byte(fmt.Sprintf("%d:%d", pos, index))).String()
}

func stemRunes(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}
