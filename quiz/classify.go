package quiz

import (
	"regexp"
	"strings"

	"github.com/brunobiangulo/goquiz/markup"
)

var (
	choicePattern = regexp.MustCompile(`^\s*([A-H])\s*[.)]\s+(.*)$`)
	answerPattern = regexp.MustCompile(`(?i)^\s*(?:Answer|Ans|Correct Answer)\s*[:\-]\s*(.+)$`)
	answerLetter  = regexp.MustCompile(`^([A-H])\b`)

	// Markup-side prefixes. Whitespace in raw markup may be any Unicode
	// space, not just what survived into the collapsed text.
	numberMarkupPrefix = regexp.MustCompile(`^[\s\p{Zs}]*\d{1,3}[.)][\s\p{Zs}]+`)
	choiceMarkupPrefix = regexp.MustCompile(`^[\s\p{Zs}]*[A-H][\s\p{Zs}]*[.)][\s\p{Zs}]+`)
)

// actionKind is what the classifier does with one line.
type actionKind int

const (
	actionStem           actionKind = iota // first line: numbering stripped, starts the stem
	actionChoice                           // opens a new choice
	actionAnswer                           // records the answer key
	actionContinueStem                     // appends to the stem
	actionContinueChoice                   // appends to the active choice
)

func (k actionKind) String() string {
	switch k {
	case actionStem:
		return "stem"
	case actionChoice:
		return "choice"
	case actionAnswer:
		return "answer"
	case actionContinueStem:
		return "continue-stem"
	case actionContinueChoice:
		return "continue-choice"
	default:
		return "unknown"
	}
}

// classifierState is the only mutable state of the per-block machine:
// whether the most recent choice still receives continuation lines.
type classifierState struct {
	inChoice bool
}

type action struct {
	kind   actionKind
	key    string // choice key
	answer string // normalized answer
}

// transition decides what to do with the line at position pos. Dispatch
// order: first line, choice line, answer line, continuation.
func transition(s classifierState, pos int, l Line) (classifierState, action) {
	if pos == 0 {
		return classifierState{}, action{kind: actionStem}
	}
	if m := choicePattern.FindStringSubmatch(l.Text); m != nil {
		return classifierState{inChoice: true}, action{kind: actionChoice, key: m[1]}
	}
	if m := answerPattern.FindStringSubmatch(l.Text); m != nil {
		return classifierState{}, action{kind: actionAnswer, answer: normalizeAnswer(m[1])}
	}
	if s.inChoice {
		return s, action{kind: actionContinueChoice}
	}
	return s, action{kind: actionContinueStem}
}

func normalizeAnswer(rest string) string {
	if m := answerLetter.FindStringSubmatch(rest); m != nil {
		return strings.ToUpper(m[1])
	}
	return markup.Collapse(rest)
}

// Classification is the decomposition of one block.
type Classification struct {
	StemMarkup string
	Stem       string // plain text
	Choices    []Choice
	Answer     *string // extracted answer key; never copied to the output record
}

// Classify splits a block's lines into stem, choices and answer.
func Classify(b Block) Classification {
	var (
		st        classifierState
		stemParts []string
		c         Classification
	)
	for i, l := range b.Lines {
		var act action
		st, act = transition(st, i, l)
		switch act.kind {
		case actionStem:
			// An unnumbered fallback block keeps its first line whole.
			stem := l.Markup
			if numberPrefix.MatchString(l.Text) {
				stem = markup.TrimPrefix(l.Markup, numberMarkupPrefix)
			}
			stemParts = append(stemParts, stem)
		case actionChoice:
			text := markup.Inline(markup.TrimPrefix(l.Markup, choiceMarkupPrefix))
			c.Choices = append(c.Choices, Choice{Key: act.key, Text: text})
		case actionAnswer:
			ans := act.answer
			c.Answer = &ans
		case actionContinueChoice:
			last := &c.Choices[len(c.Choices)-1]
			last.Text += " " + l.Markup
		case actionContinueStem:
			stemParts = append(stemParts, l.Markup)
		}
	}
	c.StemMarkup = markup.JoinBreaks(stemParts)
	c.Stem = markup.Text(c.StemMarkup)
	return c
}
