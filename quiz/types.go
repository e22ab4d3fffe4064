package quiz

// Line is one paragraph-level unit of a document.
type Line struct {
	Markup string // inline formatting preserved (em, strong, sup, sub, br, tables)
	Text   string // detagged, whitespace-collapsed; used for pattern matching
}

// Block is a contiguous run of lines belonging to one question.
type Block struct {
	DeclaredNumber *int // from a leading "N." / "N)" marker; nil when unnumbered
	Lines          []Line
}

// QuestionType tags a question as multiple choice or free response.
type QuestionType string

const (
	MultipleChoice QuestionType = "MULTIPLE_CHOICE"
	FreeResponse   QuestionType = "FREE_RESPONSE"
)

// Choice is one labeled candidate answer.
type Choice struct {
	Key  string `json:"key"`  // single uppercase letter A-H
	Text string `json:"text"` // inline markup
}

// Media is the synthesized image reference attached to every question.
type Media struct {
	Type string `json:"type"`
	URL  string `json:"url"`
	Alt  string `json:"alt"`
}

// Question is the structured record emitted for each block.
type Question struct {
	ID       string       `json:"id"`
	Index    int          `json:"index"`
	Type     QuestionType `json:"type"`
	Category string       `json:"category"`
	Stem     string       `json:"stem"`
	Media    Media        `json:"media"`
	Choices  []Choice     `json:"choices"`
	Answer   string       `json:"answer"`
}

// Reason tags why a diagnostic entry was recorded.
type Reason string

const (
	ReasonMissingNumber    Reason = "missing-number"
	ReasonDuplicateNumber  Reason = "duplicate-number"
	ReasonNoNumber         Reason = "no-number"
	ReasonEmptyStem        Reason = "empty-stem"
	ReasonIncompleteChoice Reason = "incomplete-choices"
	ReasonTooManyChoices   Reason = "too-many-choices"
)

// Diagnostic flags content parsed with low confidence. Index is nil when
// the offending block carried no number.
type Diagnostic struct {
	Index  *int   `json:"index"`
	Reason Reason `json:"reason"`
	Sample string `json:"sample,omitempty"`
	Note   string `json:"note,omitempty"`
}

// Stats summarizes one conversion.
type Stats struct {
	TotalBlocks int            `json:"totalBlocks"`
	Parsed      int            `json:"parsed"`
	Unparsed    int            `json:"unparsed"`
	Categories  map[Reason]int `json:"categories,omitempty"`
}

// Result is the full output of a conversion.
type Result struct {
	Questions []Question   `json:"questions"`
	Unparsed  []Diagnostic `json:"unparsed"`
	Stats     Stats        `json:"stats"`
}

func intPtr(n int) *int { return &n }
