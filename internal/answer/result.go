package answer

import "strings"

// Status enumerates the outcome of an answering exchange.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Result is the structured response of the answering service.
//
// Answer carries a mixture of plain text, Markdown structure, and LaTeX math.
// Diagram, when present, is a complete self-contained SVG document. An absent
// or empty Diagram means no diagram accompanies the answer.
type Result struct {
	Status  Status `json:"status"`
	Answer  string `json:"answer"`
	Diagram string `json:"diagram,omitempty"`
}

// HasDiagram reports whether the result carries diagram content after trimming whitespace.
func (r Result) HasDiagram() bool {
	return strings.TrimSpace(r.Diagram) != ""
}

// QuestionPrompt is the fixed instruction attached verbatim to every submission.
// There is no user-supplied free-text question field.
const QuestionPrompt = "Review this image and solve the question with step-by-step reasoning."
