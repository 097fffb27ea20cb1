package answer

import (
	"encoding/json"
	"strings"

	"github.com/myrjola/snapsolve/internal/errors"
)

// ParseReply turns a raw model reply into a Result.
//
// The happy path is the JSON object requested by systemPrompt, possibly inside
// a Markdown code fence. Models drift, so a non-JSON reply is accepted as
// plain answer text, lifting an embedded <svg>...</svg> document into the
// diagram field when one is present.
func ParseReply(raw string) (Result, error) {
	text := stripFence(strings.TrimSpace(raw))
	if text == "" {
		return Result{}, errors.New("empty model reply")
	}

	var reply struct {
		Answer  string `json:"answer"`
		Diagram string `json:"diagram"`
	}
	if err := json.Unmarshal([]byte(text), &reply); err == nil && strings.TrimSpace(reply.Answer) != "" {
		return Result{
			Status:  StatusSuccess,
			Answer:  reply.Answer,
			Diagram: strings.TrimSpace(reply.Diagram),
		}, nil
	}

	answerText, diagram := liftSVG(text)
	if strings.TrimSpace(answerText) == "" && diagram == "" {
		return Result{}, errors.New("model reply has no answer content")
	}
	if strings.TrimSpace(answerText) == "" {
		answerText = "See diagram."
	}
	return Result{
		Status:  StatusSuccess,
		Answer:  answerText,
		Diagram: diagram,
	}, nil
}

// stripFence removes a surrounding Markdown code fence such as ```json ... ```.
func stripFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	rest, ok := strings.CutPrefix(text, "```")
	if !ok {
		return text
	}
	// Drop the info string on the opening fence line.
	if newline := strings.IndexByte(rest, '\n'); newline != -1 {
		rest = rest[newline+1:]
	}
	rest = strings.TrimSuffix(strings.TrimSpace(rest), "```")
	return strings.TrimSpace(rest)
}

// liftSVG splits an embedded SVG document out of the reply text.
func liftSVG(text string) (answerText string, diagram string) {
	lower := strings.ToLower(text)
	start := strings.Index(lower, "<svg")
	if start == -1 {
		return text, ""
	}
	end := strings.Index(lower[start:], "</svg>")
	if end == -1 {
		return text, ""
	}
	end += start + len("</svg>")
	diagram = strings.TrimSpace(text[start:end])
	answerText = strings.TrimSpace(text[:start] + text[end:])
	return answerText, diagram
}
