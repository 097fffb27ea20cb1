package answer

import (
	"context"
	"log/slog"

	"github.com/myrjola/snapsolve/internal/errors"
)

// Engine answers a photographed question. The image is the raw encoded bytes
// and mimeType its sniffed media type. Implementations return an error for
// infrastructure failures; a Result with StatusError is reserved for the
// service-level error shape of the wire contract.
type Engine interface {
	Name() string
	Answer(ctx context.Context, image []byte, mimeType string, question string) (Result, error)
}

// Options carries the credentials and model override for the engine factory.
type Options struct {
	OpenAIAPIKey string
	GeminiAPIKey string
	// Model overrides the engine's default model when non-empty.
	Model string
}

// NewEngine constructs the engine registered under name.
func NewEngine(name string, opts Options) (Engine, error) {
	switch name {
	case "openai":
		return NewOpenAIEngine(opts.OpenAIAPIKey, opts.Model), nil
	case "gemini":
		return NewGeminiEngine(opts.GeminiAPIKey, opts.Model), nil
	case "stub":
		return NewStubEngine(), nil
	default:
		return nil, errors.New("unknown answering engine", slog.String("engine", name))
	}
}

// systemPrompt steers the model towards the wire contract: a single JSON
// object with the answer text and an optional self-contained SVG diagram.
const systemPrompt = `You are a patient tutor. The user sends a photo of a question together with an instruction.
Solve the question in the photo with clear step-by-step reasoning.

Reply with a single JSON object and nothing else:
{"answer": "<your full explanation>", "diagram": "<optional SVG document>"}

Rules:
- "answer" is required. It may use Markdown structure (headings, lists, tables, code)
  and LaTeX math with $...$ for inline and $$...$$ for display notation.
- "diagram" is optional. Include it only when a drawing genuinely helps, and make it
  a complete self-contained <svg> document with an xmlns attribute and a viewBox.
- No prose outside the JSON object.`
