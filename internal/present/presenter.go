// Package present projects an answer result into renderable sections. It is a
// pure projection: it decides what is shown, never how the markup renderer or
// math typesetter interpret the content.
package present

import (
	"log/slog"

	"github.com/myrjola/snapsolve/internal/answer"
	"github.com/myrjola/snapsolve/internal/errors"
)

// Renderer renders a vector-image document into markup that is safe to place
// into a page. Interpreting malformed documents is the renderer's concern; a
// render failure never blocks the textual answer.
type Renderer interface {
	Render(document string) (string, error)
}

// Section is one block of the presentation, in display order.
type Section struct {
	// Label is "Diagram" or "Explanation" when the presentation is
	// sectioned, empty otherwise.
	Label string
	// Body is the renderer output for diagram sections and the verbatim
	// answer text otherwise.
	Body string
	// Diagram marks the body as rendered vector markup.
	Diagram bool
}

// Presentation is the rendering decision for one answer result.
type Presentation struct {
	// Error selects the error visual treatment.
	Error    bool
	Sections []Section
}

const (
	diagramLabel     = "Diagram"
	explanationLabel = "Explanation"
)

// Presenter turns answer results into presentations.
type Presenter struct {
	renderer Renderer
	logger   *slog.Logger
}

func NewPresenter(renderer Renderer, logger *slog.Logger) *Presenter {
	return &Presenter{
		renderer: renderer,
		logger:   logger.With("source", "Presenter"),
	}
}

// Present decides what the result looks like.
//
// Error results render the answer text with error treatment and never a
// diagram, even when diagram content is present. Successful results with
// diagram content get a "Diagram" section ahead of the "Explanation" section;
// without diagram content the answer renders alone, unlabeled.
func (p *Presenter) Present(result answer.Result) Presentation {
	if result.Status == answer.StatusError {
		return Presentation{
			Error: true,
			Sections: []Section{
				{Label: "", Body: result.Answer, Diagram: false},
			},
		}
	}

	if !result.HasDiagram() {
		return Presentation{
			Error: false,
			Sections: []Section{
				{Label: "", Body: result.Answer, Diagram: false},
			},
		}
	}

	rendered, err := p.renderer.Render(result.Diagram)
	if err != nil {
		// The diagram section stays, empty; the explanation always renders.
		p.logger.Warn("diagram rendering failed", errors.SlogError(err))
		rendered = ""
	}

	return Presentation{
		Error: false,
		Sections: []Section{
			{Label: diagramLabel, Body: rendered, Diagram: true},
			{Label: explanationLabel, Body: result.Answer, Diagram: false},
		},
	}
}
