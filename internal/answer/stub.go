package answer

import (
	"context"

	"github.com/myrjola/snapsolve/internal/errors"
)

// StubEngine returns canned results for tests, smoke tests, and local
// development without API credentials.
type StubEngine struct{}

func NewStubEngine() *StubEngine {
	return &StubEngine{}
}

func (e *StubEngine) Name() string {
	return "stub"
}

const stubDiagram = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100">` +
	`<circle cx="50" cy="50" r="40" fill="none" stroke="currentColor"/></svg>`

// Answer echoes a deterministic solution. A question of "fail" forces an
// engine failure so that error paths can be exercised end to end.
func (e *StubEngine) Answer(_ context.Context, image []byte, _, question string) (Result, error) {
	if question == "fail" {
		return Result{}, errors.New("stub engine failure requested")
	}
	if len(image) == 0 {
		return Result{}, errors.New("empty image")
	}
	return Result{
		Status:  StatusSuccess,
		Answer:  "## Solution\n\nThe answer is $x=2$.",
		Diagram: stubDiagram,
	}, nil
}
