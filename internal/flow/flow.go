// Package flow models the answer flow as a single three-state machine instead
// of independently mutable booleans that can drift out of sync.
package flow

import (
	"sync"

	"github.com/myrjola/snapsolve/internal/answer"
)

// State is the UI-level state of the answer flow.
type State int

const (
	// Idle means no submission has started and no result is live.
	Idle State = iota
	// Loading means a submission is outstanding; any prior result has
	// already been discarded.
	Loading
	// Presented means the latest submission has resolved and its result is
	// live until the next submission begins.
	Presented
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Presented:
		return "presented"
	default:
		return "unknown"
	}
}

// Controller owns the flow state and the single live result. The camera
// session flag is tracked independently of the three answer states.
type Controller struct {
	mu           sync.Mutex
	state        State
	result       *answer.Result
	cameraActive bool
}

func NewController() *Controller {
	return &Controller{} //nolint:exhaustruct // zero value is Idle with no result
}

// Begin discards any live result and enters Loading. The prior result is gone
// before Loading is observable; the two are never live together.
func (c *Controller) Begin() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.result = nil
	c.state = Loading
}

// Finish stores the result and enters Presented. It is called on every
// completion, success or synthesized error, so Loading can never stick.
func (c *Controller) Finish(result answer.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.result = &result
	c.state = Presented
}

// State returns the current flow state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Result returns the live result, if any. Only one result is live at a time.
func (c *Controller) Result() (answer.Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.result == nil {
		return answer.Result{}, false
	}
	return *c.result, true
}

// SetCameraActive flips the independent camera-session flag.
func (c *Controller) SetCameraActive(active bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cameraActive = active
}

// CameraActive reports whether a capture session is live.
func (c *Controller) CameraActive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cameraActive
}
