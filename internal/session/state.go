// Package session holds the single editing session: an immutable State value
// with pure transitions, and a Controller that serialises them and runs the
// edit request.
package session

import (
	"strings"

	"pixelperfect/internal/domain"
)

// State is one snapshot of the session. Transitions return a new State and
// never modify the receiver. Generation increases on every transition that
// invalidates an in-flight request.
type State struct {
	Status     domain.SessionStatus
	Selection  *domain.ImageSelection
	Prompt     string
	Result     *domain.EditResult
	Error      string
	Generation uint64
}

// Initial returns the idle state with nothing selected.
func Initial() State {
	return State{Status: domain.StatusIdle}
}

// Select replaces the image. From any status the session returns to idle and
// drops the previous result and error; the prompt is kept.
func (s State) Select(sel *domain.ImageSelection) State {
	return State{
		Status:     domain.StatusIdle,
		Selection:  sel,
		Prompt:     s.Prompt,
		Generation: s.Generation + 1,
	}
}

// WithPrompt updates the instruction. The prompt is frozen while loading.
func (s State) WithPrompt(prompt string) (State, bool) {
	if s.Status == domain.StatusLoading {
		return s, false
	}
	s.Prompt = prompt
	return s, true
}

// CanSubmit reports whether Begin would succeed.
func (s State) CanSubmit() bool {
	return s.Status != domain.StatusLoading &&
		s.Selection != nil &&
		strings.TrimSpace(s.Prompt) != ""
}

// Begin moves to loading, clearing any previous result and error.
func (s State) Begin() (State, bool) {
	if !s.CanSubmit() {
		return s, false
	}
	s.Status = domain.StatusLoading
	s.Result = nil
	s.Error = ""
	s.Generation++
	return s, true
}

// Succeed stores the result of the request started at generation gen. A
// response for any other generation is stale and ignored.
func (s State) Succeed(gen uint64, result domain.EditResult) (State, bool) {
	if !s.awaiting(gen) {
		return s, false
	}
	s.Status = domain.StatusSuccess
	s.Result = &result
	s.Error = ""
	return s, true
}

// Fail stores the user-facing message of a failed request at generation gen.
func (s State) Fail(gen uint64, message string) (State, bool) {
	if !s.awaiting(gen) {
		return s, false
	}
	s.Status = domain.StatusError
	s.Result = nil
	s.Error = message
	return s, true
}

// Reset clears image, prompt, result and error together.
func (s State) Reset() State {
	return State{Status: domain.StatusIdle, Generation: s.Generation + 1}
}

func (s State) awaiting(gen uint64) bool {
	return s.Status == domain.StatusLoading && s.Generation == gen
}
