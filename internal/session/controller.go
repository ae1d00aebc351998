package session

import (
	"context"
	"sync"
	"time"

	"pixelperfect/internal/domain"
	"pixelperfect/internal/imagedata"
	"pixelperfect/internal/infra"
)

const defaultTimeout = 2 * time.Minute

// Editor is the edit-request client used by the controller.
type Editor interface {
	SubmitEdit(ctx context.Context, req domain.EditRequest) (domain.EditResult, error)
}

// Options configures a Controller.
type Options struct {
	Editor   Editor
	Previews *imagedata.Previews
	Timeout  time.Duration
	Logger   *infra.Logger
}

// Controller is the only mutator of the session state. At most one edit
// request is in flight; its result is applied only if the session is still
// waiting for that request.
type Controller struct {
	mu       sync.Mutex
	state    State
	editor   Editor
	previews *imagedata.Previews
	timeout  time.Duration
	logger   *infra.Logger
}

func NewController(opts Options) *Controller {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = infra.NopLogger()
	}
	return &Controller{
		state:    Initial(),
		editor:   opts.Editor,
		previews: opts.Previews,
		timeout:  timeout,
		logger:   logger,
	}
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Select installs a new image and returns to idle.
func (c *Controller) Select(sel *domain.ImageSelection) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	prev := c.state
	c.state = prev.Select(sel)
	if prev.Selection != nil && (sel == nil || prev.Selection.PreviewID != sel.PreviewID) {
		c.revokePreview(prev.Selection)
	}
	if prev.Status == domain.StatusLoading {
		c.logger.Debug().Uint64("generation", prev.Generation).Msg("session: in-flight edit superseded by new image")
	}
	return c.state
}

// SetPrompt updates the instruction unless a request is in flight.
func (c *Controller) SetPrompt(prompt string) (State, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	next, ok := c.state.WithPrompt(prompt)
	c.state = next
	return next, ok
}

// Submit starts one edit request when an image is selected, the prompt is
// not blank and nothing is in flight. The returned channel is closed once the
// response has been applied or discarded. ok is false when nothing started.
func (c *Controller) Submit(ctx context.Context) (<-chan struct{}, bool) {
	c.mu.Lock()
	next, ok := c.state.Begin()
	if !ok {
		c.mu.Unlock()
		return nil, false
	}
	c.state = next
	gen := next.Generation
	req := domain.EditRequest{
		Payload:     next.Selection.DataURI,
		MIMEType:    next.Selection.MIMEType,
		Instruction: next.Prompt,
	}
	c.mu.Unlock()

	c.logger.Info().
		Uint64("generation", gen).
		Str("mime", req.MIMEType).
		Int("prompt_len", len(req.Instruction)).
		Msg("session: edit submitted")

	reqCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer cancel()
		result, err := c.editor.SubmitEdit(reqCtx, req)
		c.complete(gen, result, err)
	}()
	return done, true
}

// Reset clears the whole session. A request still in flight is left to finish
// and its response is discarded.
func (c *Controller) Reset() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.revokePreview(c.state.Selection)
	c.state = c.state.Reset()
	return c.state
}

// Result returns the current edit result, if any.
func (c *Controller) Result() (domain.EditResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Status != domain.StatusSuccess || c.state.Result == nil {
		return domain.EditResult{}, false
	}
	return *c.state.Result, true
}

func (c *Controller) complete(gen uint64, result domain.EditResult, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var applied bool
	if err != nil {
		c.state, applied = c.state.Fail(gen, domain.UserMessage(err))
	} else {
		c.state, applied = c.state.Succeed(gen, result)
	}

	switch {
	case !applied:
		c.logger.Debug().Uint64("generation", gen).Err(err).Msg("session: stale edit response discarded")
	case err != nil:
		c.logger.Warn().Uint64("generation", gen).Err(err).Msg("session: edit failed")
	default:
		c.logger.Info().Uint64("generation", gen).Str("mime", result.MIMEType).Msg("session: edit succeeded")
	}
}

func (c *Controller) revokePreview(sel *domain.ImageSelection) {
	if c.previews == nil || sel == nil {
		return
	}
	c.previews.Revoke(sel.PreviewID)
}
