package testutil

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"

	"pixelperfect/internal/domain"
)

// PNG renders a solid w×h PNG.
func PNG(t testing.TB, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 40, B: 90, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

// MockEditor is a configurable edit client. When Gate is non-nil every call
// blocks until a value is sent on it or the context ends.
type MockEditor struct {
	SubmitFn func(ctx context.Context, req domain.EditRequest) (domain.EditResult, error)
	Gate     chan struct{}
	Started  chan domain.EditRequest

	mu       sync.Mutex
	requests []domain.EditRequest
}

// SubmitEdit implements session.Editor.
func (m *MockEditor) SubmitEdit(ctx context.Context, req domain.EditRequest) (domain.EditResult, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()
	if m.Started != nil {
		m.Started <- req
	}
	if m.Gate != nil {
		select {
		case <-m.Gate:
		case <-ctx.Done():
			return domain.EditResult{}, ctx.Err()
		}
	}
	if m.SubmitFn == nil {
		return domain.EditResult{Payload: "ZWRpdGVk", MIMEType: "image/png"}, nil
	}
	return m.SubmitFn(ctx, req)
}

// Calls returns the number of SubmitEdit invocations so far.
func (m *MockEditor) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// Requests returns a copy of the recorded requests.
func (m *MockEditor) Requests() []domain.EditRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.EditRequest, len(m.requests))
	copy(out, m.requests)
	return out
}
