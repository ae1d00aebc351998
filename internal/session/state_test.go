package session

import (
	"testing"

	"pixelperfect/internal/domain"
)

func selection() *domain.ImageSelection {
	return &domain.ImageSelection{DataURI: "data:image/png;base64,AAAA", Payload: "AAAA", MIMEType: "image/png"}
}

func TestInitialState(t *testing.T) {
	s := Initial()
	if s.Status != domain.StatusIdle || s.Selection != nil || s.Prompt != "" || s.Result != nil || s.Error != "" {
		t.Fatalf("Initial() = %+v", s)
	}
}

func TestBeginGuards(t *testing.T) {
	tests := []struct {
		name  string
		state State
		ok    bool
	}{
		{name: "no image", state: State{Status: domain.StatusIdle, Prompt: "blur"}, ok: false},
		{name: "empty prompt", state: State{Status: domain.StatusIdle, Selection: selection()}, ok: false},
		{name: "whitespace prompt", state: State{Status: domain.StatusIdle, Selection: selection(), Prompt: " \n\t "}, ok: false},
		{name: "already loading", state: State{Status: domain.StatusLoading, Selection: selection(), Prompt: "blur"}, ok: false},
		{name: "from idle", state: State{Status: domain.StatusIdle, Selection: selection(), Prompt: "blur"}, ok: true},
		{name: "from success", state: State{Status: domain.StatusSuccess, Selection: selection(), Prompt: "blur", Result: &domain.EditResult{Payload: "x"}}, ok: true},
		{name: "from error", state: State{Status: domain.StatusError, Selection: selection(), Prompt: "blur", Error: "boom"}, ok: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			next, ok := tc.state.Begin()
			if ok != tc.ok {
				t.Fatalf("Begin() ok = %v, want %v", ok, tc.ok)
			}
			if !ok {
				if next != tc.state {
					t.Fatalf("Begin() changed state on rejection: %+v", next)
				}
				return
			}
			if next.Status != domain.StatusLoading || next.Result != nil || next.Error != "" {
				t.Fatalf("Begin() = %+v, want cleared loading state", next)
			}
			if next.Generation != tc.state.Generation+1 {
				t.Fatalf("Generation = %d, want %d", next.Generation, tc.state.Generation+1)
			}
		})
	}
}

func TestSucceedAndFail(t *testing.T) {
	loading, ok := State{Selection: selection(), Prompt: "sketch"}.Begin()
	if !ok {
		t.Fatalf("Begin() rejected")
	}

	done, ok := loading.Succeed(loading.Generation, domain.EditResult{Payload: "QUJD", MIMEType: "image/png"})
	if !ok || done.Status != domain.StatusSuccess || done.Result == nil || done.Result.Payload != "QUJD" {
		t.Fatalf("Succeed() = %+v, %v", done, ok)
	}

	failed, ok := loading.Fail(loading.Generation, "no image")
	if !ok || failed.Status != domain.StatusError || failed.Error != "no image" || failed.Result != nil {
		t.Fatalf("Fail() = %+v, %v", failed, ok)
	}

	if loading.Status != domain.StatusLoading {
		t.Fatalf("receiver mutated: %+v", loading)
	}
}

func TestStaleResponsesDiscarded(t *testing.T) {
	loading, _ := State{Selection: selection(), Prompt: "sketch"}.Begin()
	gen := loading.Generation

	reset := loading.Reset()
	if _, ok := reset.Succeed(gen, domain.EditResult{Payload: "x"}); ok {
		t.Fatalf("Succeed() applied after Reset")
	}
	if _, ok := reset.Fail(gen, "late"); ok {
		t.Fatalf("Fail() applied after Reset")
	}

	reselected := loading.Select(selection())
	if _, ok := reselected.Succeed(gen, domain.EditResult{Payload: "x"}); ok {
		t.Fatalf("Succeed() applied after a new selection")
	}

	restarted, ok := reselected.Begin()
	if !ok {
		t.Fatalf("Begin() after reselect rejected")
	}
	if _, ok := restarted.Succeed(gen, domain.EditResult{Payload: "x"}); ok {
		t.Fatalf("Succeed() applied for an older generation")
	}
	if _, ok := restarted.Succeed(restarted.Generation, domain.EditResult{Payload: "x"}); !ok {
		t.Fatalf("Succeed() rejected for the current generation")
	}
}

func TestSelectClearsOutcome(t *testing.T) {
	s := State{Status: domain.StatusError, Selection: selection(), Prompt: "sketch", Error: "boom", Generation: 4}
	next := s.Select(selection())
	if next.Status != domain.StatusIdle || next.Error != "" || next.Result != nil {
		t.Fatalf("Select() = %+v", next)
	}
	if next.Prompt != "sketch" {
		t.Fatalf("Select() dropped the prompt")
	}
	if next.Generation != 5 {
		t.Fatalf("Generation = %d, want 5", next.Generation)
	}
}

func TestWithPrompt(t *testing.T) {
	s, ok := Initial().WithPrompt("add a neon glow")
	if !ok || s.Prompt != "add a neon glow" {
		t.Fatalf("WithPrompt() = %+v, %v", s, ok)
	}
	loading := State{Status: domain.StatusLoading, Prompt: "old"}
	if next, ok := loading.WithPrompt("new"); ok || next.Prompt != "old" {
		t.Fatalf("WithPrompt() while loading = %+v, %v", next, ok)
	}
}

func TestResetIsAtomic(t *testing.T) {
	s := State{
		Status:     domain.StatusSuccess,
		Selection:  selection(),
		Prompt:     "sketch",
		Result:     &domain.EditResult{Payload: "x"},
		Generation: 9,
	}
	got := s.Reset()
	want := State{Status: domain.StatusIdle, Generation: 10}
	if got != want {
		t.Fatalf("Reset() = %+v, want %+v", got, want)
	}
}
