package gemini

import (
	"errors"
	"testing"

	"google.golang.org/genai"

	"pixelperfect/internal/domain"
)

func TestFirstInlineImage(t *testing.T) {
	first := &genai.Blob{MIMEType: "image/png", Data: []byte("first")}
	second := &genai.Blob{MIMEType: "image/webp", Data: []byte("second")}

	tests := []struct {
		name    string
		parts   []*genai.Part
		want    *genai.Blob
		wantErr error
	}{
		{name: "nil list", parts: nil, wantErr: domain.ErrNoContent},
		{name: "empty list", parts: []*genai.Part{}, wantErr: domain.ErrNoContent},
		{name: "text only", parts: []*genai.Part{{Text: "sorry"}}, wantErr: domain.ErrNoImage},
		{name: "empty inline data", parts: []*genai.Part{{InlineData: &genai.Blob{MIMEType: "image/png"}}}, wantErr: domain.ErrNoImage},
		{name: "nil part skipped", parts: []*genai.Part{nil, {InlineData: first}}, want: first},
		{name: "first image wins", parts: []*genai.Part{{Text: "done"}, {InlineData: first}, {InlineData: second}}, want: first},
		{name: "skips empty blob", parts: []*genai.Part{{InlineData: &genai.Blob{}}, {InlineData: second}}, want: second},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := FirstInlineImage(tc.parts)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("FirstInlineImage() error = %v, want %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("FirstInlineImage() unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("FirstInlineImage() = %#v, want %#v", got, tc.want)
			}
		})
	}
}

func TestResponseParts(t *testing.T) {
	parts := []*genai.Part{{Text: "a"}}
	tests := []struct {
		name string
		resp *genai.GenerateContentResponse
		want int
	}{
		{name: "nil response", resp: nil, want: 0},
		{name: "no candidates", resp: &genai.GenerateContentResponse{}, want: 0},
		{name: "nil content", resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}, want: 0},
		{name: "first candidate", resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: parts}},
			{Content: &genai.Content{Parts: []*genai.Part{{Text: "b"}, {Text: "c"}}}},
		}}, want: 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := len(ResponseParts(tc.resp)); got != tc.want {
				t.Fatalf("len(ResponseParts()) = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestBuildContents(t *testing.T) {
	contents := BuildContents([]byte{1, 2, 3}, "image/png", "make it blue")
	if len(contents) != 1 {
		t.Fatalf("len(contents) = %d, want 1", len(contents))
	}
	if contents[0].Role != "user" {
		t.Fatalf("Role = %q, want user", contents[0].Role)
	}
	parts := contents[0].Parts
	if len(parts) != 2 || parts[0].InlineData == nil || parts[1].Text != "make it blue" {
		t.Fatalf("unexpected parts: %#v", parts)
	}
}
