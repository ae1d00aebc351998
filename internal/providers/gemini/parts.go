package gemini

import (
	"google.golang.org/genai"

	"pixelperfect/internal/domain"
)

// ResponseParts returns the content parts of the first candidate, or nil when
// the response carries none.
func ResponseParts(resp *genai.GenerateContentResponse) []*genai.Part {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil
	}
	candidate := resp.Candidates[0]
	if candidate == nil || candidate.Content == nil {
		return nil
	}
	return candidate.Content.Parts
}

// FirstInlineImage scans parts in order and returns the first inline blob with
// data. An empty list yields ErrNoContent; parts without inline data yield
// ErrNoImage.
func FirstInlineImage(parts []*genai.Part) (*genai.Blob, error) {
	if len(parts) == 0 {
		return nil, domain.ErrNoContent
	}
	for _, part := range parts {
		if part == nil || part.InlineData == nil {
			continue
		}
		if len(part.InlineData.Data) > 0 {
			return part.InlineData, nil
		}
	}
	return nil, domain.ErrNoImage
}

// BuildContents assembles the single user turn: the image first, then the
// instruction.
func BuildContents(image []byte, mimeType, instruction string) []*genai.Content {
	parts := []*genai.Part{
		{InlineData: &genai.Blob{MIMEType: mimeType, Data: image}},
		genai.NewPartFromText(instruction),
	}
	return []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
}
