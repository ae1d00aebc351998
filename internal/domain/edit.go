package domain

// SessionStatus is the single status value of the editing session.
type SessionStatus string

const (
	StatusIdle    SessionStatus = "idle"
	StatusLoading SessionStatus = "loading"
	StatusSuccess SessionStatus = "success"
	StatusError   SessionStatus = "error"
)

// ImageSelection is the encoded form of a user-selected image. It is never
// mutated after creation; a new selection replaces it.
type ImageSelection struct {
	Filename  string
	Data      []byte
	PreviewID string
	DataURI   string
	Payload   string
	MIMEType  string
	Width     int
	Height    int
}

// Size returns the raw byte length of the selected file.
func (s *ImageSelection) Size() int {
	if s == nil {
		return 0
	}
	return len(s.Data)
}

// EditRequest is built for every submission and never stored.
type EditRequest struct {
	Payload     string
	MIMEType    string
	Instruction string
}

// EditResult holds the base64 payload (without a data URI prefix) returned by
// the model.
type EditResult struct {
	Payload  string
	MIMEType string
}
