package domain

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrNotImage          = errors.New("not an image")
	ErrImageTooLarge     = errors.New("image too large")
	ErrConversion        = errors.New("failed to convert file to base64")
	ErrInvalidPayload    = errors.New("invalid image payload")
	ErrMissingCredential = errors.New("missing credential")
	ErrNoContent         = errors.New("no content generated")
	ErrNoImage           = errors.New("model did not return a valid image")
)

const (
	MsgNotImage       = "Please upload an image file"
	MsgImageTooLarge  = "The selected image is too large."
	MsgConversion     = "Failed to convert file to base64"
	MsgInvalidPayload = "The selected image could not be decoded."
	MsgNoContent      = "No content generated from Gemini."
	MsgNoImage        = "The model did not return a valid image."
	MsgTimeout        = "The edit request timed out."
	MsgTransport      = "Failed to edit image with Gemini."
	MsgUnknown        = "Something went wrong during generation."
)

// MissingCredentialError reports that the service credential was not
// available when a call was attempted. It matches ErrMissingCredential.
type MissingCredentialError struct {
	Name string
}

func (e *MissingCredentialError) Error() string {
	if e.Name == "" {
		return "API key is not configured."
	}
	return e.Name + " environment variable is not set."
}

func (e *MissingCredentialError) Is(target error) bool {
	return target == ErrMissingCredential
}

// TransportError wraps a failure of the remote model call. Message carries the
// service-provided message when one was available.
type TransportError struct {
	Message string
	Err     error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return "transport: " + e.UserMessage()
	}
	return "transport: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// UserMessage returns the text shown to the user for this failure.
func (e *TransportError) UserMessage() string {
	if msg := strings.TrimSpace(e.Message); msg != "" {
		return msg
	}
	if e.Err != nil {
		if msg := strings.TrimSpace(e.Err.Error()); msg != "" {
			return msg
		}
	}
	return MsgTransport
}

// UserMessage converts any error from the edit path into the string placed in
// the session's error state.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var credErr *MissingCredentialError
	var transportErr *TransportError
	switch {
	case errors.As(err, &credErr):
		return credErr.Error()
	case errors.Is(err, ErrNotImage):
		return MsgNotImage
	case errors.Is(err, ErrImageTooLarge):
		return MsgImageTooLarge
	case errors.Is(err, ErrConversion):
		return MsgConversion
	case errors.Is(err, ErrInvalidPayload):
		return MsgInvalidPayload
	case errors.Is(err, ErrNoContent):
		return MsgNoContent
	case errors.Is(err, ErrNoImage):
		return MsgNoImage
	case errors.Is(err, context.DeadlineExceeded):
		return MsgTimeout
	case errors.As(err, &transportErr):
		return transportErr.UserMessage()
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return MsgUnknown
}
