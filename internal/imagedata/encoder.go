package imagedata

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"pixelperfect/internal/domain"
)

// DefaultMaxBytes bounds a single upload when no explicit limit is configured.
const DefaultMaxBytes int64 = 10 << 20

// Encoder turns user-provided files into ImageSelections and registers a
// preview reference for each one.
type Encoder struct {
	previews *Previews
	maxBytes int64
}

// NewEncoder builds an Encoder. previews may be nil, in which case no preview
// reference is produced.
func NewEncoder(previews *Previews, maxBytes int64) *Encoder {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Encoder{previews: previews, maxBytes: maxBytes}
}

// MaxBytes returns the configured upload limit.
func (e *Encoder) MaxBytes() int64 {
	return e.maxBytes
}

// Encode reads r completely and produces the data URI encoding of its content.
// declaredMIME is the type reported by the client and may be empty.
func (e *Encoder) Encode(filename, declaredMIME string, r io.Reader) (*domain.ImageSelection, error) {
	declared := normalizeMIME(declaredMIME)
	if declared != "" && !IsImageMIME(declared) && !isGenericMIME(declared) {
		return nil, domain.ErrNotImage
	}

	data, err := readLimited(r, e.maxBytes)
	if err != nil {
		return nil, err
	}

	mimeType := declared
	if !IsImageMIME(mimeType) {
		mimeType = normalizeMIME(http.DetectContentType(data))
	}
	if !IsImageMIME(mimeType) {
		mimeType = mimeFromExtension(filename)
	}
	if !IsImageMIME(mimeType) {
		return nil, domain.ErrNotImage
	}

	payload := base64.StdEncoding.EncodeToString(data)
	width, height := decodeDimensions(data)
	sel := &domain.ImageSelection{
		Filename: filepath.Base(strings.TrimSpace(filename)),
		Data:     data,
		DataURI:  DataURI(mimeType, payload),
		Payload:  payload,
		MIMEType: mimeType,
		Width:    width,
		Height:   height,
	}
	if e.previews != nil {
		sel.PreviewID = e.previews.Create(mimeType, data)
	}
	return sel, nil
}

// DataURI builds a self-describing data URI for a base64 payload.
func DataURI(mimeType, payload string) string {
	return "data:" + mimeType + ";base64," + payload
}

// StripPrefix removes a data URI declaration from an encoded payload. Input
// without a prefix is returned unchanged.
func StripPrefix(encoded string) string {
	parts := strings.Split(encoded, ",")
	if len(parts) < 2 || parts[1] == "" {
		return encoded
	}
	return parts[1]
}

// IsImageMIME reports whether the media type denotes an image.
func IsImageMIME(mimeType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(mimeType)), "image/")
}

// Extension returns a filename extension, including the dot, for an image
// media type.
func Extension(mimeType string) string {
	switch normalizeMIME(mimeType) {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "image/bmp":
		return ".bmp"
	default:
		return ".png"
	}
}

func readLimited(r io.Reader, maxBytes int64) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: no input", domain.ErrConversion)
	}
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrConversion, err)
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%w: limit is %d bytes", domain.ErrImageTooLarge, maxBytes)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %v", domain.ErrConversion, errors.New("empty file"))
	}
	return data, nil
}

func normalizeMIME(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(value)
	if err != nil {
		return strings.ToLower(value)
	}
	return mediaType
}

func isGenericMIME(mimeType string) bool {
	return mimeType == "application/octet-stream"
}

func mimeFromExtension(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".heic":
		return "image/heic"
	case ".heif":
		return "image/heif"
	default:
		return ""
	}
}

func decodeDimensions(data []byte) (int, int) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0
	}
	return cfg.Width, cfg.Height
}
