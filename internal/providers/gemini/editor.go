package gemini

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"pixelperfect/internal/domain"
	"pixelperfect/internal/imagedata"
	"pixelperfect/internal/infra"
	"pixelperfect/internal/infra/credentials"
)

const DefaultModel = "gemini-2.5-flash-image"

// ContentGenerator is the slice of the SDK the editor depends on.
// *genai.Models satisfies it.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// ClientFactory builds a ContentGenerator for a resolved API key.
type ClientFactory func(ctx context.Context, apiKey string) (ContentGenerator, error)

// Options controls how the editor is configured.
type Options struct {
	Model       string
	BaseURL     string
	Credentials credentials.Source
	HTTPClient  *http.Client
	Logger      *infra.Logger
	NewClient   ClientFactory
}

// Editor sends one image plus one instruction to Gemini and returns the
// edited image. It never retries.
type Editor struct {
	model       string
	credentials credentials.Source
	newClient   ClientFactory
	logger      *infra.Logger
}

// NewEditor constructs an Editor. Credentials are required; everything else
// has a default.
func NewEditor(opts Options) (*Editor, error) {
	if opts.Credentials == nil {
		return nil, errors.New("gemini: credentials source is required")
	}

	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = DefaultModel
	}

	logger := opts.Logger
	if logger == nil {
		logger = infra.NopLogger()
	}

	factory := opts.NewClient
	if factory == nil {
		factory = sdkClientFactory(opts.BaseURL, opts.HTTPClient)
	}

	return &Editor{
		model:       model,
		credentials: opts.Credentials,
		newClient:   factory,
		logger:      logger,
	}, nil
}

// Model returns the configured Gemini model identifier.
func (e *Editor) Model() string {
	return e.model
}

// SubmitEdit issues exactly one generateContent call asking for image output.
func (e *Editor) SubmitEdit(ctx context.Context, req domain.EditRequest) (domain.EditResult, error) {
	apiKey, err := e.credentials.APIKey(ctx)
	if err != nil {
		return domain.EditResult{}, err
	}

	image, err := base64.StdEncoding.DecodeString(imagedata.StripPrefix(req.Payload))
	if err != nil {
		return domain.EditResult{}, fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
	}

	client, err := e.newClient(ctx, apiKey)
	if err != nil {
		return domain.EditResult{}, &domain.TransportError{Err: fmt.Errorf("create gemini client: %w", err)}
	}

	start := time.Now()
	resp, err := client.GenerateContent(ctx, e.model, BuildContents(image, req.MIMEType, req.Instruction), &genai.GenerateContentConfig{
		ResponseModalities: []string{string(genai.ModalityImage)},
	})
	if err != nil {
		e.logger.Error().
			Err(err).
			Str("model", e.model).
			Dur("elapsed", time.Since(start)).
			Msg("gemini: edit request failed")
		return domain.EditResult{}, newTransportError(err)
	}

	blob, err := FirstInlineImage(ResponseParts(resp))
	if err != nil {
		e.logger.Warn().
			Err(err).
			Str("model", e.model).
			Str("finish_reason", finishReason(resp)).
			Msg("gemini: response carried no image")
		return domain.EditResult{}, err
	}

	mimeType := strings.TrimSpace(blob.MIMEType)
	if mimeType == "" {
		mimeType = "image/png"
	}

	e.logger.Debug().
		Str("model", e.model).
		Str("input_mime", req.MIMEType).
		Int("input_bytes", len(image)).
		Str("output_mime", mimeType).
		Int("output_bytes", len(blob.Data)).
		Dur("elapsed", time.Since(start)).
		Msg("gemini: edited image")

	return domain.EditResult{
		Payload:  base64.StdEncoding.EncodeToString(blob.Data),
		MIMEType: mimeType,
	}, nil
}

func sdkClientFactory(baseURL string, httpClient *http.Client) ClientFactory {
	return func(ctx context.Context, apiKey string) (ContentGenerator, error) {
		cfg := &genai.ClientConfig{
			APIKey:     apiKey,
			Backend:    genai.BackendGeminiAPI,
			HTTPClient: httpClient,
		}
		if baseURL != "" {
			cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
		}
		client, err := genai.NewClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return client.Models, nil
	}
}

func newTransportError(err error) *domain.TransportError {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &domain.TransportError{Message: apiErr.Message, Err: err}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return &domain.TransportError{Message: apiErrPtr.Message, Err: err}
	}
	return &domain.TransportError{Err: err}
}

func finishReason(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return ""
	}
	return string(resp.Candidates[0].FinishReason)
}
