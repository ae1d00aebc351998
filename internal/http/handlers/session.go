package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"pixelperfect/internal/domain"
	"pixelperfect/internal/http/web"
	"pixelperfect/internal/imagedata"
	"pixelperfect/internal/middleware"
	"pixelperfect/internal/session"
)

// Suggestions are the example instructions offered next to the prompt box.
var Suggestions = []string{
	"Remove the background completely",
	"Make the background a professional white studio",
	"Add a soft vintage filter",
	"Turn this into a pencil sketch",
	"Remove the text from the image",
	"Make the lighting more dramatic",
}

const multipartOverhead = 1 << 20

type stateResponse struct {
	Status    string      `json:"status"`
	Prompt    string      `json:"prompt"`
	Error     string      `json:"error,omitempty"`
	CanSubmit bool        `json:"can_submit"`
	Image     *imageView  `json:"image,omitempty"`
	Result    *resultView `json:"result,omitempty"`
}

type imageView struct {
	Filename   string `json:"filename,omitempty"`
	MIMEType   string `json:"mime_type"`
	PreviewURL string `json:"preview_url,omitempty"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Size       int    `json:"size"`
}

type resultView struct {
	MIMEType    string `json:"mime_type"`
	DataURL     string `json:"data_url"`
	DownloadURL string `json:"download_url"`
}

type promptRequest struct {
	Prompt *string `json:"prompt"`
}

func newStateResponse(s session.State) stateResponse {
	resp := stateResponse{
		Status:    string(s.Status),
		Prompt:    s.Prompt,
		Error:     s.Error,
		CanSubmit: s.CanSubmit(),
	}
	if sel := s.Selection; sel != nil {
		view := &imageView{
			Filename: sel.Filename,
			MIMEType: sel.MIMEType,
			Width:    sel.Width,
			Height:   sel.Height,
			Size:     sel.Size(),
		}
		if sel.PreviewID != "" {
			view.PreviewURL = "/api/previews/" + sel.PreviewID
		}
		resp.Image = view
	}
	if res := s.Result; res != nil {
		resp.Result = &resultView{
			MIMEType:    res.MIMEType,
			DataURL:     imagedata.DataURI(res.MIMEType, res.Payload),
			DownloadURL: "/api/result/download",
		}
	}
	return resp
}

func (a *App) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(web.IndexHTML())
}

func (a *App) State(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, newStateResponse(a.Session.Snapshot()))
}

func (a *App) ListSuggestions(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{"items": Suggestions})
}

// UploadImage accepts a multipart "image" field and replaces the selection.
// Rejected files leave the session untouched.
func (a *App) UploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, a.Encoder.MaxBytes()+multipartOverhead)
	file, header, err := r.FormFile("image")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			a.error(w, http.StatusRequestEntityTooLarge, "too_large", domain.MsgImageTooLarge)
			return
		}
		a.error(w, http.StatusBadRequest, "bad_request", "image file is required")
		return
	}
	defer file.Close()

	sel, err := a.Encoder.Encode(header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		log := a.Logger.With().Str("request_id", middleware.RequestIDFromContext(r.Context())).Logger()
		switch {
		case errors.Is(err, domain.ErrNotImage):
			a.error(w, http.StatusUnsupportedMediaType, "not_image", domain.MsgNotImage)
		case errors.Is(err, domain.ErrImageTooLarge):
			a.error(w, http.StatusRequestEntityTooLarge, "too_large", domain.MsgImageTooLarge)
		default:
			log.Error().Err(err).Str("filename", header.Filename).Msg("upload: encode failed")
			a.error(w, http.StatusBadRequest, "conversion_failed", domain.MsgConversion)
		}
		return
	}

	a.json(w, http.StatusOK, newStateResponse(a.Session.Select(sel)))
}

func (a *App) UpdatePrompt(w http.ResponseWriter, r *http.Request) {
	var req promptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Prompt == nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	state, ok := a.Session.SetPrompt(*req.Prompt)
	if !ok {
		a.error(w, http.StatusConflict, "edit_in_progress", "an edit is already in progress")
		return
	}
	a.json(w, http.StatusOK, newStateResponse(state))
}

// SubmitEdit starts the edit request. The body may carry the prompt to use;
// an empty body submits the prompt already stored in the session.
func (a *App) SubmitEdit(w http.ResponseWriter, r *http.Request) {
	var req promptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.Prompt != nil {
		if _, ok := a.Session.SetPrompt(*req.Prompt); !ok {
			a.error(w, http.StatusConflict, "edit_in_progress", "an edit is already in progress")
			return
		}
	}

	if _, ok := a.Session.Submit(r.Context()); !ok {
		state := a.Session.Snapshot()
		switch {
		case state.Status == domain.StatusLoading:
			a.error(w, http.StatusConflict, "edit_in_progress", "an edit is already in progress")
		case state.Selection == nil:
			a.error(w, http.StatusUnprocessableEntity, "invalid_input", "select an image first")
		default:
			a.error(w, http.StatusUnprocessableEntity, "invalid_input", "describe the edit first")
		}
		return
	}
	a.json(w, http.StatusAccepted, newStateResponse(a.Session.Snapshot()))
}

func (a *App) ResetSession(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, newStateResponse(a.Session.Reset()))
}
