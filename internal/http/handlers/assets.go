package handlers

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"pixelperfect/internal/imagedata"
	"pixelperfect/internal/middleware"
)

// Preview serves the raw bytes behind a preview reference of the current
// selection.
func (a *App) Preview(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "id required")
		return
	}
	item, ok := a.Previews.Get(id)
	if !ok {
		a.error(w, http.StatusNotFound, "not_found", "preview not found")
		return
	}
	w.Header().Set("Content-Type", item.MIMEType)
	w.Header().Set("Content-Length", strconv.Itoa(len(item.Data)))
	w.Header().Set("Cache-Control", "private, no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(item.Data)
}

// DownloadResult returns the edited image as an attachment named after the
// current time.
func (a *App) DownloadResult(w http.ResponseWriter, r *http.Request) {
	result, ok := a.Session.Result()
	if !ok {
		a.error(w, http.StatusNotFound, "not_found", "no edited image available")
		return
	}
	data, err := base64.StdEncoding.DecodeString(result.Payload)
	if err != nil {
		a.Logger.Error().
			Err(err).
			Str("request_id", middleware.RequestIDFromContext(r.Context())).
			Msg("download: result payload is not valid base64")
		a.error(w, http.StatusInternalServerError, "internal", "failed to decode result")
		return
	}
	filename := DownloadFilename(a.Now().UnixMilli(), result.MIMEType)
	w.Header().Set("Content-Type", result.MIMEType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// DownloadFilename builds edited-image-<unix millis><ext>.
func DownloadFilename(unixMilli int64, mimeType string) string {
	return "edited-image-" + strconv.FormatInt(unixMilli, 10) + imagedata.Extension(mimeType)
}
