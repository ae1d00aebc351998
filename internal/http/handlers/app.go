package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"pixelperfect/internal/imagedata"
	"pixelperfect/internal/infra"
	"pixelperfect/internal/session"
)

// App carries the dependencies shared by all handlers.
type App struct {
	Session  *session.Controller
	Encoder  *imagedata.Encoder
	Previews *imagedata.Previews
	Logger   infra.Logger
	Now      func() time.Time
}

func NewApp(ctrl *session.Controller, enc *imagedata.Encoder, previews *imagedata.Previews, logger infra.Logger) *App {
	return &App{
		Session:  ctrl,
		Encoder:  enc,
		Previews: previews,
		Logger:   logger,
		Now:      time.Now,
	}
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, errorBody{Error: errorDetail{Code: errCode, Message: message}})
}
