package httpapi

import (
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"pixelperfect/internal/http/handlers"
	"pixelperfect/internal/infra"
	"pixelperfect/internal/middleware"
)

// RouterOptions carries the HTTP-level settings of the router.
type RouterOptions struct {
	AllowedOrigins  []string
	RateLimitPerMin int
	Logger          infra.Logger
}

func NewRouter(app *handlers.App, opts RouterOptions) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, chimw.RealIP, chimw.Recoverer, middleware.Logger(opts.Logger))
	r.Use(middleware.CORS(opts.AllowedOrigins))

	// Health
	r.Get("/v1/healthz", app.Health)

	r.Get("/", app.Index)

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", app.State)
		r.Get("/suggestions", app.ListSuggestions)
		r.Post("/image", app.UploadImage)
		r.Put("/prompt", app.UpdatePrompt)
		r.With(middleware.RateLimit(opts.RateLimitPerMin, time.Minute)).Post("/edits", app.SubmitEdit)
		r.Delete("/session", app.ResetSession)
		r.Get("/previews/{id}", app.Preview)
		r.Get("/result/download", app.DownloadResult)
	})

	return r
}
