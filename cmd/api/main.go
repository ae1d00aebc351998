package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"pixelperfect/internal/http/handlers"
	httpapi "pixelperfect/internal/http/httpapi"
	"pixelperfect/internal/imagedata"
	"pixelperfect/internal/infra"
	"pixelperfect/internal/infra/credentials"
	"pixelperfect/internal/providers/gemini"
	"pixelperfect/internal/session"
)

func main() {
	// Optional .env in the working directory
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv, cfg.LogLevel)

	// The key is resolved on every edit so a missing key surfaces in the UI
	// instead of preventing startup.
	creds := credentials.NewStore(cfg.CredentialEnv...)
	if _, err := creds.APIKey(context.Background()); err != nil {
		logger.Warn().Err(err).Msg("model credential not set; edits will fail until it is provided")
	}

	editor, err := gemini.NewEditor(gemini.Options{
		Model:       cfg.GeminiModel,
		BaseURL:     cfg.GeminiBaseURL,
		Credentials: creds,
		Logger:      &logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build gemini editor")
	}

	previews := imagedata.NewPreviews()
	controller := session.NewController(session.Options{
		Editor:   editor,
		Previews: previews,
		Timeout:  cfg.EditTimeout,
		Logger:   &logger,
	})
	app := handlers.NewApp(controller, imagedata.NewEncoder(previews, cfg.MaxUploadBytes), previews, logger)

	router := httpapi.NewRouter(app, httpapi.RouterOptions{
		AllowedOrigins:  cfg.CORSAllowedOrigins,
		RateLimitPerMin: cfg.RateLimitPerMin,
		Logger:          logger,
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Str("model", editor.Model()).Msgf("editor listening on %s", server.Addr())
		if err := server.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
