// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"gotravel/internal/adapters/currency"
	"gotravel/internal/adapters/genai"
	"gotravel/internal/adapters/googlemaps"
	"gotravel/internal/adapters/weather"
	"gotravel/internal/common/config"
	"gotravel/internal/common/logger"
	"gotravel/internal/common/observability"
	"gotravel/internal/locations"
	"gotravel/internal/mailer"
	"gotravel/internal/planner"
	"gotravel/internal/server"
)

// Each package declares its own narrow Logger interface whose With returns
// that package's type, so the shared logger needs a small adapter per package.

type genaiLoggerAdapter struct {
	logger.Logger
}

func (a *genaiLoggerAdapter) With(fields map[string]interface{}) genai.Logger {
	return &genaiLoggerAdapter{a.Logger.With(fields)}
}

type mapsLoggerAdapter struct {
	logger.Logger
}

func (a *mapsLoggerAdapter) With(fields map[string]interface{}) googlemaps.Logger {
	return &mapsLoggerAdapter{a.Logger.With(fields)}
}

type weatherLoggerAdapter struct {
	logger.Logger
}

func (a *weatherLoggerAdapter) With(fields map[string]interface{}) weather.Logger {
	return &weatherLoggerAdapter{a.Logger.With(fields)}
}

type currencyLoggerAdapter struct {
	logger.Logger
}

func (a *currencyLoggerAdapter) With(fields map[string]interface{}) currency.Logger {
	return &currencyLoggerAdapter{a.Logger.With(fields)}
}

type locationsLoggerAdapter struct {
	logger.Logger
}

func (a *locationsLoggerAdapter) With(fields map[string]interface{}) locations.Logger {
	return &locationsLoggerAdapter{a.Logger.With(fields)}
}

type plannerLoggerAdapter struct {
	logger.Logger
}

func (a *plannerLoggerAdapter) With(fields map[string]interface{}) planner.Logger {
	return &plannerLoggerAdapter{a.Logger.With(fields)}
}

type mailerLoggerAdapter struct {
	logger.Logger
}

func (a *mailerLoggerAdapter) With(fields map[string]interface{}) mailer.Logger {
	return &mailerLoggerAdapter{a.Logger.With(fields)}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting itinerary server...",
		zap.String("environment", cfg.App.Environment),
		zap.Int("port", cfg.Server.Port),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init External Service Adapters ---
	genaiClient := genai.NewClient(&genai.Config{
		APIKey:          cfg.APIs.Gemini.APIKey,
		BaseURL:         cfg.APIs.Gemini.BaseURL,
		Model:           cfg.APIs.Gemini.Model,
		FallbackModel:   cfg.APIs.Gemini.FallbackModel,
		Timeout:         cfg.GeminiTimeout(),
		MaxRetries:      cfg.APIs.Gemini.MaxRetries,
		Temperature:     cfg.APIs.Gemini.Temperature,
		MaxOutputTokens: cfg.APIs.Gemini.MaxOutputTokens,
	}, &genaiLoggerAdapter{log})
	if !genaiClient.Available() {
		zapLog.Warn("GEMINI_API_KEY not set, itinerary generation disabled")
	}

	mapsClient := googlemaps.NewClient(&googlemaps.Config{
		APIKey:           cfg.APIs.Google.APIKey,
		BaseURL:          cfg.APIs.Google.BaseURL,
		RoadsBaseURL:     cfg.APIs.Google.RoadsBaseURL,
		StaticMapBaseURL: cfg.APIs.Google.StaticMapBaseURL,
		Timeout:          cfg.GoogleTimeout(),
	}, &mapsLoggerAdapter{log})
	if !mapsClient.Available() {
		zapLog.Warn("GOOGLE_API_KEY not set, location features disabled")
	}

	weatherClient := weather.NewClient(&weather.Config{
		APIKey:  cfg.APIs.Weather.APIKey,
		BaseURL: cfg.APIs.Weather.BaseURL,
		Timeout: cfg.WeatherTimeout(),
	}, &weatherLoggerAdapter{log})
	if !weatherClient.Available() {
		zapLog.Warn("OPENWEATHERMAP_API_KEY not set, serving sample weather")
	}

	currencyClient := currency.NewClient(&currency.Config{
		BaseURL: cfg.APIs.Currency.BaseURL,
		Timeout: cfg.CurrencyTimeout(),
	}, &currencyLoggerAdapter{log})

	// --- Init Services ---
	locationsService := locations.NewService(mapsClient, weatherClient, &locationsLoggerAdapter{log})
	plannerService := planner.NewService(genaiClient, locationsService, currencyClient, &plannerLoggerAdapter{log})

	var mailerService server.MailerService
	if cfg.Email.Enabled {
		m, err := mailer.New(ctx, cfg.Email.Region, cfg.Email.FromAddress, &mailerLoggerAdapter{log})
		if err != nil {
			zapLog.Error("mailer init failed, email delivery disabled", zap.Error(err))
		} else {
			mailerService = m
			zapLog.Info("email delivery enabled", zap.String("region", cfg.Email.Region))
		}
	}

	// --- HTTP Server ---
	srv := server.New(cfg, server.Deps{
		Planner:   plannerService,
		Locations: locationsService,
		Currency:  currencyClient,
		Mailer:    mailerService,
		Availability: server.Availability{
			GenAI:   genaiClient.Available(),
			Maps:    mapsClient.Available(),
			Weather: weatherClient.Available(),
			Email:   mailerService != nil,
		},
		Obs:    obs,
		Logger: zapLog,
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      srv.Engine(),
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	zapLog.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("shutdown failed", zap.Error(err))
		os.Exit(1)
	}

	zapLog.Info("Server stopped cleanly")
}
