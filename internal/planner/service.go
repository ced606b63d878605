// internal/planner/service.go

// Package planner orchestrates itinerary generation: it gathers live
// destination context, builds the model prompt, and validates the structured
// response before it reaches a client.
package planner

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"gotravel/internal/adapters/genai"
	"gotravel/internal/common/errors"
	"gotravel/internal/common/metrics"
	"gotravel/internal/models"
)

// Logger interface definition
type Logger interface {
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
	With(fields map[string]interface{}) Logger
}

// ContentGenerator produces model text for a prompt.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, prompt string, opts genai.GenerateOptions) (string, error)
	Available() bool
}

// LocationSource supplies live destination context for the prompt and the
// response panels.
type LocationSource interface {
	Info(ctx context.Context, query string) (*models.LocationInfo, error)
	Forecast(ctx context.Context, query string, days int) (*models.Forecast, error)
	StaticMapURL(center string, zoom int, size string, markers []string) string
}

// CurrencySource supplies the destination currency panel.
type CurrencySource interface {
	Info(ctx context.Context, destination, base string) (*models.CurrencyInfo, error)
	CountryCurrency(country string) string
}

// Result bundles the itinerary with the side panels. Panels that could not
// be populated are nil, with the reason recorded in Warnings.
type Result struct {
	Itinerary *models.Itinerary    `json:"itinerary"`
	Weather   *models.Forecast     `json:"weather,omitempty"`
	MapURL    string               `json:"map_url,omitempty"`
	Timezone  *models.TimezoneInfo `json:"timezone,omitempty"`
	Currency  *models.CurrencyInfo `json:"currency,omitempty"`
	Warnings  []string             `json:"warnings,omitempty"`
}

type Service struct {
	generator ContentGenerator
	locations LocationSource
	currency  CurrencySource
	logger    Logger
}

func NewService(generator ContentGenerator, locations LocationSource, currency CurrencySource, log Logger) *Service {
	return &Service{
		generator: generator,
		locations: locations,
		currency:  currency,
		logger: log.With(map[string]interface{}{
			"component": "planner",
		}),
	}
}

// Generate validates the request, gathers destination context, asks the
// model for a structured itinerary, and assembles the response panels.
// Validation failures never reach an external service.
func (s *Service) Generate(ctx context.Context, req *models.TripRequest) (*Result, error) {
	if err := req.Validate(); err != nil {
		if strings.Contains(err.Error(), "before start_date") {
			return nil, errors.NewInvalidDateRangeError(req.StartDate, req.EndDate)
		}
		return nil, errors.NewValidationError(err.Error())
	}
	if !s.generator.Available() {
		return nil, errors.NewServiceNotConfiguredError("Generative AI")
	}

	result := &Result{}
	localCurrency := s.currency.CountryCurrency(req.Country())

	// Location context is best-effort: generation proceeds on the traveler's
	// input alone when the lookups fail.
	loc, err := s.locations.Info(ctx, req.Destination)
	if err != nil {
		s.logger.Warn("location context unavailable", map[string]interface{}{
			"destination": req.Destination,
			"error":       err.Error(),
		})
		result.Warnings = append(result.Warnings, "location details unavailable")
		loc = nil
	}

	prompt := BuildGenerationPrompt(req, localCurrency, loc)
	raw, err := s.generator.GenerateContent(ctx, prompt, genai.GenerateOptions{JSONResponse: true})
	if err != nil {
		return nil, classifyGenAIError(err)
	}

	itinerary, err := ParseItinerary(raw)
	if err != nil {
		return nil, errors.NewGenAIMalformedError(err.Error())
	}
	if itinerary.DayCount() != req.Days() {
		return nil, errors.NewGenAIMalformedError(
			fmt.Sprintf("expected %d days, model produced %d", req.Days(), itinerary.DayCount()))
	}

	itinerary.Destination = req.Destination
	itinerary.StartDate = req.StartDate
	itinerary.EndDate = req.EndDate
	itinerary.LocalCurrency = localCurrency
	itinerary.GeneratedAt = time.Now().UTC()
	fillDates(itinerary, req)
	result.Itinerary = itinerary

	s.attachPanels(ctx, req, loc, result)

	metrics.ItinerariesGenerated.WithLabelValues("generate").Inc()
	s.logger.Info("itinerary generated", map[string]interface{}{
		"destination": req.Destination,
		"days":        itinerary.DayCount(),
		"activities":  itinerary.ActivityCount(),
		"warnings":    len(result.Warnings),
	})
	return result, nil
}

// Refine sends the current itinerary and the traveler's feedback back to the
// model and replaces the plan wholesale with the refined version.
func (s *Service) Refine(ctx context.Context, it *models.Itinerary, feedback string) (*models.Itinerary, error) {
	if it == nil || it.DayCount() == 0 {
		return nil, errors.NewValidationError("current itinerary is required")
	}
	if strings.TrimSpace(feedback) == "" {
		return nil, errors.NewValidationError("feedback is required")
	}
	if !s.generator.Available() {
		return nil, errors.NewServiceNotConfiguredError("Generative AI")
	}

	prompt := BuildRefinementPrompt(it, feedback)
	raw, err := s.generator.GenerateContent(ctx, prompt, genai.GenerateOptions{JSONResponse: true})
	if err != nil {
		return nil, classifyGenAIError(err)
	}

	refined, err := ParseItinerary(raw)
	if err != nil {
		return nil, errors.NewGenAIMalformedError(err.Error())
	}
	if refined.DayCount() != it.DayCount() {
		return nil, errors.NewGenAIMalformedError(
			fmt.Sprintf("expected %d days, model produced %d", it.DayCount(), refined.DayCount()))
	}

	// The refined plan keeps the original frame even if the model drifted.
	refined.Destination = it.Destination
	refined.StartDate = it.StartDate
	refined.EndDate = it.EndDate
	refined.LocalCurrency = it.LocalCurrency
	refined.GeneratedAt = time.Now().UTC()

	metrics.ItinerariesGenerated.WithLabelValues("refine").Inc()
	s.logger.Info("itinerary refined", map[string]interface{}{
		"destination": refined.Destination,
		"days":        refined.DayCount(),
	})
	return refined, nil
}

// attachPanels fills in the weather, map, timezone and currency side panels.
// Each degrades independently; a panel failure never fails the itinerary.
func (s *Service) attachPanels(ctx context.Context, req *models.TripRequest, loc *models.LocationInfo, result *Result) {
	if loc != nil {
		result.Timezone = loc.Timezone

		center := fmt.Sprintf("%f,%f", loc.Location.Lat, loc.Location.Lng)
		result.MapURL = s.locations.StaticMapURL(center, 13, "600x400", []string{center})
	}

	forecast, err := s.locations.Forecast(ctx, req.Destination, req.Days())
	if err != nil {
		s.logger.Warn("forecast unavailable", map[string]interface{}{
			"destination": req.Destination,
			"error":       err.Error(),
		})
		result.Warnings = append(result.Warnings, "weather forecast unavailable")
	} else {
		result.Weather = forecast
	}

	info, err := s.currency.Info(ctx, req.Destination, "USD")
	if err != nil {
		s.logger.Warn("currency info unavailable", map[string]interface{}{
			"destination": req.Destination,
			"error":       err.Error(),
		})
		result.Warnings = append(result.Warnings, "currency information unavailable")
	} else {
		result.Currency = info
	}
}

// fillDates stamps each day with its calendar date when the model left the
// field blank.
func fillDates(it *models.Itinerary, req *models.TripRequest) {
	dates := req.Dates()
	for i := range it.Days {
		if it.Days[i].Date == "" && i < len(dates) {
			it.Days[i].Date = dates[i]
		}
		if it.Days[i].Day == 0 {
			it.Days[i].Day = i + 1
		}
	}
}

func classifyGenAIError(err error) *errors.StandardError {
	switch {
	case stderrors.Is(err, genai.ErrNotConfigured):
		return errors.NewServiceNotConfiguredError("Generative AI")
	case stderrors.Is(err, genai.ErrTimeout):
		return errors.NewGenAITimeoutError()
	case stderrors.Is(err, genai.ErrAuth):
		return errors.NewGenAIAuthError(err)
	case stderrors.Is(err, genai.ErrQuota):
		return errors.NewGenAIQuotaError(err)
	case stderrors.Is(err, genai.ErrMalformed):
		return errors.NewGenAIMalformedError(err.Error())
	default:
		return errors.NewGenAIUnavailableError(err)
	}
}
