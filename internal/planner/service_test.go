package planner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gotravel/internal/adapters/genai"
	"gotravel/internal/common/errors"
	"gotravel/internal/common/logger"
	"gotravel/internal/models"
)

// ==========================
// Mock dependencies
// ==========================

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) GenerateContent(ctx context.Context, prompt string, opts genai.GenerateOptions) (string, error) {
	args := m.Called(ctx, prompt, opts)
	return args.String(0), args.Error(1)
}

func (m *MockGenerator) Available() bool {
	return m.Called().Bool(0)
}

type MockLocations struct {
	mock.Mock
}

func (m *MockLocations) Info(ctx context.Context, query string) (*models.LocationInfo, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LocationInfo), args.Error(1)
}

func (m *MockLocations) Forecast(ctx context.Context, query string, days int) (*models.Forecast, error) {
	args := m.Called(ctx, query, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Forecast), args.Error(1)
}

func (m *MockLocations) StaticMapURL(center string, zoom int, size string, markers []string) string {
	return m.Called(center, zoom, size, markers).String(0)
}

type MockCurrency struct {
	mock.Mock
}

func (m *MockCurrency) Info(ctx context.Context, destination, base string) (*models.CurrencyInfo, error) {
	args := m.Called(ctx, destination, base)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CurrencyInfo), args.Error(1)
}

func (m *MockCurrency) CountryCurrency(country string) string {
	return m.Called(country).String(0)
}

// loggerAdapter bridges the shared test logger to the package interface.
type loggerAdapter struct {
	logger.Logger
}

func (a *loggerAdapter) With(fields map[string]interface{}) Logger {
	return &loggerAdapter{a.Logger.With(fields)}
}

// ==========================
// Test helpers
// ==========================

func parisRequest() *models.TripRequest {
	return &models.TripRequest{
		Destination: "Paris, France",
		StartDate:   "2026-09-10",
		EndDate:     "2026-09-12",
		Adults:      2,
	}
}

const parisItineraryJSON = `{
  "destination": "Paris, France",
  "start_date": "2026-09-10",
  "end_date": "2026-09-12",
  "days": [
    {"day": 1, "activities": [{"time": "morning", "description": "Louvre"}]},
    {"day": 2, "activities": [{"time": "morning", "description": "Versailles day trip"}]},
    {"day": 3, "activities": [{"time": "morning", "description": "Montmartre walk"}]}
  ]
}`

func newTestService(gen *MockGenerator, loc *MockLocations, cur *MockCurrency) *Service {
	return NewService(gen, loc, cur, &loggerAdapter{logger.NewNoOpLogger()})
}

func parisCurrentItinerary() *models.Itinerary {
	return &models.Itinerary{
		Destination:   "Paris, France",
		StartDate:     "2026-09-10",
		EndDate:       "2026-09-12",
		LocalCurrency: "EUR",
		Days: []models.DayPlan{
			{Day: 1, Activities: []models.Activity{{Time: "morning", Description: "Louvre"}}},
			{Day: 2, Activities: []models.Activity{{Time: "morning", Description: "Versailles day trip"}}},
			{Day: 3, Activities: []models.Activity{{Time: "morning", Description: "Montmartre walk"}}},
		},
	}
}

// ==========================
// Generate
// ==========================

func TestService_Generate_Success(t *testing.T) {
	gen := &MockGenerator{}
	loc := &MockLocations{}
	cur := &MockCurrency{}
	svc := newTestService(gen, loc, cur)

	req := parisRequest()

	gen.On("Available").Return(true)
	cur.On("CountryCurrency", "France").Return("EUR")
	loc.On("Info", mock.Anything, "Paris, France").Return(&models.LocationInfo{
		Address:  "Paris, France",
		Location: models.Coordinates{Lat: 48.8566, Lng: 2.3522},
		Timezone: &models.TimezoneInfo{TimeZoneID: "Europe/Paris", Source: "google"},
	}, nil)
	gen.On("GenerateContent", mock.Anything, mock.Anything, genai.GenerateOptions{JSONResponse: true}).
		Return(parisItineraryJSON, nil)
	loc.On("StaticMapURL", mock.Anything, 13, "600x400", mock.Anything).Return("https://maps.example/static")
	loc.On("Forecast", mock.Anything, "Paris, France", 3).Return(&models.Forecast{
		Location: "Paris",
		Days:     []models.ForecastDay{{Date: "2026-09-10", MinTemp: 14, MaxTemp: 22}},
	}, nil)
	cur.On("Info", mock.Anything, "Paris, France", "USD").Return(&models.CurrencyInfo{
		Country:       "France",
		LocalCurrency: "EUR",
		BaseCurrency:  "USD",
		ExchangeRate:  0.92,
	}, nil)

	result, err := svc.Generate(context.Background(), req)
	require.NoError(t, err)

	require.NotNil(t, result.Itinerary)
	assert.Equal(t, 3, result.Itinerary.DayCount())
	assert.Equal(t, "EUR", result.Itinerary.LocalCurrency)
	assert.Equal(t, "2026-09-10", result.Itinerary.Days[0].Date, "missing dates are filled in")
	assert.False(t, result.Itinerary.GeneratedAt.IsZero())

	assert.NotNil(t, result.Weather)
	assert.NotNil(t, result.Timezone)
	assert.NotNil(t, result.Currency)
	assert.Equal(t, "https://maps.example/static", result.MapURL)
	assert.Empty(t, result.Warnings)
}

func TestService_Generate_ValidationSkipsExternalCalls(t *testing.T) {
	gen := &MockGenerator{}
	loc := &MockLocations{}
	cur := &MockCurrency{}
	svc := newTestService(gen, loc, cur)

	req := parisRequest()
	req.StartDate = "2026-09-12"
	req.EndDate = "2026-09-10"

	_, err := svc.Generate(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidDateRange, errors.Normalize(err).Code)

	gen.AssertNotCalled(t, "GenerateContent", mock.Anything, mock.Anything, mock.Anything)
	loc.AssertNotCalled(t, "Info", mock.Anything, mock.Anything)
}

func TestService_Generate_PanelsDegradeIndependently(t *testing.T) {
	gen := &MockGenerator{}
	loc := &MockLocations{}
	cur := &MockCurrency{}
	svc := newTestService(gen, loc, cur)

	gen.On("Available").Return(true)
	cur.On("CountryCurrency", "France").Return("EUR")
	loc.On("Info", mock.Anything, mock.Anything).Return(nil, assertAnError())
	gen.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).Return(parisItineraryJSON, nil)
	loc.On("Forecast", mock.Anything, mock.Anything, mock.Anything).Return(nil, assertAnError())
	cur.On("Info", mock.Anything, mock.Anything, mock.Anything).Return(nil, assertAnError())

	result, err := svc.Generate(context.Background(), parisRequest())
	require.NoError(t, err, "panel failures must not fail the itinerary")

	assert.Equal(t, 3, result.Itinerary.DayCount())
	assert.Nil(t, result.Weather)
	assert.Nil(t, result.Currency)
	assert.Empty(t, result.MapURL)
	assert.Len(t, result.Warnings, 3)
}

func TestService_Generate_DayCountMismatch(t *testing.T) {
	gen := &MockGenerator{}
	loc := &MockLocations{}
	cur := &MockCurrency{}
	svc := newTestService(gen, loc, cur)

	gen.On("Available").Return(true)
	cur.On("CountryCurrency", "France").Return("EUR")
	loc.On("Info", mock.Anything, mock.Anything).Return(nil, assertAnError())
	// Two days for a three-day request.
	gen.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).Return(`{
  "destination": "Paris, France",
  "start_date": "2026-09-10",
  "end_date": "2026-09-12",
  "days": [
    {"day": 1, "activities": [{"time": "morning", "description": "Louvre"}]},
    {"day": 2, "activities": [{"time": "morning", "description": "Versailles"}]}
  ]
}`, nil)

	_, err := svc.Generate(context.Background(), parisRequest())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeGenAIMalformed, errors.Normalize(err).Code)
}

func TestService_Generate_GenAIErrors(t *testing.T) {
	tests := []struct {
		name     string
		genErr   error
		wantCode errors.ErrorCode
	}{
		{"timeout", genai.ErrTimeout, errors.ErrCodeGenAITimeout},
		{"auth", genai.ErrAuth, errors.ErrCodeGenAIAuthFailed},
		{"quota", genai.ErrQuota, errors.ErrCodeGenAIQuota},
		{"unavailable", genai.ErrUnavailable, errors.ErrCodeGenAIUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &MockGenerator{}
			loc := &MockLocations{}
			cur := &MockCurrency{}
			svc := newTestService(gen, loc, cur)

			gen.On("Available").Return(true)
			cur.On("CountryCurrency", mock.Anything).Return("EUR")
			loc.On("Info", mock.Anything, mock.Anything).Return(nil, assertAnError())
			gen.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).Return("", tt.genErr)

			_, err := svc.Generate(context.Background(), parisRequest())
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, errors.Normalize(err).Code)
		})
	}
}

func TestService_Generate_NotConfigured(t *testing.T) {
	gen := &MockGenerator{}
	svc := newTestService(gen, &MockLocations{}, &MockCurrency{})

	gen.On("Available").Return(false)

	_, err := svc.Generate(context.Background(), parisRequest())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeServiceNotConfigured, errors.Normalize(err).Code)
}

// ==========================
// Refine
// ==========================

func TestService_Refine_ReplacesWholesale(t *testing.T) {
	gen := &MockGenerator{}
	svc := newTestService(gen, &MockLocations{}, &MockCurrency{})

	current := &models.Itinerary{
		Destination:   "Paris, France",
		StartDate:     "2026-09-10",
		EndDate:       "2026-09-12",
		LocalCurrency: "EUR",
		Days: []models.DayPlan{
			{Day: 1, Activities: []models.Activity{{Time: "morning", Description: "Louvre"}}},
		},
	}

	gen.On("Available").Return(true)
	// The model drifts on destination; the frame must be restored.
	gen.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).Return(`{
  "destination": "Paris",
  "start_date": "2026-09-10",
  "end_date": "2026-09-12",
  "days": [
    {"day": 1, "activities": [{"time": "morning", "description": "Musee d'Orsay instead"}]}
  ]
}`, nil)

	refined, err := svc.Refine(context.Background(), current, "swap the Louvre for the Orsay")
	require.NoError(t, err)

	assert.Equal(t, "Paris, France", refined.Destination)
	assert.Equal(t, "EUR", refined.LocalCurrency)
	assert.Equal(t, "Musee d'Orsay instead", refined.Days[0].Activities[0].Description)
}

func TestService_Refine_KeepsDayCount(t *testing.T) {
	gen := &MockGenerator{}
	svc := newTestService(gen, &MockLocations{}, &MockCurrency{})

	current := parisCurrentItinerary()

	gen.On("Available").Return(true)
	gen.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).Return(`{
  "destination": "Paris, France",
  "start_date": "2026-09-10",
  "end_date": "2026-09-12",
  "days": [
    {"day": 1, "activities": [{"time": "morning", "description": "Louvre"}]},
    {"day": 2, "activities": [{"time": "afternoon", "description": "Slow cafe morning, Marais stroll"}]},
    {"day": 3, "activities": [{"time": "morning", "description": "Montmartre walk"}]}
  ]
}`, nil)

	refined, err := svc.Refine(context.Background(), current, "make day 2 more relaxed")
	require.NoError(t, err)

	assert.Equal(t, current.DayCount(), refined.DayCount())
	assert.Equal(t, "2026-09-10", refined.StartDate)
	assert.Equal(t, "2026-09-12", refined.EndDate)
}

func TestService_Refine_DayCountMismatch(t *testing.T) {
	gen := &MockGenerator{}
	svc := newTestService(gen, &MockLocations{}, &MockCurrency{})

	gen.On("Available").Return(true)
	// Two days back for a three-day itinerary.
	gen.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).Return(`{
  "destination": "Paris, France",
  "start_date": "2026-09-10",
  "end_date": "2026-09-12",
  "days": [
    {"day": 1, "activities": [{"time": "morning", "description": "Louvre"}]},
    {"day": 2, "activities": [{"time": "morning", "description": "Versailles"}]}
  ]
}`, nil)

	_, err := svc.Refine(context.Background(), parisCurrentItinerary(), "make day 2 more relaxed")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeGenAIMalformed, errors.Normalize(err).Code)
}

func TestService_Refine_Validation(t *testing.T) {
	gen := &MockGenerator{}
	svc := newTestService(gen, &MockLocations{}, &MockCurrency{})

	_, err := svc.Refine(context.Background(), nil, "feedback")
	assert.True(t, errors.IsValidation(err))

	it := &models.Itinerary{Days: []models.DayPlan{{Day: 1}}}
	_, err = svc.Refine(context.Background(), it, "   ")
	assert.True(t, errors.IsValidation(err))

	gen.AssertNotCalled(t, "GenerateContent", mock.Anything, mock.Anything, mock.Anything)
}

func assertAnError() error {
	return errors.NewUpstreamError(errors.ErrCodeGeocodingFailed, "geocoding", nil)
}
