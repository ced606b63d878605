package weather

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gotravel/internal/common/logger"
)

// loggerAdapter bridges the shared test logger to the package interface.
type loggerAdapter struct {
	logger.Logger
}

func (a *loggerAdapter) With(fields map[string]interface{}) Logger {
	return &loggerAdapter{a.Logger.With(fields)}
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	return NewClient(&Config{
		APIKey:  "weather-key",
		BaseURL: baseURL,
		Timeout: 5 * time.Second,
	}, &loggerAdapter{logger.NewNoOpLogger()})
}

func TestClient_Current(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/weather", r.URL.Path)
		assert.Equal(t, "weather-key", r.URL.Query().Get("appid"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		fmt.Fprint(w, `{
  "name": "Paris",
  "weather": [{"main": "Clouds", "description": "scattered clouds"}],
  "main": {"temp": 18.4, "feels_like": 17.9, "humidity": 65},
  "wind": {"speed": 4.1}
}`)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	report, err := client.Current(context.Background(), 48.8566, 2.3522)

	require.NoError(t, err)
	assert.Equal(t, "Paris", report.Location)
	assert.Equal(t, 18.4, report.Temperature)
	assert.Equal(t, 65, report.Humidity)
	assert.Equal(t, "Clouds", report.Conditions)
	assert.Equal(t, "scattered clouds", report.Description)
	assert.False(t, report.Sample)
}

func TestClient_Current_NotConfigured(t *testing.T) {
	client := NewClient(&Config{Timeout: time.Second}, &loggerAdapter{logger.NewNoOpLogger()})
	_, err := client.Current(context.Background(), 0, 0)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestClient_Current_UpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.Current(context.Background(), 0, 0)
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestClient_Forecast_RollsUpBuckets(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forecast", r.URL.Path)
		assert.Equal(t, "16", r.URL.Query().Get("cnt"), "eight buckets per day")
		fmt.Fprint(w, `{
  "city": {"name": "Paris"},
  "list": [
    {"dt_txt": "2026-09-10 09:00:00", "weather": [{"main": "Rain", "description": "light rain"}], "main": {"temp_min": 12, "temp_max": 16, "humidity": 80}},
    {"dt_txt": "2026-09-10 12:00:00", "weather": [{"main": "Clouds", "description": "broken clouds"}], "main": {"temp_min": 14, "temp_max": 21, "humidity": 70}},
    {"dt_txt": "2026-09-10 18:00:00", "weather": [{"main": "Clear", "description": "clear sky"}], "main": {"temp_min": 13, "temp_max": 19, "humidity": 60}},
    {"dt_txt": "2026-09-11 12:00:00", "weather": [{"main": "Clear", "description": "clear sky"}], "main": {"temp_min": 15, "temp_max": 24, "humidity": 55}}
  ]
}`)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	forecast, err := client.Forecast(context.Background(), 48.8566, 2.3522, 2)

	require.NoError(t, err)
	assert.Equal(t, "Paris", forecast.Location)
	assert.Equal(t, "openweathermap", forecast.Provider)
	require.Len(t, forecast.Days, 2)

	day1 := forecast.Days[0]
	assert.Equal(t, "2026-09-10", day1.Date)
	assert.Equal(t, 12.0, day1.MinTemp)
	assert.Equal(t, 21.0, day1.MaxTemp)
	assert.Equal(t, "Clouds", day1.Conditions, "midday bucket wins the headline")
	assert.Equal(t, 70, day1.Humidity)

	day2 := forecast.Days[1]
	assert.Equal(t, "2026-09-11", day2.Date)
	assert.Equal(t, 24.0, day2.MaxTemp)
}

func TestClient_Forecast_ClampsDays(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "40", r.URL.Query().Get("cnt"), "clamped to the 5-day horizon")
		fmt.Fprint(w, `{"city": {"name": "Paris"}, "list": []}`)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.Forecast(context.Background(), 0, 0, 14)
	require.NoError(t, err)
}

func TestSampleReport(t *testing.T) {
	report := SampleReport("Paris")

	assert.True(t, report.Sample)
	assert.Equal(t, "Paris", report.Location)
	assert.Equal(t, 22.0, report.Temperature)
	assert.Equal(t, "clear sky", report.Description)
}
