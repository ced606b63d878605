package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gotravel/internal/common/config"
	"gotravel/internal/common/errors"
	"gotravel/internal/models"
	"gotravel/internal/planner"
)

// ==========================
// Stub services
// ==========================

type stubPlanner struct {
	generate func(ctx context.Context, req *models.TripRequest) (*planner.Result, error)
	refine   func(ctx context.Context, it *models.Itinerary, feedback string) (*models.Itinerary, error)
}

func (s *stubPlanner) Generate(ctx context.Context, req *models.TripRequest) (*planner.Result, error) {
	return s.generate(ctx, req)
}

func (s *stubPlanner) Refine(ctx context.Context, it *models.Itinerary, feedback string) (*models.Itinerary, error) {
	return s.refine(ctx, it, feedback)
}

type stubLocations struct {
	info         func(ctx context.Context, query string) (*models.LocationInfo, error)
	forecast     func(ctx context.Context, query string, days int) (*models.Forecast, error)
	destinations func(ctx context.Context) []models.DestinationSummary
	staticMapURL func(center string, zoom int, size string, markers []string) string
}

func (s *stubLocations) Info(ctx context.Context, query string) (*models.LocationInfo, error) {
	return s.info(ctx, query)
}

func (s *stubLocations) Forecast(ctx context.Context, query string, days int) (*models.Forecast, error) {
	return s.forecast(ctx, query, days)
}

func (s *stubLocations) Destinations(ctx context.Context) []models.DestinationSummary {
	return s.destinations(ctx)
}

func (s *stubLocations) Details(ctx context.Context, name string) (*models.LocationInfo, []models.Place, error) {
	info, err := s.info(ctx, name)
	if err != nil {
		return nil, nil, err
	}
	return info, info.Attractions, nil
}

func (s *stubLocations) Directions(ctx context.Context, origin, destination, mode string, waypoints []string) (*models.Route, error) {
	return &models.Route{Summary: "A13"}, nil
}

func (s *stubLocations) SearchPlaces(ctx context.Context, query, location string, radius int) ([]models.Place, error) {
	return []models.Place{{Name: "Louvre Museum"}}, nil
}

func (s *stubLocations) SnapToRoads(ctx context.Context, path string, interpolate bool) ([]models.SnappedPoint, error) {
	return []models.SnappedPoint{{PlaceID: "road1"}}, nil
}

func (s *stubLocations) StaticMapURL(center string, zoom int, size string, markers []string) string {
	if s.staticMapURL == nil {
		return "https://maps.example/static"
	}
	return s.staticMapURL(center, zoom, size, markers)
}

type stubCurrency struct {
	info func(ctx context.Context, destination, base string) (*models.CurrencyInfo, error)
}

func (s *stubCurrency) Info(ctx context.Context, destination, base string) (*models.CurrencyInfo, error) {
	return s.info(ctx, destination, base)
}

type stubMailer struct {
	send func(ctx context.Context, to string, it *models.Itinerary) error
}

func (s *stubMailer) SendItinerary(ctx context.Context, to string, it *models.Itinerary) error {
	return s.send(ctx, to, it)
}

// ==========================
// Fixtures
// ==========================

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:        "gotravel",
			Version:     "test",
			Environment: "test",
		},
		Server: config.ServerConfig{
			RateLimitRPS:   100,
			RateLimitBurst: 100,
		},
	}
}

func testItinerary() *models.Itinerary {
	return &models.Itinerary{
		Destination: "Paris, France",
		StartDate:   "2026-09-10",
		EndDate:     "2026-09-12",
		Days: []models.DayPlan{
			{Day: 1, Date: "2026-09-10", Activities: []models.Activity{
				{Time: "morning", Description: "Louvre highlights tour"},
			}},
		},
	}
}

func defaultDeps() Deps {
	return Deps{
		Planner: &stubPlanner{
			generate: func(ctx context.Context, req *models.TripRequest) (*planner.Result, error) {
				return &planner.Result{Itinerary: testItinerary()}, nil
			},
			refine: func(ctx context.Context, it *models.Itinerary, feedback string) (*models.Itinerary, error) {
				return it, nil
			},
		},
		Locations: &stubLocations{
			info: func(ctx context.Context, query string) (*models.LocationInfo, error) {
				return &models.LocationInfo{Address: "Paris, France"}, nil
			},
			forecast: func(ctx context.Context, query string, days int) (*models.Forecast, error) {
				return &models.Forecast{Location: "Paris, France"}, nil
			},
			destinations: func(ctx context.Context) []models.DestinationSummary {
				return []models.DestinationSummary{{Name: "Paris"}, {Name: "Tokyo"}}
			},
		},
		Currency: &stubCurrency{
			info: func(ctx context.Context, destination, base string) (*models.CurrencyInfo, error) {
				return &models.CurrencyInfo{LocalCurrency: "EUR", BaseCurrency: "USD"}, nil
			},
		},
		Availability: Availability{GenAI: true, Maps: true, Weather: true},
		Logger:       zap.NewNop(),
	}
}

func newTestEngine(t *testing.T, mutate func(*Deps)) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	deps := defaultDeps()
	if mutate != nil {
		mutate(&deps)
	}
	return New(testConfig(), deps).Engine()
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

// ==========================
// Itinerary endpoints
// ==========================

func TestHandleGenerate_Success(t *testing.T) {
	engine := newTestEngine(t, nil)

	rec := doJSON(t, engine, http.MethodPost, "/api/itinerary", gin.H{
		"destination": "Paris, France",
		"start_date":  "2026-09-10",
		"end_date":    "2026-09-12",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	itinerary := body["itinerary"].(map[string]interface{})
	assert.Equal(t, "Paris, France", itinerary["destination"])
}

func TestHandleGenerate_ValidationError(t *testing.T) {
	engine := newTestEngine(t, func(d *Deps) {
		d.Planner = &stubPlanner{
			generate: func(ctx context.Context, req *models.TripRequest) (*planner.Result, error) {
				return nil, errors.NewInvalidDateRangeError("2026-09-12", "2026-09-10")
			},
		}
	})

	rec := doJSON(t, engine, http.MethodPost, "/api/itinerary", gin.H{
		"destination": "Paris",
		"start_date":  "2026-09-12",
		"end_date":    "2026-09-10",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, false, body["success"])
	errBody := body["error"].(map[string]interface{})
	assert.Equal(t, "INVALID_DATE_RANGE", errBody["code"])
	assert.Equal(t, false, errBody["retryable"])
}

func TestHandleGenerate_MalformedBody(t *testing.T) {
	engine := newTestEngine(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/itinerary", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "VALIDATION_FAILED", body["error"].(map[string]interface{})["code"])
}

func TestHandleGenerate_UpstreamUnavailable(t *testing.T) {
	engine := newTestEngine(t, func(d *Deps) {
		d.Planner = &stubPlanner{
			generate: func(ctx context.Context, req *models.TripRequest) (*planner.Result, error) {
				return nil, errors.NewGenAIUnavailableError(nil)
			},
		}
	})

	rec := doJSON(t, engine, http.MethodPost, "/api/itinerary", gin.H{
		"destination": "Paris",
		"start_date":  "2026-09-10",
		"end_date":    "2026-09-12",
	})

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandleRefine(t *testing.T) {
	engine := newTestEngine(t, nil)

	rec := doJSON(t, engine, http.MethodPost, "/api/itinerary/refine", gin.H{
		"itinerary": testItinerary(),
		"feedback":  "add more food stops",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.NotNil(t, body["itinerary"])
}

func TestHandleRefine_MissingFeedback(t *testing.T) {
	engine := newTestEngine(t, nil)

	rec := doJSON(t, engine, http.MethodPost, "/api/itinerary/refine", gin.H{
		"itinerary": testItinerary(),
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ==========================
// Export and email
// ==========================

func TestHandleExport_Formats(t *testing.T) {
	tests := []struct {
		format      string
		contentType string
		filename    string
	}{
		{"ics", "text/calendar; charset=utf-8", "itinerary-paris-france.ics"},
		{"pdf", "application/pdf", "itinerary-paris-france.pdf"},
		{"csv", "text/csv; charset=utf-8", "itinerary-paris-france.csv"},
	}

	engine := newTestEngine(t, nil)
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			rec := doJSON(t, engine, http.MethodPost, "/api/itinerary/export", gin.H{
				"itinerary": testItinerary(),
				"format":    tt.format,
			})

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.contentType, rec.Header().Get("Content-Type"))
			assert.Contains(t, rec.Header().Get("Content-Disposition"), tt.filename)
			assert.NotEmpty(t, rec.Body.Bytes())
		})
	}
}

func TestHandleExport_UnknownFormat(t *testing.T) {
	engine := newTestEngine(t, nil)

	rec := doJSON(t, engine, http.MethodPost, "/api/itinerary/export", gin.H{
		"itinerary": testItinerary(),
		"format":    "docx",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.Contains(t, body["error"].(map[string]interface{})["details"], "unknown export format")
}

func TestHandleEmail(t *testing.T) {
	var sentTo string
	engine := newTestEngine(t, func(d *Deps) {
		d.Mailer = &stubMailer{
			send: func(ctx context.Context, to string, it *models.Itinerary) error {
				sentTo = to
				return nil
			},
		}
		d.Availability.Email = true
	})

	rec := doJSON(t, engine, http.MethodPost, "/api/itinerary/email", gin.H{
		"itinerary": testItinerary(),
		"to":        "traveler@example.com",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "traveler@example.com", sentTo)
	assert.Equal(t, "traveler@example.com", decode(t, rec)["sent_to"])
}

func TestHandleEmail_NotConfigured(t *testing.T) {
	engine := newTestEngine(t, nil)

	rec := doJSON(t, engine, http.MethodPost, "/api/itinerary/email", gin.H{
		"itinerary": testItinerary(),
		"to":        "traveler@example.com",
	})

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "SERVICE_NOT_CONFIGURED", body["error"].(map[string]interface{})["code"])
}

func TestHandleEmail_InvalidAddress(t *testing.T) {
	engine := newTestEngine(t, func(d *Deps) {
		d.Mailer = &stubMailer{send: func(ctx context.Context, to string, it *models.Itinerary) error { return nil }}
	})

	rec := doJSON(t, engine, http.MethodPost, "/api/itinerary/email", gin.H{
		"itinerary": testItinerary(),
		"to":        "not-an-address",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ==========================
// Locations and currency
// ==========================

func TestHandleDestinations(t *testing.T) {
	engine := newTestEngine(t, nil)

	rec := doJSON(t, engine, http.MethodGet, "/api/destinations", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, float64(2), body["count"])
}

func TestHandleLocationInfo_NotFound(t *testing.T) {
	engine := newTestEngine(t, func(d *Deps) {
		d.Locations = &stubLocations{
			info: func(ctx context.Context, query string) (*models.LocationInfo, error) {
				return nil, errors.NewLocationNotFoundError(query)
			},
		}
	})

	rec := doJSON(t, engine, http.MethodPost, "/api/location-info", gin.H{"location": "xyzzy"})

	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "LOCATION_NOT_FOUND", body["error"].(map[string]interface{})["code"])
}

func TestHandleStaticMap_NotConfigured(t *testing.T) {
	engine := newTestEngine(t, func(d *Deps) {
		d.Locations = &stubLocations{
			staticMapURL: func(center string, zoom int, size string, markers []string) string { return "" },
		}
	})

	rec := doJSON(t, engine, http.MethodPost, "/api/maps/static", gin.H{"center": "48.8,2.3"})

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandleCurrency(t *testing.T) {
	engine := newTestEngine(t, nil)

	rec := doJSON(t, engine, http.MethodGet, "/api/currency/Paris,%20France", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	currency := body["currency"].(map[string]interface{})
	assert.Equal(t, "EUR", currency["local_currency"])
}

// ==========================
// Status endpoints
// ==========================

func TestHandleHealth(t *testing.T) {
	engine := newTestEngine(t, nil)

	rec := doJSON(t, engine, http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "gotravel", body["service"])
}

func TestHandleReady(t *testing.T) {
	engine := newTestEngine(t, nil)
	rec := doJSON(t, engine, http.MethodGet, "/ready", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	engine = newTestEngine(t, func(d *Deps) {
		d.Availability.GenAI = false
	})
	rec = doJSON(t, engine, http.MethodGet, "/ready", nil)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "not_ready", decode(t, rec)["status"])
}

func TestHandleStatus(t *testing.T) {
	engine := newTestEngine(t, func(d *Deps) {
		d.Availability = Availability{GenAI: true, Maps: true, Weather: false, Email: false}
	})

	rec := doJSON(t, engine, http.MethodGet, "/api/status", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "healthy", body["overall_status"])

	apis := body["apis"].(map[string]interface{})
	assert.Equal(t, true, apis["gemini"].(map[string]interface{})["configured"])
	assert.Equal(t, false, apis["openweather"].(map[string]interface{})["configured"])
}

func TestHandleStatus_DegradedWithoutGenAI(t *testing.T) {
	engine := newTestEngine(t, func(d *Deps) {
		d.Availability = Availability{}
	})

	rec := doJSON(t, engine, http.MethodGet, "/api/status", nil)
	assert.Equal(t, "degraded", decode(t, rec)["overall_status"])
}

// ==========================
// Middleware
// ==========================

func TestRequestIDPropagation(t *testing.T) {
	engine := newTestEngine(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "req-42")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, "req-42", rec.Header().Get("X-Request-ID"))
}

func TestRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()
	cfg.Server.RateLimitRPS = 1
	cfg.Server.RateLimitBurst = 2
	engine := New(cfg, defaultDeps()).Engine()

	var last int
	for i := 0; i < 5; i++ {
		rec := doJSON(t, engine, http.MethodGet, "/api/status", nil)
		last = rec.Code
	}

	require.Equal(t, http.StatusTooManyRequests, last)
	rec := doJSON(t, engine, http.MethodGet, "/api/status", nil)
	body := decode(t, rec)
	assert.Equal(t, "RATE_LIMITED", body["error"].(map[string]interface{})["code"])
}
