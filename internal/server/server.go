// internal/server/server.go

// Package server exposes the HTTP API: itinerary generation and refinement,
// destination data, exports and email delivery.
package server

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"gotravel/internal/common/config"
	"gotravel/internal/common/observability"
	"gotravel/internal/models"
	"gotravel/internal/planner"
)

// PlannerService generates and refines itineraries.
type PlannerService interface {
	Generate(ctx context.Context, req *models.TripRequest) (*planner.Result, error)
	Refine(ctx context.Context, it *models.Itinerary, feedback string) (*models.Itinerary, error)
}

// LocationsService serves geodata and the explore list.
type LocationsService interface {
	Info(ctx context.Context, query string) (*models.LocationInfo, error)
	Forecast(ctx context.Context, query string, days int) (*models.Forecast, error)
	Destinations(ctx context.Context) []models.DestinationSummary
	Details(ctx context.Context, name string) (*models.LocationInfo, []models.Place, error)
	Directions(ctx context.Context, origin, destination, mode string, waypoints []string) (*models.Route, error)
	SearchPlaces(ctx context.Context, query, location string, radius int) ([]models.Place, error)
	SnapToRoads(ctx context.Context, path string, interpolate bool) ([]models.SnappedPoint, error)
	StaticMapURL(center string, zoom int, size string, markers []string) string
}

// CurrencyService serves destination currency summaries.
type CurrencyService interface {
	Info(ctx context.Context, destination, base string) (*models.CurrencyInfo, error)
}

// MailerService delivers itineraries by email. Nil when email is disabled.
type MailerService interface {
	SendItinerary(ctx context.Context, to string, it *models.Itinerary) error
}

// Availability reports which upstream providers are configured; the status
// endpoint surfaces it so the frontend can hide dead panels.
type Availability struct {
	GenAI   bool `json:"genai"`
	Maps    bool `json:"maps"`
	Weather bool `json:"weather"`
	Email   bool `json:"email"`
}

type Server struct {
	cfg          *config.Config
	planner      PlannerService
	locations    LocationsService
	currency     CurrencyService
	mailer       MailerService
	availability Availability
	obs          *observability.Observability
	logger       *zap.Logger
}

type Deps struct {
	Planner      PlannerService
	Locations    LocationsService
	Currency     CurrencyService
	Mailer       MailerService
	Availability Availability
	Obs          *observability.Observability
	Logger       *zap.Logger
}

func New(cfg *config.Config, deps Deps) *Server {
	return &Server{
		cfg:          cfg,
		planner:      deps.Planner,
		locations:    deps.Locations,
		currency:     deps.Currency,
		mailer:       deps.Mailer,
		availability: deps.Availability,
		obs:          deps.Obs,
		logger:       deps.Logger,
	}
}

// Engine builds the gin engine with middleware and routes mounted.
func (s *Server) Engine() *gin.Engine {
	if s.cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(RequestID(), AccessLog(s.logger), Metrics(), gin.Recovery())
	r.Use(cors.New(s.corsConfig()))
	_ = r.SetTrustedProxies(nil)

	limiter := NewRateLimiter(s.cfg.Server.RateLimitRPS, s.cfg.Server.RateLimitBurst)

	r.GET("/health", s.handleHealth)
	r.GET("/ready", s.handleReady)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api", limiter.Limit())
	{
		api.GET("/status", s.handleStatus)

		api.POST("/itinerary", s.handleGenerate)
		api.POST("/itinerary/refine", s.handleRefine)
		api.POST("/itinerary/export", s.handleExport)
		api.POST("/itinerary/email", s.handleEmail)

		api.GET("/destinations", s.handleDestinations)
		api.GET("/destinations/:name", s.handleDestinationDetails)
		api.POST("/location-info", s.handleLocationInfo)
		api.POST("/weather-forecast", s.handleWeatherForecast)
		api.POST("/directions", s.handleDirections)
		api.POST("/places/search", s.handlePlacesSearch)
		api.POST("/roads/snap", s.handleSnapToRoads)
		api.POST("/maps/static", s.handleStaticMap)

		api.GET("/currency/:destination", s.handleCurrency)
		api.GET("/currency/:destination/:base", s.handleCurrency)
	}

	return r
}

func (s *Server) corsConfig() cors.Config {
	c := cors.DefaultConfig()
	if len(s.cfg.Server.CORSOrigins) > 0 {
		c.AllowOrigins = s.cfg.Server.CORSOrigins
	} else {
		c.AllowAllOrigins = true
	}
	c.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	c.AllowHeaders = []string{"Content-Type", "Authorization", "Accept", "Origin", "X-Request-ID"}
	c.MaxAge = 24 * time.Hour
	return c
}
