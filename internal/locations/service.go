// internal/locations/service.go

// Package locations aggregates geodata for destinations: geocoding, nearby
// places, time zones, weather, routing and the curated explore list.
package locations

import (
	"context"
	stderrors "errors"
	"fmt"
	"sort"
	"time"

	"github.com/samber/lo"
	lop "github.com/samber/lo/parallel"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"gotravel/internal/adapters/googlemaps"
	"gotravel/internal/adapters/weather"
	"gotravel/internal/common/errors"
	"gotravel/internal/models"
)

// Logger interface definition
type Logger interface {
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	With(fields map[string]interface{}) Logger
}

// MapsClient is the slice of the Google Maps adapter this service needs.
type MapsClient interface {
	Available() bool
	Geocode(ctx context.Context, address string) (*models.GeocodeResult, error)
	NearbySearch(ctx context.Context, lat, lng float64, placeType string, radius int) ([]models.Place, error)
	TextSearch(ctx context.Context, query, location string, radius int) ([]models.Place, error)
	Directions(ctx context.Context, origin, destination, mode string, waypoints []string) (*models.Route, error)
	Timezone(ctx context.Context, lat, lng float64, at time.Time) (*models.TimezoneInfo, error)
	SnapToRoads(ctx context.Context, path string, interpolate bool) ([]models.SnappedPoint, error)
	StaticMapURL(center string, zoom int, size string, markers []string) string
}

// WeatherClient is the slice of the weather adapter this service needs.
type WeatherClient interface {
	Available() bool
	Current(ctx context.Context, lat, lng float64) (*models.WeatherReport, error)
	Forecast(ctx context.Context, lat, lng float64, days int) (*models.Forecast, error)
}

type Service struct {
	maps    MapsClient
	weather WeatherClient
	logger  Logger
}

func NewService(maps MapsClient, weather WeatherClient, log Logger) *Service {
	return &Service{
		maps:    maps,
		weather: weather,
		logger: log.With(map[string]interface{}{
			"component": "locations",
		}),
	}
}

// curatedDestination is one entry of the static explore list.
type curatedDestination struct {
	Name         string
	Country      string
	Emoji        string
	Lat, Lng     float64
	Categories   []string
	SafetyRating float64
	SafetyTips   string
}

var curatedDestinations = []curatedDestination{
	{"Paris", "France", "🗼", 48.8566, 2.3522, []string{"city", "popular", "cultural"}, 4.2, "Be aware of pickpockets in tourist areas"},
	{"Tokyo", "Japan", "🏯", 35.6762, 139.6503, []string{"city", "popular", "cultural"}, 4.8, "Very safe city with excellent public safety"},
	{"New York", "USA", "🗽", 40.7128, -74.0060, []string{"city", "popular"}, 4.0, "Stay alert in busy areas, avoid isolated places at night"},
	{"London", "UK", "🇬🇧", 51.5074, -0.1278, []string{"city", "popular", "cultural"}, 4.3, "Generally safe, watch for petty theft in crowded areas"},
	{"Dubai", "UAE", "🏙️", 25.2048, 55.2708, []string{"city", "popular"}, 4.6, "Very safe with strict laws and good security"},
	{"Reykjavik", "Iceland", "🌋", 64.1466, -21.9426, []string{"nature", "adventure"}, 4.9, "Extremely safe, main concerns are weather-related"},
	{"Cape Town", "South Africa", "🦁", -33.9249, 18.4241, []string{"nature", "adventure", "cultural"}, 3.5, "Avoid walking alone at night, stay in safe neighborhoods"},
	{"Maldives", "Maldives", "🏖️", 3.2028, 73.2207, []string{"beach", "popular"}, 4.7, "Very safe resorts, follow water safety guidelines"},
	{"Bali", "Indonesia", "🌺", -8.3405, 115.0920, []string{"beach", "cultural", "nature"}, 4.1, "Generally safe, be cautious with street food and water"},
	{"Kyoto", "Japan", "🎌", 35.0116, 135.7681, []string{"cultural", "nature"}, 4.8, "Extremely safe with very low crime rates"},
	{"Petra", "Jordan", "🏜️", 30.3285, 35.4444, []string{"cultural", "adventure"}, 4.0, "Generally safe, follow tour guides and stay hydrated"},
	{"Barcelona", "Spain", "🏖️", 41.3851, 2.1734, []string{"city", "beach", "cultural"}, 4.1, "Watch for pickpockets, especially in tourist areas"},
}

// Info gathers everything known about a destination. Geocoding is the only
// hard requirement; timezone, weather and nearby places degrade to nil.
func (s *Service) Info(ctx context.Context, query string) (*models.LocationInfo, error) {
	geo, err := s.maps.Geocode(ctx, query)
	if err != nil {
		if stderrors.Is(err, googlemaps.ErrZeroResults) {
			return nil, errors.NewLocationNotFoundError(query)
		}
		if stderrors.Is(err, googlemaps.ErrNotConfigured) {
			return nil, errors.NewServiceNotConfiguredError("Google Maps")
		}
		return nil, errors.NewUpstreamError(errors.ErrCodeGeocodingFailed, "geocoding", err)
	}

	info := &models.LocationInfo{
		Address:  geo.FormattedAddress,
		Location: geo.Location,
	}

	if tz, err := s.maps.Timezone(ctx, geo.Location.Lat, geo.Location.Lng, time.Now()); err == nil {
		info.Timezone = tz
	} else {
		s.logger.Warn("timezone lookup failed", map[string]interface{}{"query": query, "error": err.Error()})
	}

	info.Weather = s.currentOrSample(ctx, geo.FormattedAddress, geo.Location.Lat, geo.Location.Lng)

	if attractions, err := s.maps.NearbySearch(ctx, geo.Location.Lat, geo.Location.Lng, "tourist_attraction", 0); err == nil {
		info.Attractions = topRated(attractions, 10)
	} else {
		s.logger.Warn("attractions search failed", map[string]interface{}{"query": query, "error": err.Error()})
	}
	if restaurants, err := s.maps.NearbySearch(ctx, geo.Location.Lat, geo.Location.Lng, "restaurant", 0); err == nil {
		info.Restaurants = topRated(restaurants, 10)
	} else {
		s.logger.Warn("restaurants search failed", map[string]interface{}{"query": query, "error": err.Error()})
	}

	return info, nil
}

// Forecast geocodes the query and returns the multi-day forecast.
func (s *Service) Forecast(ctx context.Context, query string, days int) (*models.Forecast, error) {
	geo, err := s.maps.Geocode(ctx, query)
	if err != nil {
		if stderrors.Is(err, googlemaps.ErrZeroResults) {
			return nil, errors.NewLocationNotFoundError(query)
		}
		return nil, errors.NewUpstreamError(errors.ErrCodeGeocodingFailed, "geocoding", err)
	}

	forecast, err := s.weather.Forecast(ctx, geo.Location.Lat, geo.Location.Lng, days)
	if err != nil {
		return nil, errors.NewUpstreamError(errors.ErrCodeWeatherUnavailable, "weather", err)
	}
	if forecast.Location == "" {
		forecast.Location = geo.FormattedAddress
	}
	return forecast, nil
}

// CurrentWeather returns current conditions at a point, with the canned
// sample standing in when the provider is unreachable.
func (s *Service) CurrentWeather(ctx context.Context, location string, lat, lng float64) *models.WeatherReport {
	return s.currentOrSample(ctx, location, lat, lng)
}

// Directions proxies a routing request.
func (s *Service) Directions(ctx context.Context, origin, destination, mode string, waypoints []string) (*models.Route, error) {
	route, err := s.maps.Directions(ctx, origin, destination, mode, waypoints)
	if err != nil {
		if stderrors.Is(err, googlemaps.ErrZeroResults) {
			return nil, errors.NewLocationNotFoundError(fmt.Sprintf("%s -> %s", origin, destination))
		}
		return nil, errors.NewUpstreamError(errors.ErrCodeDirectionsFailed, "directions", err)
	}
	return route, nil
}

// SearchPlaces proxies a free-text places search.
func (s *Service) SearchPlaces(ctx context.Context, query, location string, radius int) ([]models.Place, error) {
	places, err := s.maps.TextSearch(ctx, query, location, radius)
	if err != nil {
		return nil, errors.NewUpstreamError(errors.ErrCodePlacesFailed, "places", err)
	}
	return places, nil
}

// SnapToRoads proxies a road-snapping request.
func (s *Service) SnapToRoads(ctx context.Context, path string, interpolate bool) ([]models.SnappedPoint, error) {
	points, err := s.maps.SnapToRoads(ctx, path, interpolate)
	if err != nil {
		return nil, errors.NewUpstreamError(errors.ErrCodeRoadsFailed, "roads", err)
	}
	return points, nil
}

// StaticMapURL builds a static map image URL.
func (s *Service) StaticMapURL(center string, zoom int, size string, markers []string) string {
	return s.maps.StaticMapURL(center, zoom, size, markers)
}

// Destinations returns the curated explore list enriched with live weather
// and timezone data. Entries are enriched concurrently; a failed lookup
// falls back to the static fields.
func (s *Service) Destinations(ctx context.Context) []models.DestinationSummary {
	return lop.Map(curatedDestinations, func(dest curatedDestination, _ int) models.DestinationSummary {
		summary := models.DestinationSummary{
			Name:         dest.Name,
			Country:      dest.Country,
			Emoji:        dest.Emoji,
			Location:     models.Coordinates{Lat: dest.Lat, Lng: dest.Lng},
			Categories:   dest.Categories,
			SafetyRating: dest.SafetyRating,
			SafetyTips:   dest.SafetyTips,
			Weather:      "Data unavailable",
			Timezone:     "UTC",
			Description:  fmt.Sprintf("Explore the amazing %s with its unique culture, attractions, and experiences.", dest.Name),
		}

		report := s.currentOrSample(ctx, dest.Name, dest.Lat, dest.Lng)
		if report != nil {
			summary.Weather = fmt.Sprintf("%.0f°C, %s", report.Temperature, titleCase(report.Description))
		}

		if tz, err := s.maps.Timezone(ctx, dest.Lat, dest.Lng, time.Now()); err == nil {
			if tz.TimeZoneName != "" {
				summary.Timezone = tz.TimeZoneName
			} else {
				summary.Timezone = tz.TimeZoneID
			}
		}

		return summary
	})
}

// Details returns full location info for one destination plus its top
// attractions from a wider search radius.
func (s *Service) Details(ctx context.Context, name string) (*models.LocationInfo, []models.Place, error) {
	info, err := s.Info(ctx, name)
	if err != nil {
		return nil, nil, err
	}

	attractions, err := s.maps.NearbySearch(ctx, info.Location.Lat, info.Location.Lng, "tourist_attraction", 10000)
	if err != nil {
		s.logger.Warn("wide attractions search failed", map[string]interface{}{"name": name, "error": err.Error()})
		return info, info.Attractions, nil
	}
	return info, topRated(attractions, 10), nil
}

func (s *Service) currentOrSample(ctx context.Context, location string, lat, lng float64) *models.WeatherReport {
	report, err := s.weather.Current(ctx, lat, lng)
	if err != nil {
		s.logger.Warn("current weather unavailable, serving sample", map[string]interface{}{
			"location": location,
			"error":    err.Error(),
		})
		return weather.SampleReport(location)
	}
	if report.Location == "" {
		report.Location = location
	}
	return report
}

// topRated sorts places by rating and keeps the first n.
func topRated(places []models.Place, n int) []models.Place {
	sorted := make([]models.Place, len(places))
	copy(sorted, places)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Rating > sorted[j].Rating
	})
	return lo.Slice(sorted, 0, n)
}

// titleCase builds a fresh caser per call; cases.Caser is stateful and
// Destinations enriches entries concurrently.
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}
