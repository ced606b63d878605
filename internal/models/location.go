package models

import "time"

// Coordinates is a WGS84 lat/lng pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// GeocodeResult is a resolved address.
type GeocodeResult struct {
	FormattedAddress string      `json:"formatted_address"`
	Location         Coordinates `json:"location"`
	PlaceID          string      `json:"place_id,omitempty"`
	Country          string      `json:"country,omitempty"`
}

// Place is a point of interest from a places search.
type Place struct {
	PlaceID     string      `json:"place_id,omitempty"`
	Name        string      `json:"name"`
	Address     string      `json:"address,omitempty"`
	Rating      float64     `json:"rating,omitempty"`
	UserRatings int         `json:"user_ratings,omitempty"`
	Types       []string    `json:"types,omitempty"`
	Location    Coordinates `json:"location"`
}

// RouteLeg is one leg of a directions result.
type RouteLeg struct {
	StartAddress    string `json:"start_address"`
	EndAddress      string `json:"end_address"`
	DistanceMeters  int    `json:"distance_meters"`
	DurationSeconds int    `json:"duration_seconds"`
}

// Route is a directions result between two points.
type Route struct {
	Summary         string     `json:"summary,omitempty"`
	Legs            []RouteLeg `json:"legs"`
	DistanceMeters  int        `json:"distance_meters"`
	DurationSeconds int        `json:"duration_seconds"`
	Polyline        string     `json:"polyline,omitempty"`
}

// SnappedPoint is a GPS point snapped to the road network.
type SnappedPoint struct {
	Location      Coordinates `json:"location"`
	OriginalIndex *int        `json:"original_index,omitempty"`
	PlaceID       string      `json:"place_id,omitempty"`
}

// TimezoneInfo describes the destination's time zone. Source records whether
// the value came from the live API or the offline fallback.
type TimezoneInfo struct {
	TimeZoneID   string `json:"timezone_id"`
	TimeZoneName string `json:"timezone_name,omitempty"`
	RawOffset    int    `json:"raw_offset,omitempty"`
	DSTOffset    int    `json:"dst_offset,omitempty"`
	Source       string `json:"source"` // google | offline
}

// WeatherReport is the current conditions at a location. Sample marks the
// canned report served when the provider is unavailable.
type WeatherReport struct {
	Location    string    `json:"location"`
	Temperature float64   `json:"temperature"` // Celsius
	FeelsLike   float64   `json:"feels_like"`
	Humidity    int       `json:"humidity"`
	WindSpeed   float64   `json:"wind_speed"` // m/s
	Conditions  string    `json:"conditions"`
	Description string    `json:"description"`
	Sample      bool      `json:"sample,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// ForecastDay is one day of rolled-up forecast buckets.
type ForecastDay struct {
	Date        string  `json:"date"`
	MinTemp     float64 `json:"min_temp"`
	MaxTemp     float64 `json:"max_temp"`
	Conditions  string  `json:"conditions"`
	Description string  `json:"description"`
	Humidity    int     `json:"humidity"`
}

// Forecast is a multi-day weather forecast for a location.
type Forecast struct {
	Location string        `json:"location"`
	Provider string        `json:"provider"`
	Days     []ForecastDay `json:"days"`
	Updated  time.Time     `json:"updated"`
}

// CurrencyInfo is the destination currency summary shown with an itinerary.
type CurrencyInfo struct {
	Country       string  `json:"country"`
	LocalCurrency string  `json:"local_currency"`
	BaseCurrency  string  `json:"base_currency"`
	ExchangeRate  float64 `json:"exchange_rate"`
	FormattedRate string  `json:"formatted_rate"`
}

// LocationInfo aggregates everything the app knows about a destination.
type LocationInfo struct {
	Address     string         `json:"address"`
	Location    Coordinates    `json:"location"`
	Timezone    *TimezoneInfo  `json:"timezone,omitempty"`
	Weather     *WeatherReport `json:"weather,omitempty"`
	Attractions []Place        `json:"attractions,omitempty"`
	Restaurants []Place        `json:"restaurants,omitempty"`
}

// DestinationSummary is one entry of the curated explore list, enriched with
// live data where available.
type DestinationSummary struct {
	Name         string      `json:"name"`
	Country      string      `json:"country"`
	Emoji        string      `json:"emoji"`
	Location     Coordinates `json:"location"`
	Categories   []string    `json:"categories"`
	SafetyRating float64     `json:"safety_rating"`
	SafetyTips   string      `json:"safety_tips"`
	Weather      string      `json:"weather"`
	Timezone     string      `json:"timezone"`
	Description  string      `json:"description"`
}
