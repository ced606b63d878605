// internal/adapters/weather/client.go
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"gotravel/internal/common/httpx"
	"gotravel/internal/common/metrics"
	"gotravel/internal/models"
)

var (
	ErrNotConfigured = errors.New("WEATHER_NOT_CONFIGURED")
	ErrUpstream      = errors.New("WEATHER_UPSTREAM_FAILED")
)

// Logger interface definition
type Logger interface {
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
	With(fields map[string]interface{}) Logger
}

type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Client talks to the OpenWeatherMap 2.5 API. All temperatures are metric.
type Client struct {
	config *Config
	http   *httpx.Client
	logger Logger
}

func NewClient(config *Config, log Logger) *Client {
	return &Client{
		config: config,
		http:   httpx.NewClient(config.Timeout),
		logger: log.With(map[string]interface{}{
			"adapter": "weather",
		}),
	}
}

// Available reports whether the adapter has an API key.
func (c *Client) Available() bool {
	return c.config.APIKey != ""
}

type conditionRecord struct {
	Main        string `json:"main"`
	Description string `json:"description"`
}

type currentResponse struct {
	Name    string            `json:"name"`
	Weather []conditionRecord `json:"weather"`
	Main    struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

type forecastResponse struct {
	City struct {
		Name string `json:"name"`
	} `json:"city"`
	List []struct {
		DtTxt   string            `json:"dt_txt"`
		Weather []conditionRecord `json:"weather"`
		Main    struct {
			TempMin  float64 `json:"temp_min"`
			TempMax  float64 `json:"temp_max"`
			Humidity int     `json:"humidity"`
		} `json:"main"`
	} `json:"list"`
}

// Current fetches current conditions at a point.
func (c *Client) Current(ctx context.Context, lat, lng float64) (*models.WeatherReport, error) {
	var resp currentResponse
	if err := c.makeRequest(ctx, "weather", "current", lat, lng, nil, &resp); err != nil {
		return nil, err
	}

	report := &models.WeatherReport{
		Location:    resp.Name,
		Temperature: resp.Main.Temp,
		FeelsLike:   resp.Main.FeelsLike,
		Humidity:    resp.Main.Humidity,
		WindSpeed:   resp.Wind.Speed,
		Timestamp:   time.Now().UTC(),
	}
	if len(resp.Weather) > 0 {
		report.Conditions = resp.Weather[0].Main
		report.Description = resp.Weather[0].Description
	}
	return report, nil
}

// Forecast fetches the 3-hour forecast and rolls the buckets up into per-day
// min/max summaries. Days is clamped to the provider's 5-day horizon.
func (c *Client) Forecast(ctx context.Context, lat, lng float64, days int) (*models.Forecast, error) {
	if days <= 0 {
		days = 5
	}
	if days > 5 {
		days = 5
	}

	// Eight 3-hour buckets per day.
	params := url.Values{}
	params.Set("cnt", strconv.Itoa(days*8))

	var resp forecastResponse
	if err := c.makeRequest(ctx, "forecast", "forecast", lat, lng, params, &resp); err != nil {
		return nil, err
	}

	type dayAgg struct {
		min, max    float64
		humidity    int
		conditions  string
		description string
		samples     int
	}
	byDate := map[string]*dayAgg{}
	for _, bucket := range resp.List {
		if len(bucket.DtTxt) < 10 {
			continue
		}
		date := bucket.DtTxt[:10]
		agg, ok := byDate[date]
		if !ok {
			agg = &dayAgg{min: bucket.Main.TempMin, max: bucket.Main.TempMax}
			byDate[date] = agg
		}
		if bucket.Main.TempMin < agg.min {
			agg.min = bucket.Main.TempMin
		}
		if bucket.Main.TempMax > agg.max {
			agg.max = bucket.Main.TempMax
		}
		agg.humidity += bucket.Main.Humidity
		agg.samples++
		// Midday bucket is the most representative for the day headline.
		if len(bucket.Weather) > 0 && (agg.conditions == "" || bucket.DtTxt[11:13] == "12") {
			agg.conditions = bucket.Weather[0].Main
			agg.description = bucket.Weather[0].Description
		}
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	if len(dates) > days {
		dates = dates[:days]
	}

	forecast := &models.Forecast{
		Location: resp.City.Name,
		Provider: "openweathermap",
		Updated:  time.Now().UTC(),
	}
	for _, date := range dates {
		agg := byDate[date]
		day := models.ForecastDay{
			Date:        date,
			MinTemp:     agg.min,
			MaxTemp:     agg.max,
			Conditions:  agg.conditions,
			Description: agg.description,
		}
		if agg.samples > 0 {
			day.Humidity = agg.humidity / agg.samples
		}
		forecast.Days = append(forecast.Days, day)
	}
	return forecast, nil
}

// SampleReport is the canned report served when the provider is down or not
// configured, so the weather panel still renders.
func SampleReport(location string) *models.WeatherReport {
	return &models.WeatherReport{
		Location:    location,
		Temperature: 22,
		FeelsLike:   22,
		Humidity:    60,
		WindSpeed:   3.5,
		Conditions:  "Clear",
		Description: "clear sky",
		Sample:      true,
		Timestamp:   time.Now().UTC(),
	}
}

func (c *Client) makeRequest(ctx context.Context, endpoint, operation string, lat, lng float64, params url.Values, out interface{}) error {
	if !c.Available() {
		return ErrNotConfigured
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lng, 'f', -1, 64))
	params.Set("units", "metric")
	params.Set("appid", c.config.APIKey)

	reqURL := fmt.Sprintf("%s/%s?%s", c.config.BaseURL, endpoint, params.Encode())
	req, err := http.NewRequest(http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	start := time.Now()
	resp, err := c.http.DoWithContext(ctx, req)
	metrics.UpstreamRequestDuration.WithLabelValues("openweathermap", operation).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("openweathermap", operation, "error").Inc()
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.UpstreamRequestsTotal.WithLabelValues("openweathermap", operation, "error").Inc()
		return fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("openweathermap", operation, "error").Inc()
		return fmt.Errorf("%w: decode error: %v", ErrUpstream, err)
	}

	metrics.UpstreamRequestsTotal.WithLabelValues("openweathermap", operation, "success").Inc()
	return nil
}
