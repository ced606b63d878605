// internal/common/config/config.go
package config

import "time"

// Config is the main application configuration struct. It is built once at
// startup and passed by reference; nothing mutates it afterwards.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Server  ServerConfig  `mapstructure:"server"`
	APIs    APIsConfig    `mapstructure:"apis"`
	Email   EmailConfig   `mapstructure:"email"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

func (a AppConfig) IsProduction() bool {
	return a.Environment == "production"
}

type ServerConfig struct {
	Port            int      `mapstructure:"port"`
	ReadTimeout     int      `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int      `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout int      `mapstructure:"shutdown_timeout"` // milliseconds
	RateLimitRPS    float64  `mapstructure:"rate_limit_rps"`
	RateLimitBurst  int      `mapstructure:"rate_limit_burst"`
	CORSOrigins     []string `mapstructure:"cors_origins"`
}

// APIsConfig holds settings for the external service adapters.
type APIsConfig struct {
	Gemini   GeminiConfig   `mapstructure:"gemini"`
	Google   GoogleConfig   `mapstructure:"google"`
	Weather  WeatherConfig  `mapstructure:"weather"`
	Currency CurrencyConfig `mapstructure:"currency"`
}

type GeminiConfig struct {
	APIKey          string  `mapstructure:"api_key"`
	BaseURL         string  `mapstructure:"base_url"`
	Model           string  `mapstructure:"model"`
	FallbackModel   string  `mapstructure:"fallback_model"`
	Timeout         int     `mapstructure:"timeout"` // milliseconds
	MaxRetries      int     `mapstructure:"max_retries"`
	Temperature     float64 `mapstructure:"temperature"`
	MaxOutputTokens int     `mapstructure:"max_output_tokens"`
}

type GoogleConfig struct {
	APIKey           string `mapstructure:"api_key"`
	BaseURL          string `mapstructure:"base_url"`
	RoadsBaseURL     string `mapstructure:"roads_base_url"`
	StaticMapBaseURL string `mapstructure:"static_map_base_url"`
	Timeout          int    `mapstructure:"timeout"` // milliseconds
}

type WeatherConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Timeout int    `mapstructure:"timeout"` // milliseconds
}

type CurrencyConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Timeout int    `mapstructure:"timeout"` // milliseconds
}

// EmailConfig holds settings for itinerary delivery over SES.
type EmailConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// GeminiTimeout returns the Gemini adapter timeout as a duration.
func (c *Config) GeminiTimeout() time.Duration {
	return time.Duration(c.APIs.Gemini.Timeout) * time.Millisecond
}

// GoogleTimeout returns the Google Maps adapter timeout as a duration.
func (c *Config) GoogleTimeout() time.Duration {
	return time.Duration(c.APIs.Google.Timeout) * time.Millisecond
}

// WeatherTimeout returns the OpenWeatherMap adapter timeout as a duration.
func (c *Config) WeatherTimeout() time.Duration {
	return time.Duration(c.APIs.Weather.Timeout) * time.Millisecond
}

// CurrencyTimeout returns the exchange-rate adapter timeout as a duration.
func (c *Config) CurrencyTimeout() time.Duration {
	return time.Duration(c.APIs.Currency.Timeout) * time.Millisecond
}
