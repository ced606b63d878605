// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	// Base config
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like APIS_GEMINI_API_KEY
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	// Environment-specific overlay, e.g. config.production.yaml
	viper.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = viper.MergeInConfig() // ignore error if not found

	expandEnvVars(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.App.Environment = env
	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile tries .env from a few locations so the binary and the tests
// both pick it up regardless of working directory.
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// expandEnvVars resolves ${VAR} placeholders in string config values.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		val := v.Get(key)

		if strVal, ok := val.(string); ok {
			if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
				expanded := os.ExpandEnv(strVal)
				if expanded != strVal && expanded != "" {
					v.Set(key, expanded)
				}
			}
		}
	}
}

// overrideEmptyConfig maps the flat env variable names the deployment uses
// onto the nested config fields when the YAML left them empty.
func overrideEmptyConfig(cfg *Config) {
	if cfg.APIs.Gemini.APIKey == "" {
		if val := os.Getenv("GEMINI_API_KEY"); val != "" {
			cfg.APIs.Gemini.APIKey = val
		}
	}
	if cfg.APIs.Google.APIKey == "" {
		if val := os.Getenv("GOOGLE_API_KEY"); val != "" {
			cfg.APIs.Google.APIKey = val
		}
	}
	if cfg.APIs.Weather.APIKey == "" {
		if val := os.Getenv("OPENWEATHERMAP_API_KEY"); val != "" {
			cfg.APIs.Weather.APIKey = val
		}
	}
	if val := os.Getenv("PORT"); val != "" {
		if port, err := strconv.Atoi(val); err == nil {
			cfg.Server.Port = port
		}
	}
	if cfg.Email.FromAddress == "" {
		if val := os.Getenv("ITINERARY_FROM_EMAIL"); val != "" {
			cfg.Email.FromAddress = val
		}
	}
	if cfg.Email.Region == "" {
		if val := os.Getenv("AWS_REGION"); val != "" {
			cfg.Email.Region = val
		}
	}
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "gotravel"
	}
	if cfg.App.Version == "" {
		cfg.App.Version = "dev"
	}

	// Server defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 5000
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 20000
	}
	if cfg.Server.WriteTimeout == 0 {
		// Gemini generation can take a while; the write timeout must cover it.
		cfg.Server.WriteTimeout = 120000
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10000
	}
	if cfg.Server.RateLimitRPS == 0 {
		cfg.Server.RateLimitRPS = 1
	}
	if cfg.Server.RateLimitBurst == 0 {
		cfg.Server.RateLimitBurst = 5
	}

	// Adapter defaults
	if cfg.APIs.Gemini.BaseURL == "" {
		cfg.APIs.Gemini.BaseURL = "https://generativelanguage.googleapis.com"
	}
	if cfg.APIs.Gemini.Model == "" {
		cfg.APIs.Gemini.Model = "gemini-2.5-flash"
	}
	if cfg.APIs.Gemini.FallbackModel == "" {
		cfg.APIs.Gemini.FallbackModel = "gemini-pro"
	}
	if cfg.APIs.Gemini.Timeout == 0 {
		cfg.APIs.Gemini.Timeout = 60000
	}
	if cfg.APIs.Gemini.MaxRetries == 0 {
		cfg.APIs.Gemini.MaxRetries = 2
	}
	if cfg.APIs.Gemini.Temperature == 0 {
		cfg.APIs.Gemini.Temperature = 0.7
	}
	if cfg.APIs.Gemini.MaxOutputTokens == 0 {
		cfg.APIs.Gemini.MaxOutputTokens = 8192
	}

	if cfg.APIs.Google.BaseURL == "" {
		cfg.APIs.Google.BaseURL = "https://maps.googleapis.com/maps/api"
	}
	if cfg.APIs.Google.RoadsBaseURL == "" {
		cfg.APIs.Google.RoadsBaseURL = "https://roads.googleapis.com/v1"
	}
	if cfg.APIs.Google.StaticMapBaseURL == "" {
		cfg.APIs.Google.StaticMapBaseURL = "https://maps.googleapis.com/maps/api/staticmap"
	}
	if cfg.APIs.Google.Timeout == 0 {
		cfg.APIs.Google.Timeout = 10000
	}

	if cfg.APIs.Weather.BaseURL == "" {
		cfg.APIs.Weather.BaseURL = "https://api.openweathermap.org/data/2.5"
	}
	if cfg.APIs.Weather.Timeout == 0 {
		cfg.APIs.Weather.Timeout = 10000
	}

	if cfg.APIs.Currency.BaseURL == "" {
		cfg.APIs.Currency.BaseURL = "https://api.exchangerate-api.com/v4/latest"
	}
	if cfg.APIs.Currency.Timeout == 0 {
		cfg.APIs.Currency.Timeout = 10000
	}

	if cfg.Email.Region == "" {
		cfg.Email.Region = "us-east-1"
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		if cfg.App.IsProduction() {
			cfg.Logging.Format = "json"
		} else {
			cfg.Logging.Format = "console"
		}
	}
}

// validateConfig validates critical configuration fields. Missing provider
// keys are allowed: the matching endpoints degrade instead of the process
// refusing to start.
func validateConfig(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", cfg.Server.Port)
	}
	if cfg.Email.Enabled && cfg.Email.FromAddress == "" {
		return fmt.Errorf("email.from_address is required when email.enabled is true")
	}
	if cfg.APIs.Gemini.Temperature < 0 || cfg.APIs.Gemini.Temperature > 2 {
		return fmt.Errorf("apis.gemini.temperature must be between 0 and 2")
	}
	return nil
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
