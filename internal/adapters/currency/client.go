// internal/adapters/currency/client.go
package currency

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	xcurrency "golang.org/x/text/currency"

	"gotravel/internal/common/httpx"
	"gotravel/internal/common/metrics"
	"gotravel/internal/models"
)

var ErrUpstream = errors.New("CURRENCY_UPSTREAM_FAILED")

// Logger interface definition
type Logger interface {
	Warn(msg string, fields map[string]interface{})
	With(fields map[string]interface{}) Logger
}

type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client resolves destination currencies and exchange rates against the free
// exchangerate-api latest endpoint. No API key is required.
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
			"adapter": "currency",
		}),
	}
}

// countryCurrencies maps common country names to their primary currency.
// Lookups fall back to partial matching and finally USD, so an unknown
// destination still produces usable pricing.
var countryCurrencies = map[string]string{
	"United States": "USD", "USA": "USD", "US": "USD",
	"United Kingdom": "GBP", "UK": "GBP", "England": "GBP", "Britain": "GBP",
	"France": "EUR", "Germany": "EUR", "Italy": "EUR", "Spain": "EUR",
	"Netherlands": "EUR", "Austria": "EUR", "Belgium": "EUR", "Portugal": "EUR",
	"Japan": "JPY", "China": "CNY", "India": "INR", "Canada": "CAD",
	"Australia": "AUD", "Switzerland": "CHF", "Sweden": "SEK",
	"Norway": "NOK", "Denmark": "DKK", "Thailand": "THB",
	"South Korea": "KRW", "Singapore": "SGD", "Hong Kong": "HKD",
	"Mexico": "MXN", "Brazil": "BRL", "Russia": "RUB", "Turkey": "TRY",
}

// symbols covers the currencies whose display symbol differs from what
// x/text/currency renders as the narrow symbol.
var symbols = map[string]string{
	"EUR": "€", "GBP": "£", "JPY": "¥", "CNY": "¥",
	"INR": "₹", "CAD": "C$", "AUD": "A$", "CHF": "CHF",
	"SEK": "kr", "NOK": "kr", "DKK": "kr", "THB": "฿",
}

// CountryCurrency returns the primary currency code for a country name,
// defaulting to USD when unknown.
func CountryCurrency(country string) string {
	if code, ok := countryCurrencies[country]; ok {
		return code
	}
	lower := strings.ToLower(country)
	for name, code := range countryCurrencies {
		nameLower := strings.ToLower(name)
		if strings.Contains(lower, nameLower) || strings.Contains(nameLower, lower) {
			return code
		}
	}
	return "USD"
}

// Symbol returns the display symbol for a currency code.
func Symbol(code string) string {
	if s, ok := symbols[code]; ok {
		return s
	}
	if unit, err := xcurrency.ParseISO(code); err == nil {
		if s := fmt.Sprint(xcurrency.Symbol(unit)); s != "" {
			return s
		}
	}
	return code
}

// CountryCurrency satisfies consumers that take the client by interface.
func (c *Client) CountryCurrency(country string) string {
	return CountryCurrency(country)
}

type ratesResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// Rate fetches the exchange rate from one currency to another. A failed
// lookup returns 1 with the error so callers can degrade to parity.
func (c *Client) Rate(ctx context.Context, from, to string) (float64, error) {
	if from == to {
		return 1, nil
	}

	reqURL := fmt.Sprintf("%s/%s", strings.TrimRight(c.config.BaseURL, "/"), from)
	req, err := http.NewRequest(http.MethodGet, reqURL, nil)
	if err != nil {
		return 1, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	start := time.Now()
	resp, err := c.http.DoWithContext(ctx, req)
	metrics.UpstreamRequestDuration.WithLabelValues("exchangerate", "rate").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("exchangerate", "rate", "error").Inc()
		return 1, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.UpstreamRequestsTotal.WithLabelValues("exchangerate", "rate", "error").Inc()
		return 1, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	var rates ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&rates); err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("exchangerate", "rate", "error").Inc()
		return 1, fmt.Errorf("%w: decode error: %v", ErrUpstream, err)
	}

	rate, ok := rates.Rates[to]
	if !ok || rate == 0 {
		metrics.UpstreamRequestsTotal.WithLabelValues("exchangerate", "rate", "error").Inc()
		return 1, fmt.Errorf("%w: no rate %s->%s", ErrUpstream, from, to)
	}

	metrics.UpstreamRequestsTotal.WithLabelValues("exchangerate", "rate", "success").Inc()
	return rate, nil
}

// Convert converts an amount between currencies, rounded to cents.
func (c *Client) Convert(ctx context.Context, amount float64, from, to string) (float64, error) {
	if from == to {
		return amount, nil
	}
	rate, err := c.Rate(ctx, from, to)
	if err != nil {
		return amount, err
	}
	return math.Round(amount*rate*100) / 100, nil
}

// FormatDual renders a local price with its USD equivalent, e.g.
// "€100.00 (~$108.50 USD)". USD amounts pass through unchanged.
func (c *Client) FormatDual(ctx context.Context, localAmount float64, localCurrency string) string {
	if localCurrency == "USD" {
		return fmt.Sprintf("$%.2f", localAmount)
	}
	usd, err := c.Convert(ctx, localAmount, localCurrency, "USD")
	if err != nil {
		c.logger.Warn("price conversion failed", map[string]interface{}{
			"currency": localCurrency,
			"error":    err.Error(),
		})
		return fmt.Sprintf("%s%.2f", Symbol(localCurrency), localAmount)
	}
	return fmt.Sprintf("%s%.2f (~$%.2f USD)", Symbol(localCurrency), localAmount, usd)
}

// Info builds the currency summary panel for a destination.
func (c *Client) Info(ctx context.Context, destination, base string) (*models.CurrencyInfo, error) {
	if base == "" {
		base = "USD"
	}
	country := models.CountryOf(destination)
	local := CountryCurrency(country)

	rate, err := c.Rate(ctx, base, local)
	if err != nil {
		return nil, err
	}
	return &models.CurrencyInfo{
		Country:       country,
		LocalCurrency: local,
		BaseCurrency:  base,
		ExchangeRate:  rate,
		FormattedRate: fmt.Sprintf("1 %s = %.2f %s", base, rate, local),
	}, nil
}
