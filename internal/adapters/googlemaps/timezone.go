// internal/adapters/googlemaps/timezone.go
package googlemaps

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/ringsaturn/tzf"

	"gotravel/internal/models"
)

var (
	tzFinderOnce sync.Once
	tzFinder     tzf.F
	tzFinderErr  error
)

type timezoneResponse struct {
	Status       string `json:"status"`
	TimeZoneID   string `json:"timeZoneId"`
	TimeZoneName string `json:"timeZoneName"`
	RawOffset    int    `json:"rawOffset"`
	DSTOffset    int    `json:"dstOffset"`
}

// Timezone looks up the time zone for coordinates via the Time Zone API.
// When the API call fails, the embedded offline boundary data answers
// instead so the panel can still render.
func (c *Client) Timezone(ctx context.Context, lat, lng float64, at time.Time) (*models.TimezoneInfo, error) {
	if at.IsZero() {
		at = time.Now()
	}
	params := url.Values{}
	params.Set("location", latLng(lat, lng))
	params.Set("timestamp", strconv.FormatInt(at.Unix(), 10))

	var resp timezoneResponse
	err := c.makeRequest(ctx, c.config.BaseURL, "timezone/json", "timezone", params, &resp)
	if err == nil {
		err = checkStatus(resp.Status)
	}
	if err != nil {
		if info, offlineErr := offlineTimezone(lat, lng); offlineErr == nil {
			c.logger.Warn("timezone API failed, using offline lookup", map[string]interface{}{
				"error":    err.Error(),
				"timezone": info.TimeZoneID,
			})
			return info, nil
		}
		return nil, err
	}

	return &models.TimezoneInfo{
		TimeZoneID:   resp.TimeZoneID,
		TimeZoneName: resp.TimeZoneName,
		RawOffset:    resp.RawOffset,
		DSTOffset:    resp.DSTOffset,
		Source:       "google",
	}, nil
}

// offlineTimezone resolves a zone name from the embedded tz boundary data.
func offlineTimezone(lat, lng float64) (*models.TimezoneInfo, error) {
	tzFinderOnce.Do(func() {
		tzFinder, tzFinderErr = tzf.NewDefaultFinder()
	})
	if tzFinderErr != nil {
		return nil, tzFinderErr
	}

	// tzf takes lng first.
	name := tzFinder.GetTimezoneName(lng, lat)
	if name == "" {
		return nil, fmt.Errorf("no timezone for %f,%f", lat, lng)
	}
	return &models.TimezoneInfo{
		TimeZoneID: name,
		Source:     "offline",
	}, nil
}
