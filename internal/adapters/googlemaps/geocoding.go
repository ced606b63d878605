// internal/adapters/googlemaps/geocoding.go
package googlemaps

import (
	"context"
	"net/url"

	"gotravel/internal/models"
)

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		FormattedAddress string `json:"formatted_address"`
		PlaceID          string `json:"place_id"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
		AddressComponents []struct {
			LongName string   `json:"long_name"`
			Types    []string `json:"types"`
		} `json:"address_components"`
	} `json:"results"`
}

// Geocode resolves a free-text address to coordinates.
func (c *Client) Geocode(ctx context.Context, address string) (*models.GeocodeResult, error) {
	params := url.Values{}
	params.Set("address", address)

	var resp geocodeResponse
	if err := c.makeRequest(ctx, c.config.BaseURL, "geocode/json", "geocode", params, &resp); err != nil {
		return nil, err
	}
	return firstGeocodeResult(&resp)
}

// ReverseGeocode resolves coordinates to an address.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lng float64) (*models.GeocodeResult, error) {
	params := url.Values{}
	params.Set("latlng", latLng(lat, lng))

	var resp geocodeResponse
	if err := c.makeRequest(ctx, c.config.BaseURL, "geocode/json", "reverse_geocode", params, &resp); err != nil {
		return nil, err
	}
	return firstGeocodeResult(&resp)
}

func firstGeocodeResult(resp *geocodeResponse) (*models.GeocodeResult, error) {
	if err := checkStatus(resp.Status); err != nil {
		return nil, err
	}
	if len(resp.Results) == 0 {
		return nil, ErrZeroResults
	}

	r := resp.Results[0]
	out := &models.GeocodeResult{
		FormattedAddress: r.FormattedAddress,
		PlaceID:          r.PlaceID,
		Location: models.Coordinates{
			Lat: r.Geometry.Location.Lat,
			Lng: r.Geometry.Location.Lng,
		},
	}
	for _, comp := range r.AddressComponents {
		for _, t := range comp.Types {
			if t == "country" {
				out.Country = comp.LongName
			}
		}
	}
	return out, nil
}
