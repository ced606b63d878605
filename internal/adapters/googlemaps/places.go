// internal/adapters/googlemaps/places.go
package googlemaps

import (
	"context"
	"errors"
	"net/url"
	"strconv"

	"gotravel/internal/models"
)

const defaultNearbyRadius = 5000 // meters

type placesResponse struct {
	Status  string        `json:"status"`
	Results []placeRecord `json:"results"`
}

type placeRecord struct {
	PlaceID          string   `json:"place_id"`
	Name             string   `json:"name"`
	Vicinity         string   `json:"vicinity"`
	FormattedAddress string   `json:"formatted_address"`
	Rating           float64  `json:"rating"`
	UserRatingsTotal int      `json:"user_ratings_total"`
	Types            []string `json:"types"`
	Geometry         struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
}

func (p placeRecord) toModel() models.Place {
	addr := p.FormattedAddress
	if addr == "" {
		addr = p.Vicinity
	}
	return models.Place{
		PlaceID:     p.PlaceID,
		Name:        p.Name,
		Address:     addr,
		Rating:      p.Rating,
		UserRatings: p.UserRatingsTotal,
		Types:       p.Types,
		Location: models.Coordinates{
			Lat: p.Geometry.Location.Lat,
			Lng: p.Geometry.Location.Lng,
		},
	}
}

// NearbySearch finds places of the given type around a point. A zero radius
// uses the default.
func (c *Client) NearbySearch(ctx context.Context, lat, lng float64, placeType string, radius int) ([]models.Place, error) {
	if radius <= 0 {
		radius = defaultNearbyRadius
	}
	params := url.Values{}
	params.Set("location", latLng(lat, lng))
	params.Set("radius", strconv.Itoa(radius))
	params.Set("type", placeType)

	var resp placesResponse
	if err := c.makeRequest(ctx, c.config.BaseURL, "place/nearbysearch/json", "places_nearby", params, &resp); err != nil {
		return nil, err
	}
	return placeList(&resp)
}

// TextSearch finds places by free-text query, optionally biased to a location.
func (c *Client) TextSearch(ctx context.Context, query, location string, radius int) ([]models.Place, error) {
	params := url.Values{}
	params.Set("query", query)
	if location != "" {
		if radius <= 0 {
			radius = 50000
		}
		params.Set("location", location)
		params.Set("radius", strconv.Itoa(radius))
	}

	var resp placesResponse
	if err := c.makeRequest(ctx, c.config.BaseURL, "place/textsearch/json", "places_text", params, &resp); err != nil {
		return nil, err
	}
	return placeList(&resp)
}

// PlaceDetails fetches details for one place.
func (c *Client) PlaceDetails(ctx context.Context, placeID string) (*models.Place, error) {
	params := url.Values{}
	params.Set("place_id", placeID)

	var resp struct {
		Status string      `json:"status"`
		Result placeRecord `json:"result"`
	}
	if err := c.makeRequest(ctx, c.config.BaseURL, "place/details/json", "place_details", params, &resp); err != nil {
		return nil, err
	}
	if err := checkStatus(resp.Status); err != nil {
		return nil, err
	}
	place := resp.Result.toModel()
	return &place, nil
}

func placeList(resp *placesResponse) ([]models.Place, error) {
	if err := checkStatus(resp.Status); err != nil {
		// An empty result set is not a failure for searches.
		if errors.Is(err, ErrZeroResults) {
			return []models.Place{}, nil
		}
		return nil, err
	}
	out := make([]models.Place, 0, len(resp.Results))
	for _, r := range resp.Results {
		out = append(out, r.toModel())
	}
	return out, nil
}
