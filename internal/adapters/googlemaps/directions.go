// internal/adapters/googlemaps/directions.go
package googlemaps

import (
	"context"
	"net/url"
	"strings"

	"gotravel/internal/models"
)

type directionsResponse struct {
	Status string `json:"status"`
	Routes []struct {
		Summary string `json:"summary"`
		Legs    []struct {
			StartAddress string `json:"start_address"`
			EndAddress   string `json:"end_address"`
			Distance     struct {
				Value int `json:"value"`
			} `json:"distance"`
			Duration struct {
				Value int `json:"value"`
			} `json:"duration"`
		} `json:"legs"`
		OverviewPolyline struct {
			Points string `json:"points"`
		} `json:"overview_polyline"`
	} `json:"routes"`
}

// Directions returns the best route between origin and destination. Mode
// defaults to driving; waypoints are visited in order.
func (c *Client) Directions(ctx context.Context, origin, destination, mode string, waypoints []string) (*models.Route, error) {
	if mode == "" {
		mode = "driving"
	}
	params := url.Values{}
	params.Set("origin", origin)
	params.Set("destination", destination)
	params.Set("mode", mode)
	if len(waypoints) > 0 {
		params.Set("waypoints", strings.Join(waypoints, "|"))
	}

	var resp directionsResponse
	if err := c.makeRequest(ctx, c.config.BaseURL, "directions/json", "directions", params, &resp); err != nil {
		return nil, err
	}
	if err := checkStatus(resp.Status); err != nil {
		return nil, err
	}
	if len(resp.Routes) == 0 {
		return nil, ErrZeroResults
	}

	r := resp.Routes[0]
	route := &models.Route{
		Summary:  r.Summary,
		Polyline: r.OverviewPolyline.Points,
	}
	for _, leg := range r.Legs {
		route.Legs = append(route.Legs, models.RouteLeg{
			StartAddress:    leg.StartAddress,
			EndAddress:      leg.EndAddress,
			DistanceMeters:  leg.Distance.Value,
			DurationSeconds: leg.Duration.Value,
		})
		route.DistanceMeters += leg.Distance.Value
		route.DurationSeconds += leg.Duration.Value
	}
	return route, nil
}
