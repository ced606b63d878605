// internal/adapters/googlemaps/roads.go
package googlemaps

import (
	"context"
	"net/url"
	"strconv"

	"gotravel/internal/models"
)

type snapResponse struct {
	SnappedPoints []struct {
		Location struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"location"`
		OriginalIndex *int   `json:"originalIndex"`
		PlaceID       string `json:"placeId"`
	} `json:"snappedPoints"`
}

// SnapToRoads snaps a GPS path ("lat,lng|lat,lng|...") to the road network.
func (c *Client) SnapToRoads(ctx context.Context, path string, interpolate bool) ([]models.SnappedPoint, error) {
	params := url.Values{}
	params.Set("path", path)
	params.Set("interpolate", strconv.FormatBool(interpolate))

	var resp snapResponse
	if err := c.makeRequest(ctx, c.config.RoadsBaseURL, "snapToRoads", "snap_to_roads", params, &resp); err != nil {
		return nil, err
	}

	out := make([]models.SnappedPoint, 0, len(resp.SnappedPoints))
	for _, p := range resp.SnappedPoints {
		out = append(out, models.SnappedPoint{
			Location: models.Coordinates{
				Lat: p.Location.Latitude,
				Lng: p.Location.Longitude,
			},
			OriginalIndex: p.OriginalIndex,
			PlaceID:       p.PlaceID,
		})
	}
	return out, nil
}
