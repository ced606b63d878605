// internal/server/handlers_locations.go
package server

import (
	"github.com/gin-gonic/gin"

	"gotravel/internal/common/errors"
)

func (s *Server) handleDestinations(c *gin.Context) {
	destinations := s.locations.Destinations(c.Request.Context())
	respondOK(c, gin.H{
		"destinations": destinations,
		"count":        len(destinations),
	})
}

func (s *Server) handleDestinationDetails(c *gin.Context) {
	name := c.Param("name")
	info, attractions, err := s.locations.Details(c.Request.Context(), name)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{
		"destination": name,
		"details":     info,
		"attractions": attractions,
	})
}

type locationInfoRequest struct {
	Location string `json:"location" binding:"required"`
}

func (s *Server) handleLocationInfo(c *gin.Context) {
	var req locationInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err.Error())
		return
	}

	info, err := s.locations.Info(c.Request.Context(), req.Location)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"location_info": info})
}

type forecastRequest struct {
	Location string `json:"location" binding:"required"`
	Days     int    `json:"days"`
}

func (s *Server) handleWeatherForecast(c *gin.Context) {
	var req forecastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err.Error())
		return
	}

	forecast, err := s.locations.Forecast(c.Request.Context(), req.Location, req.Days)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"forecast": forecast})
}

type directionsRequest struct {
	Origin      string   `json:"origin" binding:"required"`
	Destination string   `json:"destination" binding:"required"`
	Mode        string   `json:"mode"`
	Waypoints   []string `json:"waypoints"`
}

func (s *Server) handleDirections(c *gin.Context) {
	var req directionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err.Error())
		return
	}

	route, err := s.locations.Directions(c.Request.Context(), req.Origin, req.Destination, req.Mode, req.Waypoints)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"route": route})
}

type placesSearchRequest struct {
	Query    string `json:"query" binding:"required"`
	Location string `json:"location"`
	Radius   int    `json:"radius"`
}

func (s *Server) handlePlacesSearch(c *gin.Context) {
	var req placesSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err.Error())
		return
	}

	places, err := s.locations.SearchPlaces(c.Request.Context(), req.Query, req.Location, req.Radius)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{
		"places": places,
		"count":  len(places),
	})
}

type snapRequest struct {
	Path        string `json:"path" binding:"required"`
	Interpolate bool   `json:"interpolate"`
}

func (s *Server) handleSnapToRoads(c *gin.Context) {
	var req snapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err.Error())
		return
	}

	points, err := s.locations.SnapToRoads(c.Request.Context(), req.Path, req.Interpolate)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"snapped_points": points})
}

type staticMapRequest struct {
	Center  string   `json:"center" binding:"required"`
	Zoom    int      `json:"zoom"`
	Size    string   `json:"size"`
	Markers []string `json:"markers"`
}

func (s *Server) handleStaticMap(c *gin.Context) {
	var req staticMapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err.Error())
		return
	}

	url := s.locations.StaticMapURL(req.Center, req.Zoom, req.Size, req.Markers)
	if url == "" {
		respondError(c, errors.NewServiceNotConfiguredError("Google Maps"))
		return
	}
	respondOK(c, gin.H{"map_url": url})
}

func (s *Server) handleCurrency(c *gin.Context) {
	destination := c.Param("destination")
	base := c.Param("base")
	if base == "" {
		base = c.Query("base")
	}

	info, err := s.currency.Info(c.Request.Context(), destination, base)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"currency": info})
}
