// internal/server/handlers_status.go
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": s.cfg.App.Name,
		"version": s.cfg.App.Version,
	})
}

// handleReady reports whether the service can produce itineraries at all.
func (s *Server) handleReady(c *gin.Context) {
	if !s.availability.GenAI {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not_ready",
			"reason": "generative AI not configured",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// handleStatus reports per-provider configuration so the frontend can hide
// panels whose provider is absent.
func (s *Server) handleStatus(c *gin.Context) {
	overall := "healthy"
	if !s.availability.GenAI {
		overall = "degraded"
	}

	respondOK(c, gin.H{
		"timestamp": time.Now().UTC(),
		"apis": gin.H{
			"gemini": gin.H{
				"configured": s.availability.GenAI,
			},
			"google": gin.H{
				"configured": s.availability.Maps,
				"services": []string{
					"Places API",
					"Geocoding API",
					"Directions API",
					"Time Zone API",
					"Roads API",
					"Maps Static API",
				},
			},
			"openweather": gin.H{
				"configured": s.availability.Weather,
			},
			"email": gin.H{
				"configured": s.availability.Email,
			},
		},
		"overall_status": overall,
	})
}
