// internal/server/handlers_itinerary.go
package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"gotravel/internal/common/errors"
	"gotravel/internal/export"
	"gotravel/internal/models"
)

func (s *Server) handleGenerate(c *gin.Context) {
	var req models.TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err.Error())
		return
	}
	if req.Adults == 0 {
		req.Adults = 1
	}

	start := time.Now()
	result, err := s.planner.Generate(c.Request.Context(), &req)
	s.recordOperation(c, "generate", start, err)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{
		"itinerary": result.Itinerary,
		"weather":   result.Weather,
		"map_url":   result.MapURL,
		"timezone":  result.Timezone,
		"currency":  result.Currency,
		"warnings":  result.Warnings,
	})
}

type refineRequest struct {
	Itinerary *models.Itinerary `json:"itinerary" binding:"required"`
	Feedback  string            `json:"feedback" binding:"required"`
}

func (s *Server) handleRefine(c *gin.Context) {
	var req refineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err.Error())
		return
	}

	start := time.Now()
	refined, err := s.planner.Refine(c.Request.Context(), req.Itinerary, req.Feedback)
	s.recordOperation(c, "refine", start, err)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{
		"itinerary":  refined,
		"refined_at": refined.GeneratedAt,
	})
}

type exportRequest struct {
	Itinerary *models.Itinerary `json:"itinerary" binding:"required"`
	Format    string            `json:"format" binding:"required"`
	MapURL    string            `json:"map_url,omitempty"`
}

func (s *Server) handleExport(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err.Error())
		return
	}

	base := fmt.Sprintf("itinerary-%s", slug(req.Itinerary.Destination))
	switch strings.ToLower(req.Format) {
	case "ics", "ical":
		body, err := export.ICal(req.Itinerary)
		if err != nil {
			respondError(c, errors.NewValidationError(err.Error()))
			return
		}
		serveDownload(c, base+".ics", "text/calendar; charset=utf-8", []byte(body))
	case "pdf":
		body, err := export.PDF(req.Itinerary, req.MapURL)
		if err != nil {
			respondError(c, errors.NewValidationError(err.Error()))
			return
		}
		serveDownload(c, base+".pdf", "application/pdf", body)
	case "csv":
		body, err := export.CSV(req.Itinerary)
		if err != nil {
			respondError(c, errors.NewValidationError(err.Error()))
			return
		}
		serveDownload(c, base+".csv", "text/csv; charset=utf-8", body)
	default:
		respondValidation(c, fmt.Sprintf("unknown export format %q, want ics, pdf or csv", req.Format))
	}
}

type emailRequest struct {
	Itinerary *models.Itinerary `json:"itinerary" binding:"required"`
	To        string            `json:"to" binding:"required,email"`
}

func (s *Server) handleEmail(c *gin.Context) {
	if s.mailer == nil {
		respondError(c, errors.NewServiceNotConfiguredError("Email delivery"))
		return
	}

	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err.Error())
		return
	}

	start := time.Now()
	err := s.mailer.SendItinerary(c.Request.Context(), req.To, req.Itinerary)
	s.recordOperation(c, "email", start, err)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{"sent_to": req.To})
}

func (s *Server) recordOperation(c *gin.Context, operation string, start time.Time, err error) {
	if s.obs == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	s.obs.RecordRequestProcessed(c.Request.Context(), operation, status)
	s.obs.RecordRequestDuration(c.Request.Context(), time.Since(start), operation)
}

func serveDownload(c *gin.Context, filename, contentType string, body []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, contentType, body)
}

func slug(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			out = append(out, r)
		case r == ' ' || r == ',' || r == '-':
			if len(out) > 0 && out[len(out)-1] != '-' {
				out = append(out, '-')
			}
		}
	}
	return strings.Trim(string(out), "-")
}
