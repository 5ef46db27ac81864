package handlers

import (
	"net/http"
	"time"
)

// LowStockSummaryHandler godoc
// @Summary Natural-language low-stock summary
// @Tags insights
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SummaryResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/summary/low-stock [get]
func (s *Server) LowStockSummaryHandler(w http.ResponseWriter, r *http.Request) {
	summary, err := s.items.LowStockSummary(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.respond(w, http.StatusOK, SummaryResponse{Summary: summary})
}

// StatsHandler godoc
// @Summary Dashboard counters
// @Tags insights
// @Produce json
// @Security BearerAuth
// @Success 200 {object} StatsResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/stats [get]
func (s *Server) StatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := s.items.Stats(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.respond(w, http.StatusOK, stats)
}

// CategoriesHandler godoc
// @Summary Distinct item categories
// @Tags insights
// @Produce json
// @Security BearerAuth
// @Success 200 {array} string
// @Failure 500 {object} ErrorResponse
// @Router /api/categories [get]
func (s *Server) CategoriesHandler(w http.ResponseWriter, r *http.Request) {
	categories, err := s.items.Categories(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.respond(w, http.StatusOK, categories)
}

// HealthHandler godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /api/health [get]
func (s *Server) HealthHandler(w http.ResponseWriter, _ *http.Request) {
	s.respond(w, http.StatusOK, HealthResponse{
		Status:    "OK",
		Timestamp: s.now().UTC().Format(time.RFC3339),
	})
}
