package handlers

import (
	"net/http"
	"strconv"

	"github.com/skatejack/Journaling-Companion/internal/middleware"
	"github.com/skatejack/Journaling-Companion/internal/models"
	"github.com/skatejack/Journaling-Companion/internal/services"
)

type InsightsResponse struct {
	Success  bool                   `json:"success"`
	Message  string                 `json:"message,omitempty"`
	Insights *models.InsightsReport `json:"insights,omitempty"`
}

// InsightsHandler serves the aggregated journaling dashboard.
type InsightsHandler struct {
	insights *services.InsightsService
}

func NewInsightsHandler(insights *services.InsightsService) *InsightsHandler {
	return &InsightsHandler{insights: insights}
}

// GetInsights builds the windowed report for the authenticated user. The
// optional days parameter must be a positive integer; when absent the
// configured default window applies.
func (h *InsightsHandler) GetInsights(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Success: false, Message: "Authentication required"})
		return
	}

	windowDays := h.insights.DefaultWindowDays()
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Success: false, Message: "days must be a positive number"})
			return
		}
		windowDays = n
	}

	report, err := h.insights.BuildReport(r.Context(), userID, windowDays)
	if err != nil {
		writeError(w, err, "build insights")
		return
	}

	writeJSON(w, http.StatusOK, InsightsResponse{Success: true, Insights: report})
}
