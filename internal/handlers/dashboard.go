package handlers

import (
	"context"
	"net/http"
	"time"
)

// GetDashboardStats computes the aggregated summary for the admin dashboard.
func GetDashboardStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	summary, err := statsService.DashboardStats(ctx)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"error":   "Failed to compute dashboard stats",
			"message": err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, summary)
}
