package handlers

import (
	"net/http"
	"time"
)

// Health is the liveness endpoint.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"server":    cfg.ServerName,
		"version":   cfg.Version,
	})
}
