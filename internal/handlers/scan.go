package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/papayafresh/papaya-backend/internal/services"
	"github.com/papayafresh/papaya-backend/internal/store"
)

// RecordScanRequest is the POST /api/scan body. Scan is open-ended: whatever
// the mobile client sends is stored as-is.
type RecordScanRequest struct {
	UserID string                 `json:"userId"`
	Scan   map[string]interface{} `json:"scan"`
}

// RecordScan writes a new scan to the user's shelf, the user's history log,
// and the global scan log, then announces it on the live feed.
func RecordScan(w http.ResponseWriter, r *http.Request) {
	var req RecordScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("Invalid request body"))
		return
	}
	if req.UserID == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("userId is required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	user, err := docStore.GetUser(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("User not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorBody("Failed to look up user: "+err.Error()))
		return
	}

	scan := bson.M{}
	for k, v := range req.Scan {
		scan[k] = v
	}
	// Stamp a server-side scan time when the client didn't send a usable one.
	if _, ok := services.RecordScanTime(scan); !ok {
		scan["scannedAt"] = time.Now().UTC()
	}

	shelfID, err := docStore.InsertShelfRecord(ctx, req.UserID, scan)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody("Failed to write shelf record: "+err.Error()))
		return
	}

	historyRec := bson.M{}
	for k, v := range scan {
		historyRec[k] = v
	}
	historyRec["action"] = "scan"
	historyID, err := docStore.InsertHistoryRecord(ctx, req.UserID, historyRec)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody("Failed to write history record: "+err.Error()))
		return
	}

	globalRec := bson.M{}
	for k, v := range scan {
		globalRec[k] = v
	}
	globalRec["userId"] = req.UserID
	globalScanID, err := docStore.InsertGlobalScan(ctx, globalRec)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody("Failed to write global scan log: "+err.Error()))
		return
	}

	// The scan is durable; a feed publish failure is logged, not surfaced.
	event := services.ScanEvent{
		Type:     "scan",
		UserID:   user.ID.Hex(),
		ScanID:   globalScanID,
		Ripeness: services.ScanLabel(scan),
	}
	if err := services.PublishScanEvent(ctx, event); err != nil {
		log.Printf("failed to publish scan event: %v", err)
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success":      true,
		"shelfId":      shelfID,
		"historyId":    historyID,
		"globalScanId": globalScanID,
	})
}
