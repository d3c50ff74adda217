package handlers

import (
	"encoding/json"
	"net/http"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/papayafresh/papaya-backend/internal/config"
	"github.com/papayafresh/papaya-backend/internal/services"
	"github.com/papayafresh/papaya-backend/internal/store"
)

// Package-level dependencies, wired once from main.
var (
	cfg           *config.Config
	docStore      store.Store
	statsService  *services.StatsService
	eraserService *services.EraserService
)

// Init wires the handler package's dependencies.
func Init(c *config.Config, s store.Store, stats *services.StatsService, eraser *services.EraserService) {
	cfg = c
	docStore = s
	statsService = stats
	eraserService = eraser
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// errorBody is the {success:false, error} failure shape shared by most routes.
func errorBody(message string) map[string]interface{} {
	return map[string]interface{}{"success": false, "error": message}
}

// normalizeRecord converts a raw document into its response form: _id and
// user_id become hex "id"/"userId" strings, every other field passes through
// untouched.
func normalizeRecord(rec bson.M) map[string]interface{} {
	out := make(map[string]interface{}, len(rec))
	for k, v := range rec {
		switch k {
		case "_id":
			if oid, ok := v.(primitive.ObjectID); ok {
				out["id"] = oid.Hex()
			} else {
				out["id"] = v
			}
		case "user_id":
			if oid, ok := v.(primitive.ObjectID); ok {
				out["userId"] = oid.Hex()
			} else {
				out["userId"] = v
			}
		default:
			out[k] = v
		}
	}
	return out
}

func normalizeRecords(recs []bson.M) []map[string]interface{} {
	out := make([]map[string]interface{}, len(recs))
	for i, rec := range recs {
		out[i] = normalizeRecord(rec)
	}
	return out
}
