package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/papayafresh/papaya-backend/internal/store"
)

// GetAllUsers lists every user with their scan counts.
func GetAllUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	users, err := docStore.ListUsers(ctx)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody("Failed to fetch users: "+err.Error()))
		return
	}

	userList := make([]map[string]interface{}, len(users))
	for i, user := range users {
		shelfCount, err := docStore.CountShelf(ctx, user.ID.Hex())
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, errorBody("Failed to count shelf records: "+err.Error()))
			return
		}
		historyCount, err := docStore.CountHistory(ctx, user.ID.Hex())
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, errorBody("Failed to count history records: "+err.Error()))
			return
		}

		userList[i] = map[string]interface{}{
			"id":           user.ID.Hex(),
			"email":        user.Email,
			"authUid":      user.AuthUID,
			"createdAt":    user.CreatedAt,
			"shelfCount":   shelfCount,
			"historyCount": historyCount,
			"totalScans":   shelfCount + historyCount,
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"totalUsers": len(userList),
		"users":      userList,
	})
}

// GetUserShelf lists one user's shelf records.
func GetUserShelf(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	shelf, err := docStore.ListShelf(ctx, userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody("Failed to fetch shelf records: "+err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"userId":     userID,
		"shelfCount": len(shelf),
		"shelf":      normalizeRecords(shelf),
	})
}

// GetUserHistory lists one user's history records.
func GetUserHistory(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	history, err := docStore.ListHistory(ctx, userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody("Failed to fetch history records: "+err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"userId":       userID,
		"historyCount": len(history),
		"history":      normalizeRecords(history),
	})
}

// DeleteUser erases a user: shelf partition, history partition, root record,
// and the identity account (best-effort).
func DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	result, err := eraserService.Erase(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("User not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorBody("Failed to delete user: "+err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "User and all associated data deleted",
		"deletedUser": map[string]interface{}{
			"id":             result.User.ID.Hex(),
			"email":          result.User.Email,
			"shelfDeleted":   result.ShelfDeleted,
			"historyDeleted": result.HistoryDeleted,
		},
	})
}
