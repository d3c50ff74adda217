package middleware

import (
	"log"
	"net/http"

	"github.com/papayafresh/papaya-backend/pkg/utils"
)

// RequireAdminKey gates destructive routes behind the X-Admin-Key header,
// verified against the argon2id hash from ADMIN_KEY_HASH. An empty hash
// disables the gate (local development).
func RequireAdminKey(keyHash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if keyHash == "" {
				next.ServeHTTP(w, r)
				return
			}

			key := r.Header.Get("X-Admin-Key")
			ok, err := utils.VerifyAPIKey(key, keyHash)
			if err != nil {
				log.Printf("admin key verification error: %v", err)
			}
			if err != nil || !ok {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"success":false,"error":"Invalid or missing admin key"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
