package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/papayafresh/papaya-backend/internal/config"
	"github.com/papayafresh/papaya-backend/internal/handlers"
	"github.com/papayafresh/papaya-backend/internal/middleware"
)

func SetupRoutes(r *chi.Mux, cfg *config.Config) {
	// Health
	r.Get("/api/health", handlers.Health)

	// Users
	r.Get("/api/users/all", handlers.GetAllUsers)
	r.Get("/api/users/{userId}/shelf", handlers.GetUserShelf)
	r.Get("/api/users/{userId}/history", handlers.GetUserHistory)

	// Destructive route is gated behind the admin key
	r.With(middleware.RequireAdminKey(cfg.AdminKeyHash)).
		Delete("/api/users/delete/{userId}", handlers.DeleteUser)

	// Dashboard
	r.Get("/api/dashboard/stats", handlers.GetDashboardStats)

	// Scans
	r.Post("/api/scan", handlers.RecordScan)
	r.Post("/api/upload", handlers.UploadFile)

	// WebSocket endpoint for the live scan-activity feed
	r.Get("/ws/activity", handlers.ActivityFeed)
}
