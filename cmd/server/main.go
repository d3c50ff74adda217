package main

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/papayafresh/papaya-backend/internal/config"
	"github.com/papayafresh/papaya-backend/internal/database"
	"github.com/papayafresh/papaya-backend/internal/handlers"
	"github.com/papayafresh/papaya-backend/internal/identity"
	"github.com/papayafresh/papaya-backend/internal/middleware"
	"github.com/papayafresh/papaya-backend/internal/routes"
	"github.com/papayafresh/papaya-backend/internal/services"
	"github.com/papayafresh/papaya-backend/internal/store"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	if cfg.AdminKeyHash == "" {
		log.Println("⚠️  WARNING: ADMIN_KEY_HASH not set. The user-deletion route is unprotected.")
		log.Println("   Generate a key and hash it with utils.HashAPIKey, then set ADMIN_KEY_HASH.")
	}

	// Connect to PostgreSQL (account store)
	log.Printf("Connecting to PostgreSQL...")
	if err := database.ConnectPostgres(cfg.PostgresURI); err != nil {
		log.Fatal("Failed to connect to PostgreSQL:", err)
	}
	defer database.DisconnectPostgres()

	// Connect to Redis (rate limiting + live feed)
	log.Printf("Connecting to Redis...")
	if err := database.ConnectRedis(cfg.RedisURI); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer database.DisconnectRedis()

	// Initialize Cloudinary service
	if cfg.CloudinaryName != "" && cfg.CloudinaryAPIKey != "" && cfg.CloudinaryAPISecret != "" {
		if err := handlers.InitCloudinaryService(cfg); err != nil {
			log.Printf("Warning: Failed to initialize Cloudinary: %v", err)
			log.Println("Photo uploads will not be available")
		} else {
			log.Println("✅ Cloudinary service initialized")
		}
	} else {
		log.Println("Warning: Cloudinary credentials not found. Photo uploads will not be available")
	}

	// Connect to MongoDB (document store), masking the password in logs
	log.Printf("Connecting to MongoDB...")
	if cfg.MongoURI != "" {
		maskedURI := cfg.MongoURI
		if strings.Contains(maskedURI, "@") {
			parts := strings.Split(maskedURI, "@")
			if len(parts) > 0 && strings.Contains(parts[0], ":") {
				userPass := strings.Split(parts[0], ":")
				if len(userPass) >= 3 {
					maskedURI = strings.Replace(maskedURI, userPass[2], "***", 1)
				}
			}
		}
		log.Printf("MongoDB URI: %s", maskedURI)
	}
	if err := database.Connect(cfg.MongoURI); err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer database.Disconnect()

	// Wire services
	docStore := store.NewMongoStore(database.DB)
	accounts := identity.NewPostgresProvider(database.PostgresDB)
	statsService := services.NewStatsService(docStore)
	eraserService := services.NewEraserService(docStore, accounts)
	handlers.Init(cfg, docStore, statsService, eraserService)

	// Start the Redis-backed live scan feed
	services.StartFeedSubscriber(context.Background())

	// Setup router
	r := chi.NewRouter()

	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// Production: security headers + in-process global limiter.
	// Non-production: Redis-based rate limit only.
	if cfg.IsProduction() {
		for _, mw := range middleware.ProductionSecurity() {
			r.Use(mw)
		}
		log.Println("✅ Production security enabled (security headers, per-IP rate limiting)")
	} else {
		r.Use(middleware.RateLimitMiddleware)
	}

	routes.SetupRoutes(r, cfg)

	log.Println("📋 Registered routes:")
	log.Println("  GET    /api/health")
	log.Println("  GET    /api/users/all")
	log.Println("  GET    /api/users/{userId}/shelf")
	log.Println("  GET    /api/users/{userId}/history")
	log.Println("  DELETE /api/users/delete/{userId}")
	log.Println("  GET    /api/dashboard/stats")
	log.Println("  POST   /api/scan")
	log.Println("  POST   /api/upload")
	log.Println("  GET    /ws/activity")

	log.Printf("🚀 Papaya backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
