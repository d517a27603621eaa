package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/skatejack/Journaling-Companion/internal/config"
	"github.com/skatejack/Journaling-Companion/internal/database"
	"github.com/skatejack/Journaling-Companion/internal/handlers"
	"github.com/skatejack/Journaling-Companion/internal/llm"
	"github.com/skatejack/Journaling-Companion/internal/middleware"
	"github.com/skatejack/Journaling-Companion/internal/routes"
	"github.com/skatejack/Journaling-Companion/internal/services"
	"github.com/skatejack/Journaling-Companion/internal/store"
	"github.com/skatejack/Journaling-Companion/pkg/crypto"
)

func main() {
	// Load env
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found")
	}
	// Load configuration
	cfg := config.Load()

	// Resolve the timezone used for streaks and daily word counts. Unset
	// means UTC; an invalid name falls back to UTC with a warning.
	loc := time.UTC
	if cfg.Timezone != "" {
		l, err := time.LoadLocation(cfg.Timezone)
		if err != nil {
			log.Printf("⚠️  WARNING: TIMEZONE %q is invalid: %v. Falling back to UTC.", cfg.Timezone, err)
		} else {
			loc = l
		}
	}
	log.Printf("✅ Calendar days computed in %s", loc)

	// Check encryption key (warn if not set, but don't fail)
	var cipher *crypto.ContentCipher
	if cfg.EncryptionKey == "" {
		log.Println("⚠️  WARNING: ENCRYPTION_KEY not set. Entry content will be stored unencrypted.")
		log.Println("   To generate a key, run: openssl rand -base64 32")
		log.Println("   Set it in your environment: ENCRYPTION_KEY=<generated-key>")
	} else {
		c, err := crypto.NewContentCipher(cfg.EncryptionKey)
		if err != nil {
			log.Printf("⚠️  WARNING: ENCRYPTION_KEY is invalid: %v", err)
			log.Println("   Entry content will be stored unencrypted.")
			log.Println("   Key must be base64-encoded 32 bytes. Generate with: openssl rand -base64 32")
		} else {
			cipher = c
			log.Println("✅ Entry encryption enabled")
		}
	}

	// Connect to Redis
	log.Printf("Connecting to Redis...")
	rdb, err := database.ConnectRedis(cfg.RedisURI)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer rdb.Close()

	// Initialize the Gemini client (warn if not configured, but don't fail)
	var generator llm.Generator = llm.Disabled{}
	if cfg.GeminiAPIKey == "" {
		log.Println("⚠️  WARNING: GEMINI_API_KEY not set. Prompts and insights will use canned fallbacks.")
	} else {
		gem, err := llm.NewGemini(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Printf("⚠️  WARNING: failed to initialize Gemini client: %v", err)
			log.Println("   Prompts and insights will use canned fallbacks.")
		} else {
			defer gem.Close()
			generator = gem
			log.Printf("✅ Gemini client initialized (model %s)", gem.Model())
		}
	}

	// Wire services
	kv := store.NewRedisKV(rdb)
	sessions := services.NewSessionService(rdb)
	cache := services.NewCacheService(rdb)
	enricher := services.NewEnrichmentService(generator)
	journalSvc := services.NewJournalService(kv, enricher, cipher, loc)
	insightsSvc := services.NewInsightsService(kv, generator, cache, cipher, loc, cfg.DefaultWindowDays)
	promptSvc := services.NewPromptService(kv, generator, cipher, loc)

	// Setup router
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Production: SecurityHeaders → GlobalRateLimit → ModelRateLimit
	// Non-production: Redis-based rate limit only
	if cfg.IsProduction() {
		for _, mw := range middleware.ProductionSecurity() {
			r.Use(mw)
		}
		log.Println("✅ Production security enabled (security headers, per-IP + model rate limiting)")
	} else {
		r.Use(middleware.RateLimit(rdb))
	}

	// Health check (no auth)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Setup routes
	auth := middleware.NewAuth(sessions)
	routes.SetupRoutes(r, auth,
		handlers.NewJournalHandler(journalSvc),
		handlers.NewPromptHandler(promptSvc),
		handlers.NewInsightsHandler(insightsSvc),
	)

	// Log registered routes for debugging
	log.Println("📋 Registered routes:")
	log.Println("  GET  /health")
	log.Println("  POST /api/entries")
	log.Println("  GET  /api/entries")
	log.Println("  POST /api/prompts")
	log.Println("  GET  /api/insights")

	log.Printf("🚀 Journaling Companion backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
