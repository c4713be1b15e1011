package router

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/saikumarp/eapcet-predictor/config"
	"github.com/saikumarp/eapcet-predictor/database"
	"github.com/saikumarp/eapcet-predictor/handlers"
	aspiration_handlers "github.com/saikumarp/eapcet-predictor/handlers/aspiration"
	auth_handlers "github.com/saikumarp/eapcet-predictor/handlers/auth"
	cutoff_handlers "github.com/saikumarp/eapcet-predictor/handlers/cutoff"
	meta_handlers "github.com/saikumarp/eapcet-predictor/handlers/meta"
	recommend_handlers "github.com/saikumarp/eapcet-predictor/handlers/recommend"
	"github.com/saikumarp/eapcet-predictor/services"
	"github.com/saikumarp/eapcet-predictor/services/modelservice"
	"github.com/saikumarp/eapcet-predictor/services/predictor"
	"github.com/saikumarp/eapcet-predictor/utils/auth"
	"github.com/saikumarp/eapcet-predictor/utils/cache"
	"github.com/saikumarp/eapcet-predictor/utils/middleware"
	"gorm.io/gorm"
)

const tokenExpiry = 24 * time.Hour

func SetupRoutes(app *fiber.App, store database.Storage, env *config.EnviornmentVariable, snapshot *services.SnapshotService, importer *services.ImportService, redisCache *cache.RedisCache) {
	if env.JWT_SECRET == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	jwtIssuer := env.JWT_ISSUER
	if jwtIssuer == "" {
		jwtIssuer = "eapcet-predictor-api"
	}

	jwtManager := auth.NewJWTManager(auth.JWTConfig{
		Secret: env.JWT_SECRET,
		Expiry: tokenExpiry,
		Issuer: jwtIssuer,
	})

	// Get DB instance (type assert from interface)
	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		log.Fatal("Failed to get GORM DB instance")
	}

	strategy := pickScoreStrategy(env)

	authMiddleware := middleware.NewAuthMiddleware(jwtManager)

	authHandler := auth_handlers.NewAuthHandler(env, jwtManager, tokenExpiry)
	recommendHandler := recommend_handlers.NewRecommendationHandler(snapshot, redisCache, strategy)
	aspirationHandler := aspiration_handlers.NewAspirationHandler(snapshot)
	metaHandler := meta_handlers.NewMetaHandler(snapshot)
	cutoffHandler := cutoff_handlers.NewCutoffHandler(db, snapshot, importer, redisCache)

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000,http://localhost:3001"
	}

	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    allowedOrigins,
		RateLimitRequests: 100,             // 100 requests
		RateLimitWindow:   1 * time.Minute, // per minute
	})

	// Health check endpoint (public)
	app.Get("/ping", handlers.NewHealthHandler(store, snapshot))

	// API v1 group
	api := app.Group("/api/v1")

	// Auth routes (public)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)

	// Prediction routes (public)
	api.Post("/recommendations", recommendHandler.GetRecommendations)
	api.Post("/aspiration", aspirationHandler.CheckAspiration)

	// Dataset metadata routes (public)
	api.Get("/meta/options", metaHandler.GetOptions)
	api.Get("/colleges", metaHandler.ListColleges)
	api.Get("/colleges/branches", metaHandler.ListBranches)

	// Cutoff dataset management (admin only)
	cutoffs := api.Group("/cutoffs", authMiddleware.RequireAdmin())
	cutoffs.Get("/", cutoffHandler.ListCutoffs)
	cutoffs.Post("/", cutoffHandler.CreateCutoff)
	cutoffs.Delete("/:id", cutoffHandler.DeleteCutoff)
	cutoffs.Post("/import", cutoffHandler.ImportCutoffs)
	cutoffs.Post("/reload", cutoffHandler.ReloadSnapshot)
	cutoffs.Get("/imports", cutoffHandler.ListImportJobs)
	cutoffs.Get("/imports/:batch_id", cutoffHandler.GetImportJob)
}

// pickScoreStrategy selects the scoring strategy from configuration. The
// deterministic gap formula is the default; "model" routes scoring through
// the external probability service.
func pickScoreStrategy(env *config.EnviornmentVariable) predictor.ScoreStrategy {
	if env.SCORE_STRATEGY == "model" {
		if env.MODEL_SERVICE_URL == "" {
			log.Fatal("SCORE_STRATEGY=model requires MODEL_SERVICE_URL")
		}
		client := modelservice.NewClient(modelservice.Config{
			BaseURL: env.MODEL_SERVICE_URL,
		})
		return predictor.ModelProbabilityScore{Model: client}
	}
	return predictor.DeterministicGapScore{}
}
