package app

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/saikumarp/eapcet-predictor/api"
	"github.com/saikumarp/eapcet-predictor/config"
	"github.com/saikumarp/eapcet-predictor/database"
	"github.com/saikumarp/eapcet-predictor/router"
	"github.com/saikumarp/eapcet-predictor/services"
	"github.com/saikumarp/eapcet-predictor/services/cron"
	"github.com/saikumarp/eapcet-predictor/services/objectstore"
	"github.com/saikumarp/eapcet-predictor/utils/cache"
	"gorm.io/gorm"
)

func SetupAndRunServer() error {

	// Load ENV
	if err := config.LoadENV(); err != nil {
		return err
	}

	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	// Initialize GORM database connection
	store, err := database.StartGORM()
	if err != nil {
		print("Check whether the Postgres is running or not\n")
		return err
	}

	if err := store.Init(); err != nil {
		print("Failed to initialize database tables\n")
		return err
	}

	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		return fmt.Errorf("failed to get GORM DB instance")
	}

	// The bulk-insert path uses a raw sql connection alongside GORM
	bulkStore, err := database.Start()
	if err != nil {
		return err
	}

	// Spaces is optional dataset storage; imports from it just fail with a
	// clear error when it is not configured.
	var spaces *objectstore.SpacesClient
	if getEnv.SPACES_ACCESS_KEY != "" {
		spaces, err = objectstore.NewSpacesClient(objectstore.SpacesConfig{
			AccessKey: getEnv.SPACES_ACCESS_KEY,
			SecretKey: getEnv.SPACES_SECRET_KEY,
			Bucket:    getEnv.SPACES_BUCKET,
			Region:    getEnv.SPACES_REGION,
			Endpoint:  getEnv.SPACES_ENDPOINT,
		})
		if err != nil {
			log.Printf("Warning: Failed to initialize Spaces client: %v", err)
		}
	}

	snapshot := services.NewSnapshotService(db)
	importer := services.NewImportService(db, bulkStore, spaces)

	// Seed the database from the configured CSV on first boot
	if getEnv.CUTOFF_CSV_PATH != "" {
		count, err := store.CountAdmissionRecords()
		if err != nil {
			return err
		}
		if count == 0 {
			log.Printf("Importing cutoff dataset from %s", getEnv.CUTOFF_CSV_PATH)
			if _, err := importer.ImportCSVFile(context.Background(), getEnv.CUTOFF_CSV_PATH); err != nil {
				return fmt.Errorf("initial cutoff import failed: %w", err)
			}
		}
	}

	// Warm the in-memory snapshot before accepting traffic
	if _, err := snapshot.Reload(); err != nil {
		return fmt.Errorf("initial snapshot load failed: %w", err)
	}

	// Redis backs the recommendation response cache. The API works without
	// it, every shortlist is just computed fresh.
	redisURL := getEnv.REDIS_URL
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}
	redisCache, err := cache.NewRedisCache(redisURL)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v. Response caching is disabled.", err)
		redisCache = nil
	}

	// Initialize Cron Manager (only if enabled via environment variable)
	var cronManager *cron.CronManager
	if os.Getenv("CRON_ENABLED") != "false" { // Default to enabled
		cronManager = cron.NewCronManager(db, snapshot, importer, redisCache)
		if err := cronManager.Start(); err != nil {
			print("Warning: Failed to start cron jobs\n")
			print("Error: ", err.Error(), "\n")
			// Don't fail the app, just log the warning
		}
	}

	// Defer Closing DB and stopping cron jobs
	defer func() {
		if cronManager != nil {
			cronManager.Stop()
		}
		if redisCache != nil {
			redisCache.Close()
		}
		bulkStore.Close()
		store.Close()
	}()

	// Init API
	var server *api.APIServer = api.NewAPIServer(fmt.Sprintf(":%d", getEnv.PORT))
	app := server.GetEngine()

	// Setup Routes
	router.SetupRoutes(app, store, getEnv, snapshot, importer, redisCache)

	// Get the PORT & Start the Server
	return server.Run()
}
