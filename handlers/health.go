package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/saikumarp/eapcet-predictor/database"
	"github.com/saikumarp/eapcet-predictor/services"
)

// NewHealthHandler reports database reachability and snapshot freshness
func NewHealthHandler(store database.Storage, snapshot *services.SnapshotService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status := "ok"
		dbStatus := "ok"
		if err := store.HealthCheck(); err != nil {
			status = "degraded"
			dbStatus = err.Error()
		}

		table := snapshot.Table()
		return c.JSON(fiber.Map{
			"status":           status,
			"database":         dbStatus,
			"snapshot_records": len(table),
			"snapshot_loaded":  snapshot.LoadedAt(),
		})
	}
}
