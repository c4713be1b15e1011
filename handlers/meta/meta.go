package meta

import (
	"github.com/gofiber/fiber/v2"
	"github.com/saikumarp/eapcet-predictor/services"
	"github.com/saikumarp/eapcet-predictor/utils/response"
	"github.com/saikumarp/eapcet-predictor/utils/validation"
)

// MetaHandler serves the distinct filter values present in the loaded dataset
type MetaHandler struct {
	snapshot *services.SnapshotService
}

// NewMetaHandler creates a new meta handler
func NewMetaHandler(snapshot *services.SnapshotService) *MetaHandler {
	return &MetaHandler{snapshot: snapshot}
}

// GetOptions handles GET /api/v1/meta/options
func (h *MetaHandler) GetOptions(c *fiber.Ctx) error {
	if h.snapshot.Table() == nil {
		return response.ServiceUnavailable(c, "Cutoff data is not loaded yet")
	}
	return response.Success(c, h.snapshot.FilterOptions())
}

// ListColleges handles GET /api/v1/colleges
func (h *MetaHandler) ListColleges(c *fiber.Ctx) error {
	if h.snapshot.Table() == nil {
		return response.ServiceUnavailable(c, "Cutoff data is not loaded yet")
	}

	institutions := h.snapshot.Institutions()
	return response.Success(c, fiber.Map{
		"count":        len(institutions),
		"institutions": institutions,
	})
}

// ListBranches handles GET /api/v1/colleges/branches?institution=...
func (h *MetaHandler) ListBranches(c *fiber.Ctx) error {
	institution := validation.SanitizeString(c.Query("institution"))
	if institution == "" {
		return response.BadRequest(c, "institution query parameter is required")
	}

	if h.snapshot.Table() == nil {
		return response.ServiceUnavailable(c, "Cutoff data is not loaded yet")
	}

	branches := h.snapshot.Branches(institution)
	if len(branches) == 0 {
		return response.NotFound(c, "No branches found for this institution")
	}

	return response.Success(c, fiber.Map{
		"institution": institution,
		"branches":    branches,
	})
}
