package aspiration

import (
	"github.com/gofiber/fiber/v2"
	"github.com/saikumarp/eapcet-predictor/services/predictor"
	"github.com/saikumarp/eapcet-predictor/utils/response"
	"github.com/saikumarp/eapcet-predictor/utils/validation"
)

// SnapshotSource provides the current cutoff table
type SnapshotSource interface {
	Table() predictor.Table
}

// AspirationHandler answers "can I get into this specific college and branch"
type AspirationHandler struct {
	snapshot  SnapshotSource
	validator *validation.Validator
}

// NewAspirationHandler creates a new aspiration handler
func NewAspirationHandler(snapshot SnapshotSource) *AspirationHandler {
	return &AspirationHandler{
		snapshot:  snapshot,
		validator: validation.NewValidator(),
	}
}

// AspirationRequest represents the request body for an aspiration check
type AspirationRequest struct {
	Rank        int    `json:"rank" validate:"required,gt=0"`
	Institution string `json:"institution" validate:"required,min=2,max=255"`
	BranchCode  string `json:"branch_code" validate:"required,min=2,max=20"`
	Category    string `json:"category" validate:"required,min=1,max=20"`
	Gender      string `json:"gender" validate:"required,min=1,max=10"`
}

// AspirationResponse reports the historical cutoff comparison. Found is false
// when no allotment row exists for the exact combination, which is a normal
// answer rather than an error. RankGap is always serialized: zero (rank equals
// the cutoff exactly) is a valid answer, not a missing value.
type AspirationResponse struct {
	Found   bool `json:"found"`
	Cutoff  int  `json:"cutoff"`
	RankGap int  `json:"rank_gap"`
}

// CheckAspiration handles POST /api/v1/aspiration
func (h *AspirationHandler) CheckAspiration(c *fiber.Ctx) error {
	var req AspirationRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	req.Institution = validation.SanitizeString(req.Institution)
	req.BranchCode = validation.SanitizeString(req.BranchCode)
	req.Category = validation.SanitizeString(req.Category)
	req.Gender = validation.SanitizeString(req.Gender)

	table := h.snapshot.Table()
	if table == nil {
		return response.ServiceUnavailable(c, "Cutoff data is not loaded yet")
	}

	result, found, err := predictor.CheckAspiration(table,
		req.Institution, req.BranchCode, req.Rank, req.Category, req.Gender)
	if err != nil {
		if err == predictor.ErrInvalidRank {
			return response.BadRequest(c, err.Error())
		}
		return response.InternalServerError(c, "Failed to check aspiration")
	}

	if !found {
		return response.Success(c, AspirationResponse{Found: false})
	}

	return response.Success(c, AspirationResponse{
		Found:   true,
		Cutoff:  result.Cutoff,
		RankGap: result.RankGap,
	})
}
