package recommend

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/saikumarp/eapcet-predictor/services"
	"github.com/saikumarp/eapcet-predictor/services/predictor"
	"github.com/saikumarp/eapcet-predictor/utils/cache"
	"github.com/saikumarp/eapcet-predictor/utils/response"
	"github.com/saikumarp/eapcet-predictor/utils/validation"
)

// cacheTTL bounds how long a computed shortlist is served before it is
// recomputed. Reloading the snapshot also flushes these keys.
const cacheTTL = 15 * time.Minute

// RecommendationHandler handles shortlist requests
type RecommendationHandler struct {
	snapshot  *services.SnapshotService
	cache     *cache.RedisCache
	strategy  predictor.ScoreStrategy
	validator *validation.Validator
}

// NewRecommendationHandler creates a new recommendation handler. The cache
// may be nil when Redis is not configured.
func NewRecommendationHandler(snapshot *services.SnapshotService, redisCache *cache.RedisCache, strategy predictor.ScoreStrategy) *RecommendationHandler {
	return &RecommendationHandler{
		snapshot:  snapshot,
		cache:     redisCache,
		strategy:  strategy,
		validator: validation.NewValidator(),
	}
}

// RecommendationRequest represents the request body for a shortlist
type RecommendationRequest struct {
	Rank     int    `json:"rank" validate:"required,gt=0"`
	Category string `json:"category" validate:"required,min=1,max=20"`
	Gender   string `json:"gender" validate:"required,min=1,max=10"`
	Region   string `json:"region" validate:"required,min=1,max=20"`
	District string `json:"district" validate:"omitempty,max=50"`
	Limit    int    `json:"limit" validate:"omitempty,gte=1,lte=50"`
}

// RecommendationResponse wraps the scored shortlist
type RecommendationResponse struct {
	Count           int                        `json:"count"`
	Recommendations []predictor.Recommendation `json:"recommendations"`
}

// GetRecommendations handles POST /api/v1/recommendations
func (h *RecommendationHandler) GetRecommendations(c *fiber.Ctx) error {
	var req RecommendationRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	req.Category = validation.SanitizeString(req.Category)
	req.Gender = validation.SanitizeString(req.Gender)
	req.Region = validation.SanitizeString(req.Region)
	req.District = validation.SanitizeString(req.District)

	key := cacheKey(req)

	if h.cache != nil {
		var cached RecommendationResponse
		if err := h.cache.GetJSON(c.Context(), key, &cached); err == nil {
			return response.Success(c, cached)
		}
	}

	table := h.snapshot.Table()
	if table == nil {
		return response.ServiceUnavailable(c, "Cutoff data is not loaded yet")
	}

	recs, err := predictor.RecommendWithStrategy(c.Context(), table, predictor.Query{
		Rank:     req.Rank,
		Category: req.Category,
		Gender:   req.Gender,
		Region:   req.Region,
		District: req.District,
		Limit:    req.Limit,
	}, h.strategy)
	if err != nil {
		if err == predictor.ErrInvalidRank {
			return response.BadRequest(c, err.Error())
		}
		return response.InternalServerError(c, "Failed to compute recommendations")
	}

	result := RecommendationResponse{
		Count:           len(recs),
		Recommendations: recs,
	}

	if h.cache != nil {
		if err := h.cache.SetJSON(c.Context(), key, result, cacheTTL); err != nil {
			log.Printf("RecommendationHandler: failed to cache %s: %v", key, err)
		}
	}

	return response.Success(c, result)
}

// cacheKey keys a shortlist by the full query profile, under the prefix the
// snapshot-reload flush deletes.
func cacheKey(req RecommendationRequest) string {
	return fmt.Sprintf("%s%d:%s:%s:%s:%s:%d",
		cache.RecommendationKeyPrefix, req.Rank, req.Category, req.Gender, req.Region, req.District, req.Limit)
}
