package cutoff

import (
	"io"
	"log"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/saikumarp/eapcet-predictor/model"
	"github.com/saikumarp/eapcet-predictor/services"
	"github.com/saikumarp/eapcet-predictor/utils/cache"
	"github.com/saikumarp/eapcet-predictor/utils/response"
	"github.com/saikumarp/eapcet-predictor/utils/validation"
	"gorm.io/gorm"
)

// CutoffHandler is the admin surface for managing the cutoff dataset:
// listing and editing rows, running bulk imports, and swapping the
// in-memory snapshot.
type CutoffHandler struct {
	db        *gorm.DB
	snapshot  *services.SnapshotService
	importer  *services.ImportService
	cache     *cache.RedisCache
	validator *validation.Validator
}

// NewCutoffHandler creates a new cutoff handler. The cache may be nil.
func NewCutoffHandler(db *gorm.DB, snapshot *services.SnapshotService, importer *services.ImportService, redisCache *cache.RedisCache) *CutoffHandler {
	return &CutoffHandler{
		db:        db,
		snapshot:  snapshot,
		importer:  importer,
		cache:     redisCache,
		validator: validation.NewValidator(),
	}
}

// CreateCutoffRequest represents the request body for creating one record
type CreateCutoffRequest struct {
	Institution string `json:"institution" validate:"required,min=2,max=512"`
	BranchCode  string `json:"branch_code" validate:"required,min=2,max=20"`
	District    string `json:"district" validate:"omitempty,max=100"`
	Region      string `json:"region" validate:"required,min=1,max=50"`
	Category    string `json:"category" validate:"required,min=1,max=20"`
	Gender      string `json:"gender" validate:"required,min=1,max=10"`
	CutoffRank  int    `json:"cutoff_rank" validate:"required,gt=0"`
	Year        int    `json:"year" validate:"omitempty,gte=2000,lte=2100"`
	Round       int    `json:"round" validate:"omitempty,gte=1,lte=10"`
}

// ImportRequest selects a Spaces object to import when no file is uploaded
type ImportRequest struct {
	SpacesKey string `json:"spaces_key" validate:"required,min=1,max=512"`
}

// ListCutoffs handles GET /api/v1/cutoffs
func (h *CutoffHandler) ListCutoffs(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	search := c.Query("search", "")
	category := c.Query("category", "")
	district := c.Query("district", "")

	query := h.db.Model(&model.AdmissionRecord{})

	if search != "" {
		query = query.Where("institution ILIKE ? OR branch_code ILIKE ?",
			"%"+search+"%", "%"+search+"%")
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if district != "" {
		query = query.Where("district = ?", district)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return response.InternalServerError(c, "Failed to count admission records")
	}

	// Offset uses the clamped pagination values so oversized or zero query
	// params cannot skip past rows or go negative.
	pagination := response.CalculatePagination(page, limit, total)
	offset := (pagination.CurrentPage - 1) * pagination.PerPage

	var records []model.AdmissionRecord
	if err := query.Order("cutoff_rank ASC").
		Limit(pagination.PerPage).
		Offset(offset).
		Find(&records).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch admission records")
	}

	return response.Paginated(c, records, pagination)
}

// CreateCutoff handles POST /api/v1/cutoffs
func (h *CutoffHandler) CreateCutoff(c *fiber.Ctx) error {
	var req CreateCutoffRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	record := model.AdmissionRecord{
		Institution: validation.SanitizeString(req.Institution),
		BranchCode:  validation.SanitizeString(req.BranchCode),
		Region:      validation.SanitizeString(req.Region),
		Category:    validation.SanitizeString(req.Category),
		Gender:      validation.SanitizeString(req.Gender),
		CutoffRank:  req.CutoffRank,
		Year:        req.Year,
		Round:       req.Round,
	}
	if d := validation.SanitizeString(req.District); d != "" {
		record.District = &d
	}

	if err := h.db.Create(&record).Error; err != nil {
		return response.InternalServerError(c, "Failed to create admission record")
	}

	return response.Created(c, record)
}

// DeleteCutoff handles DELETE /api/v1/cutoffs/:id
func (h *CutoffHandler) DeleteCutoff(c *fiber.Ctx) error {
	id := c.Params("id")

	var record model.AdmissionRecord
	if err := h.db.First(&record, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Admission record not found")
		}
		return response.InternalServerError(c, "Failed to fetch admission record")
	}

	if err := h.db.Delete(&record).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete admission record")
	}

	return response.SuccessWithMessage(c, "Admission record deleted", nil)
}

// ImportCutoffs handles POST /api/v1/cutoffs/import. Accepts either a
// multipart "file" upload (CSV or PDF) or a JSON body naming a Spaces key.
// The new rows become visible to recommendations only after a reload.
func (h *CutoffHandler) ImportCutoffs(c *fiber.Ctx) error {
	if file, err := c.FormFile("file"); err == nil {
		f, err := file.Open()
		if err != nil {
			return response.BadRequest(c, "Failed to open uploaded file")
		}
		defer f.Close()

		var job *model.CutoffImportJob
		switch strings.ToLower(filepath.Ext(file.Filename)) {
		case ".pdf":
			content, err := io.ReadAll(f)
			if err != nil {
				return response.BadRequest(c, "Failed to read uploaded file")
			}
			job, err = h.importer.ImportPDF(c.Context(), file.Filename, content)
			if err != nil {
				return importError(c, job, err)
			}
		case ".csv":
			var err error
			job, err = h.importer.ImportCSV(c.Context(), model.ImportSourceCSV, file.Filename, f)
			if err != nil {
				return importError(c, job, err)
			}
		default:
			return response.BadRequest(c, "Only .csv and .pdf uploads are supported")
		}

		return response.Accepted(c, "Import completed, reload the snapshot to publish it", job)
	}

	var req ImportRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Provide a multipart file or a spaces_key")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	job, err := h.importer.ImportFromSpaces(c.Context(), validation.SanitizeString(req.SpacesKey))
	if err != nil {
		return importError(c, job, err)
	}

	return response.Accepted(c, "Import completed, reload the snapshot to publish it", job)
}

// ReloadSnapshot handles POST /api/v1/cutoffs/reload
func (h *CutoffHandler) ReloadSnapshot(c *fiber.Ctx) error {
	count, err := h.snapshot.Reload()
	if err != nil {
		return response.InternalServerError(c, "Failed to reload cutoff snapshot")
	}

	if h.cache != nil {
		if err := h.cache.DeleteByPattern(c.Context(), cache.RecommendationKeyPrefix+"*"); err != nil {
			log.Printf("CutoffHandler: failed to flush recommendation cache: %v", err)
		}
	}

	return response.SuccessWithMessage(c, "Cutoff snapshot reloaded", fiber.Map{
		"records":   count,
		"loaded_at": h.snapshot.LoadedAt(),
	})
}

// ListImportJobs handles GET /api/v1/cutoffs/imports
func (h *CutoffHandler) ListImportJobs(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	jobs, err := h.importer.ListJobs(limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch import jobs")
	}

	return response.Success(c, jobs)
}

// GetImportJob handles GET /api/v1/cutoffs/imports/:batch_id
func (h *CutoffHandler) GetImportJob(c *fiber.Ctx) error {
	batchID := c.Params("batch_id")

	job, err := h.importer.GetJob(batchID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Import job not found")
		}
		return response.InternalServerError(c, "Failed to fetch import job")
	}

	return response.Success(c, job)
}

// importError reports a failed import. The job row, when one was created,
// carries the failure detail for later inspection.
func importError(c *fiber.Ctx, job *model.CutoffImportJob, err error) error {
	if job != nil {
		return response.ErrorWithDetails(c, fiber.StatusUnprocessableEntity,
			"Import failed", "IMPORT_FAILED", err.Error())
	}
	return response.InternalServerError(c, "Import failed: "+err.Error())
}
