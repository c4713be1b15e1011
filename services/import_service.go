package services

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/saikumarp/eapcet-predictor/database"
	"github.com/saikumarp/eapcet-predictor/model"
	"github.com/saikumarp/eapcet-predictor/services/objectstore"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ImportStats summarizes one import run. Stored as JSON on the job row.
type ImportStats struct {
	RowsParsed   int `json:"rows_parsed"`
	RowsInserted int `json:"rows_inserted"`
	RowsSkipped  int `json:"rows_skipped"`
}

// ImportService runs bulk cutoff imports: CSV long-format files, officially
// published PDFs, and objects fetched from Spaces. Parsed rows go through the
// raw-sql store's batched inserts; each run is tracked as a CutoffImportJob.
type ImportService struct {
	db     *gorm.DB
	bulk   *database.PostgreSQLStore
	spaces *objectstore.SpacesClient // nil when Spaces is not configured
	pdf    *PDFExtractor
}

// NewImportService creates a new import service
func NewImportService(db *gorm.DB, bulk *database.PostgreSQLStore, spaces *objectstore.SpacesClient) *ImportService {
	return &ImportService{
		db:     db,
		bulk:   bulk,
		spaces: spaces,
		pdf:    NewPDFExtractor(),
	}
}

// ImportCSVFile imports a long-format cutoff CSV from the local filesystem
func (s *ImportService) ImportCSVFile(ctx context.Context, path string) (*model.CutoffImportJob, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cutoff CSV: %w", err)
	}
	defer f.Close()

	return s.ImportCSV(ctx, model.ImportSourceCSV, path, f)
}

// ImportCSV imports a long-format cutoff CSV from a reader
func (s *ImportService) ImportCSV(ctx context.Context, source model.ImportSource, ref string, r io.Reader) (*model.CutoffImportJob, error) {
	job, err := s.startJob(source, ref)
	if err != nil {
		return nil, err
	}

	records, skipped, err := parseCutoffCSV(r, job.BatchID)
	if err != nil {
		return s.failJob(job, fmt.Errorf("failed to parse CSV: %w", err))
	}

	return s.insertAndFinish(job, records, skipped)
}

// ImportPDF imports admission records from an officially published cutoff PDF
func (s *ImportService) ImportPDF(ctx context.Context, ref string, content []byte) (*model.CutoffImportJob, error) {
	job, err := s.startJob(model.ImportSourcePDF, ref)
	if err != nil {
		return nil, err
	}

	text, err := s.pdf.ExtractText(content)
	if err != nil {
		return s.failJob(job, err)
	}

	records, skipped := parseCutoffText(text, job.BatchID)
	if len(records) == 0 {
		return s.failJob(job, fmt.Errorf("no cutoff rows recognized in PDF text"))
	}

	return s.insertAndFinish(job, records, skipped)
}

// ImportFromSpaces downloads a dataset object from Spaces and imports it.
// CSV and PDF objects are both supported, keyed by file extension.
func (s *ImportService) ImportFromSpaces(ctx context.Context, key string) (*model.CutoffImportJob, error) {
	if s.spaces == nil {
		return nil, fmt.Errorf("spaces storage is not configured")
	}

	content, err := s.spaces.DownloadFile(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s from spaces: %w", key, err)
	}

	switch strings.ToLower(filepath.Ext(key)) {
	case ".pdf":
		return s.ImportPDF(ctx, key, content)
	default:
		return s.ImportCSV(ctx, model.ImportSourceSpaces, key, strings.NewReader(string(content)))
	}
}

// ArchiveDataset uploads a raw dataset file to Spaces for provenance
func (s *ImportService) ArchiveDataset(ctx context.Context, name string, content []byte) (string, error) {
	if s.spaces == nil {
		return "", fmt.Errorf("spaces storage is not configured")
	}
	key := fmt.Sprintf("cutoff-archive/%s/%s", time.Now().Format("2006-01-02"), name)
	return s.spaces.UploadFile(ctx, key, strings.NewReader(string(content)), "application/octet-stream")
}

// GetJob returns one import job by batch ID
func (s *ImportService) GetJob(batchID string) (*model.CutoffImportJob, error) {
	var job model.CutoffImportJob
	if err := s.db.Where("batch_id = ?", batchID).First(&job).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// ListJobs returns the most recent import jobs
func (s *ImportService) ListJobs(limit int) ([]model.CutoffImportJob, error) {
	if limit <= 0 {
		limit = 20
	}
	var jobs []model.CutoffImportJob
	err := s.db.Order("created_at DESC").Limit(limit).Find(&jobs).Error
	return jobs, err
}

// CleanupStaleJobs marks runs stuck in "running" for over an hour as failed.
// The cron manager calls this daily.
func (s *ImportService) CleanupStaleJobs() (int64, error) {
	cutoff := time.Now().Add(-1 * time.Hour)
	result := s.db.Model(&model.CutoffImportJob{}).
		Where("status = ? AND started_at < ?", model.ImportStatusRunning, cutoff).
		Updates(map[string]interface{}{
			"status":    model.ImportStatusFailed,
			"error_msg": "import did not finish within an hour",
		})
	return result.RowsAffected, result.Error
}

func (s *ImportService) startJob(source model.ImportSource, ref string) (*model.CutoffImportJob, error) {
	now := time.Now()
	job := &model.CutoffImportJob{
		BatchID:   uuid.New().String(),
		Source:    source,
		SourceRef: ref,
		Status:    model.ImportStatusRunning,
		StartedAt: &now,
	}
	if err := s.db.Create(job).Error; err != nil {
		return nil, fmt.Errorf("failed to create import job: %w", err)
	}
	return job, nil
}

func (s *ImportService) insertAndFinish(job *model.CutoffImportJob, records []model.AdmissionRecord, skipped int) (*model.CutoffImportJob, error) {
	inserted, err := s.bulk.BulkInsertAdmissionRecords(records)
	if err != nil {
		// Drop whatever the partial run wrote so a retry starts clean.
		if cleanupErr := s.bulk.DeleteRecordsByImportJob(job.BatchID); cleanupErr != nil {
			log.Printf("ImportService: failed to clean up batch %s: %v", job.BatchID, cleanupErr)
		}
		return s.failJob(job, err)
	}

	stats := ImportStats{
		RowsParsed:   len(records) + skipped,
		RowsInserted: inserted,
		RowsSkipped:  skipped,
	}
	statsJSON, _ := json.Marshal(stats)

	now := time.Now()
	job.Status = model.ImportStatusCompleted
	job.Stats = datatypes.JSON(statsJSON)
	job.CompletedAt = &now
	if err := s.db.Save(job).Error; err != nil {
		return nil, fmt.Errorf("failed to finalize import job: %w", err)
	}

	log.Printf("ImportService: batch %s inserted %d rows (%d skipped)", job.BatchID, inserted, skipped)
	return job, nil
}

func (s *ImportService) failJob(job *model.CutoffImportJob, cause error) (*model.CutoffImportJob, error) {
	now := time.Now()
	job.Status = model.ImportStatusFailed
	job.ErrorMsg = cause.Error()
	job.CompletedAt = &now
	if err := s.db.Save(job).Error; err != nil {
		log.Printf("ImportService: failed to mark job %s failed: %v", job.BatchID, err)
	}
	return job, cause
}

// csvColumns maps the long-format CSV headers to record fields. The official
// dataset uses the original column names; normalized aliases are accepted.
var csvColumns = map[string]string{
	"name of the institution": "institution",
	"institution":             "institution",
	"branch_code":             "branch_code",
	"branch":                  "branch_code",
	"dist":                    "district",
	"district":                "district",
	"a_reg":                   "region",
	"region":                  "region",
	"category":                "category",
	"gender":                  "gender",
	"cutoff_rank":             "cutoff_rank",
	"year":                    "year",
	"round":                   "round",
}

func parseCutoffCSV(r io.Reader, batchID string) ([]model.AdmissionRecord, int, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read CSV header: %w", err)
	}

	index := map[string]int{}
	for i, col := range header {
		name := strings.ToLower(strings.TrimSpace(col))
		if field, ok := csvColumns[name]; ok {
			index[field] = i
		}
	}

	for _, required := range []string{"institution", "branch_code", "region", "category", "gender", "cutoff_rank"} {
		if _, ok := index[required]; !ok {
			return nil, 0, fmt.Errorf("CSV is missing required column %q", required)
		}
	}

	var records []model.AdmissionRecord
	skipped := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, err
		}

		cutoff, err := strconv.Atoi(strings.TrimSpace(row[index["cutoff_rank"]]))
		if err != nil || cutoff <= 0 {
			skipped++
			continue
		}

		institution := strings.TrimSpace(row[index["institution"]])
		if institution == "" {
			skipped++
			continue
		}

		rec := model.AdmissionRecord{
			Institution: institution,
			BranchCode:  strings.TrimSpace(row[index["branch_code"]]),
			Region:      strings.TrimSpace(row[index["region"]]),
			Category:    strings.TrimSpace(row[index["category"]]),
			Gender:      strings.TrimSpace(row[index["gender"]]),
			CutoffRank:  cutoff,
			ImportJobID: &batchID,
		}

		if i, ok := index["district"]; ok {
			if d := strings.TrimSpace(row[i]); d != "" {
				rec.District = &d
			}
		}
		if i, ok := index["year"]; ok {
			rec.Year, _ = strconv.Atoi(strings.TrimSpace(row[i]))
		}
		if i, ok := index["round"]; ok {
			rec.Round, _ = strconv.Atoi(strings.TrimSpace(row[i]))
		}

		records = append(records, rec)
	}

	return records, skipped, nil
}

// cutoffLineRe matches one allotment line in extracted PDF text:
// institution name, branch code, category, gender, region, cutoff rank.
var cutoffLineRe = regexp.MustCompile(`^(.{3,}?)\s{2,}([A-Z]{2,6})\s+([A-Z_]{2,6})\s+([MF])\s+(\S+)\s+(\d{1,7})\s*$`)

func parseCutoffText(text, batchID string) ([]model.AdmissionRecord, int) {
	var records []model.AdmissionRecord
	skipped := 0

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, " \r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		m := cutoffLineRe.FindStringSubmatch(line)
		if m == nil {
			skipped++
			continue
		}

		cutoff, err := strconv.Atoi(m[6])
		if err != nil || cutoff <= 0 {
			skipped++
			continue
		}

		records = append(records, model.AdmissionRecord{
			Institution: strings.TrimSpace(m[1]),
			BranchCode:  m[2],
			Category:    m[3],
			Gender:      m[4],
			Region:      m[5],
			CutoffRank:  cutoff,
			ImportJobID: &batchID,
		})
	}

	return records, skipped
}
