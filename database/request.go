package database

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/saikumarp/eapcet-predictor/model"
)

// insertBatchSize keeps each multi-row INSERT under Postgres' 65535 bind
// parameter limit (10 bound columns per row).
const insertBatchSize = 2000

// BulkInsertAdmissionRecords inserts admission records in batched multi-row
// statements and returns the number of rows written.
func (s *PostgreSQLStore) BulkInsertAdmissionRecords(records []model.AdmissionRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}

	inserted := 0
	for start := 0; start < len(records); start += insertBatchSize {
		end := start + insertBatchSize
		if end > len(records) {
			end = len(records)
		}

		batch := records[start:end]
		query, values := buildInsertQuery(batch)
		if _, err := tx.Exec(query, values...); err != nil {
			tx.Rollback()
			return inserted, fmt.Errorf("batch insert at row %d: %w", start, err)
		}
		inserted += len(batch)
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return inserted, nil
}

func buildInsertQuery(batch []model.AdmissionRecord) (string, []interface{}) {
	var sb strings.Builder
	sb.WriteString(`INSERT INTO admission_records
		(institution, branch_code, district, region, category, gender, cutoff_rank, year, round, import_job_id, created_at, updated_at)
		VALUES `)

	values := make([]interface{}, 0, len(batch)*10)
	placeholders := make([]string, 0, len(batch))

	for i, rec := range batch {
		base := i * 10
		placeholders = append(placeholders, fmt.Sprintf(
			"($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, NOW(), NOW())",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9, base+10,
		))

		var district sql.NullString
		if rec.District != nil {
			district = sql.NullString{String: *rec.District, Valid: true}
		}
		var importJob sql.NullString
		if rec.ImportJobID != nil {
			importJob = sql.NullString{String: *rec.ImportJobID, Valid: true}
		}

		values = append(values,
			rec.Institution, rec.BranchCode, district, rec.Region,
			rec.Category, rec.Gender, rec.CutoffRank, rec.Year, rec.Round, importJob,
		)
	}

	sb.WriteString(strings.Join(placeholders, ", "))
	return sb.String(), values
}

// DeleteRecordsByImportJob removes all rows a failed import run produced.
func (s *PostgreSQLStore) DeleteRecordsByImportJob(batchID string) error {
	_, err := s.db.Exec("DELETE FROM admission_records WHERE import_job_id = $1", batchID)
	return err
}

// CountAdmissionRecords returns the number of live cutoff rows
func (s *PostgreSQLStore) CountAdmissionRecords() (int64, error) {
	var count int64
	err := s.db.QueryRow("SELECT COUNT(*) FROM admission_records WHERE deleted_at IS NULL").Scan(&count)
	return count, err
}
