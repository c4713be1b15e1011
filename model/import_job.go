package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ImportSource identifies where a cutoff dataset came from.
type ImportSource string

const (
	ImportSourceCSV     ImportSource = "csv"
	ImportSourcePDF     ImportSource = "pdf"
	ImportSourceSpaces  ImportSource = "spaces"
	ImportSourceCrawler ImportSource = "crawler"
)

// ImportStatus represents the lifecycle of a cutoff import run.
type ImportStatus string

const (
	ImportStatusPending   ImportStatus = "pending"
	ImportStatusRunning   ImportStatus = "running"
	ImportStatusCompleted ImportStatus = "completed"
	ImportStatusFailed    ImportStatus = "failed"
)

// CutoffImportJob tracks one bulk import of admission records. BatchID ties
// imported rows back to the run that produced them.
type CutoffImportJob struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	BatchID     string         `gorm:"type:varchar(36);uniqueIndex;not null" json:"batch_id"`
	Source      ImportSource   `gorm:"type:varchar(20);not null" json:"source"`
	SourceRef   string         `gorm:"type:varchar(512)" json:"source_ref"` // file path, object key or URL
	Status      ImportStatus   `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Stats       datatypes.JSON `gorm:"type:jsonb" json:"stats"` // rows parsed/inserted/skipped, per-region counts
	ErrorMsg    string         `gorm:"type:text" json:"error_msg,omitempty"`
	StartedAt   *time.Time     `json:"started_at,omitempty"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for CutoffImportJob
func (CutoffImportJob) TableName() string {
	return "cutoff_import_jobs"
}
