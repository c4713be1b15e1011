package model

import (
	"time"

	"gorm.io/gorm"
)

// AdmissionRecord is one historical allotment row from the EAPCET counselling
// data: the last-admitted rank for a college + branch + category + gender +
// region combination in a prior cycle.
type AdmissionRecord struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Institution string         `gorm:"type:varchar(512);not null;index" json:"institution"`
	BranchCode  string         `gorm:"type:varchar(20);not null;index" json:"branch_code"`
	District    *string        `gorm:"type:varchar(100);index" json:"district,omitempty"`
	Region      string         `gorm:"type:varchar(50);not null;index" json:"region"` // e.g. "AU", "SVU", "NON-LOCAL"
	Category    string         `gorm:"type:varchar(20);not null;index" json:"category"`
	Gender      string         `gorm:"type:varchar(10);not null;index" json:"gender"`
	CutoffRank  int            `gorm:"not null" json:"cutoff_rank"`
	Year        int            `gorm:"index" json:"year"`  // counselling year, 0 when unknown
	Round       int            `json:"round"`              // counselling round, 0 when unknown
	ImportJobID *string        `gorm:"type:varchar(36);index" json:"import_job_id,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for AdmissionRecord
func (AdmissionRecord) TableName() string {
	return "admission_records"
}

// DistrictOrEmpty returns the district value, or "" when the source row had
// none.
func (r AdmissionRecord) DistrictOrEmpty() string {
	if r.District == nil {
		return ""
	}
	return *r.District
}
