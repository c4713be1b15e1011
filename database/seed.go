package database

import (
	"fmt"
	"log"

	"github.com/saikumarp/eapcet-predictor/model"
	"gorm.io/gorm"
)

// Seeder handles database seeding operations
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// RunSeeds seeds a development database
func RunSeeds(db *gorm.DB) error {
	return NewSeeder(db).SeedAll()
}

// SeedAll runs all seed functions
func (s *Seeder) SeedAll() error {
	log.Println("Starting database seeding...")

	if err := s.SeedSampleCutoffs(); err != nil {
		return fmt.Errorf("failed to seed sample cutoffs: %w", err)
	}

	log.Println("Database seeding completed successfully!")
	return nil
}

// SeedSampleCutoffs inserts a small cutoff table for local development, so
// the recommendation endpoints answer something before a real import runs.
func (s *Seeder) SeedSampleCutoffs() error {
	var count int64
	if err := s.db.Model(&model.AdmissionRecord{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("Admission records already present, skipping sample seed...")
		return nil
	}

	district := func(d string) *string { return &d }

	samples := []model.AdmissionRecord{
		{Institution: "ANDHRA UNIVERSITY COLLEGE OF ENGINEERING", BranchCode: "CSE", District: district("VSP"), Region: "AU", Category: "OC", Gender: "F", CutoffRank: 4200, Year: 2024, Round: 1},
		{Institution: "ANDHRA UNIVERSITY COLLEGE OF ENGINEERING", BranchCode: "ECE", District: district("VSP"), Region: "AU", Category: "OC", Gender: "F", CutoffRank: 7800, Year: 2024, Round: 1},
		{Institution: "ANDHRA UNIVERSITY COLLEGE OF ENGINEERING", BranchCode: "CSE", District: district("VSP"), Region: "AU", Category: "BC_B", Gender: "M", CutoffRank: 6100, Year: 2024, Round: 1},
		{Institution: "SRI VENKATESWARA UNIVERSITY COLLEGE OF ENGINEERING", BranchCode: "CSE", District: district("TPT"), Region: "SVU", Category: "OC", Gender: "F", CutoffRank: 5100, Year: 2024, Round: 1},
		{Institution: "SRI VENKATESWARA UNIVERSITY COLLEGE OF ENGINEERING", BranchCode: "MEC", District: district("TPT"), Region: "SVU", Category: "OC", Gender: "M", CutoffRank: 21500, Year: 2024, Round: 1},
		{Institution: "JNTU COLLEGE OF ENGINEERING KAKINADA", BranchCode: "CSE", District: district("EG"), Region: "AU", Category: "OC", Gender: "M", CutoffRank: 3900, Year: 2024, Round: 1},
		{Institution: "JNTU COLLEGE OF ENGINEERING KAKINADA", BranchCode: "CIV", District: district("EG"), Region: "AU", Category: "SC", Gender: "F", CutoffRank: 31800, Year: 2024, Round: 1},
		{Institution: "GVP COLLEGE OF ENGINEERING", BranchCode: "CSE", District: district("VSP"), Region: "AU", Category: "OC", Gender: "F", CutoffRank: 9400, Year: 2024, Round: 1},
		{Institution: "GVP COLLEGE OF ENGINEERING", BranchCode: "ECE", District: district("VSP"), Region: "AU", Category: "BC_A", Gender: "F", CutoffRank: 15600, Year: 2024, Round: 1},
		{Institution: "VR SIDDHARTHA ENGINEERING COLLEGE", BranchCode: "CSE", District: district("KRI"), Region: "AU", Category: "OC", Gender: "M", CutoffRank: 8100, Year: 2024, Round: 1},
	}

	if err := s.db.Create(&samples).Error; err != nil {
		return err
	}

	log.Printf("Seeded %d sample admission records", len(samples))
	return nil
}
