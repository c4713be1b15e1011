package services

import (
	"fmt"
	"log"
	"sort"
	"sync/atomic"
	"time"

	"github.com/saikumarp/eapcet-predictor/model"
	"github.com/saikumarp/eapcet-predictor/services/predictor"
	"gorm.io/gorm"
)

// SnapshotService owns the in-memory cutoff table the predictor runs over.
// The table is loaded from Postgres once at startup and atomically swapped on
// reload, so every request sees one consistent snapshot end to end.
type SnapshotService struct {
	db       *gorm.DB
	current  atomic.Value // predictor.Table
	loadedAt atomic.Value // time.Time
}

// NewSnapshotService creates a new snapshot service
func NewSnapshotService(db *gorm.DB) *SnapshotService {
	return &SnapshotService{db: db}
}

// Reload pulls all live admission records from Postgres and swaps them in as
// the new snapshot. Returns the number of rows loaded.
func (s *SnapshotService) Reload() (int, error) {
	var records []model.AdmissionRecord
	if err := s.db.Find(&records).Error; err != nil {
		return 0, fmt.Errorf("failed to load admission records: %w", err)
	}

	table := make(predictor.Table, 0, len(records))
	for _, rec := range records {
		table = append(table, predictor.Record{
			Institution: rec.Institution,
			BranchCode:  rec.BranchCode,
			District:    rec.DistrictOrEmpty(),
			Region:      rec.Region,
			Category:    rec.Category,
			Gender:      rec.Gender,
			CutoffRank:  rec.CutoffRank,
		})
	}

	s.current.Store(table)
	s.loadedAt.Store(time.Now())

	log.Printf("Snapshot reloaded with %d admission records", len(table))
	return len(table), nil
}

// Table returns the current snapshot. It is nil until the first Reload.
func (s *SnapshotService) Table() predictor.Table {
	table, _ := s.current.Load().(predictor.Table)
	return table
}

// LoadedAt returns when the current snapshot was swapped in
func (s *SnapshotService) LoadedAt() time.Time {
	t, _ := s.loadedAt.Load().(time.Time)
	return t
}

// Options are the distinct filter values present in the snapshot. The
// presentation layer populates its form inputs from these.
type Options struct {
	Categories []string `json:"categories"`
	Genders    []string `json:"genders"`
	Regions    []string `json:"regions"`
	Districts  []string `json:"districts"`
}

// FilterOptions computes the distinct categories, genders, regions and
// districts in the current snapshot.
func (s *SnapshotService) FilterOptions() Options {
	table := s.Table()

	categories := map[string]bool{}
	genders := map[string]bool{}
	regions := map[string]bool{}
	districts := map[string]bool{}

	for _, rec := range table {
		categories[rec.Category] = true
		genders[rec.Gender] = true
		regions[rec.Region] = true
		if rec.District != "" {
			districts[rec.District] = true
		}
	}

	return Options{
		Categories: sortedKeys(categories),
		Genders:    sortedKeys(genders),
		Regions:    sortedKeys(regions),
		Districts:  sortedKeys(districts),
	}
}

// Institutions returns the distinct institution names in the snapshot
func (s *SnapshotService) Institutions() []string {
	names := map[string]bool{}
	for _, rec := range s.Table() {
		names[rec.Institution] = true
	}
	return sortedKeys(names)
}

// Branches returns the distinct branch codes offered by one institution
func (s *SnapshotService) Branches(institution string) []string {
	codes := map[string]bool{}
	for _, rec := range s.Table() {
		if rec.Institution == institution {
			codes[rec.BranchCode] = true
		}
	}
	return sortedKeys(codes)
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
