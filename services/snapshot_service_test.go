package services

import (
	"reflect"
	"testing"

	"github.com/saikumarp/eapcet-predictor/services/predictor"
)

func snapshotWithTable(table predictor.Table) *SnapshotService {
	s := &SnapshotService{}
	s.current.Store(table)
	return s
}

func TestFilterOptions(t *testing.T) {
	s := snapshotWithTable(predictor.Table{
		{Institution: "JNTU", BranchCode: "CSE", District: "Hyderabad", Region: "AU", Category: "OC", Gender: "M", CutoffRank: 4500},
		{Institution: "JNTU", BranchCode: "ECE", District: "Hyderabad", Region: "AU", Category: "BC_A", Gender: "F", CutoffRank: 9000},
		{Institution: "AUC", BranchCode: "CSE", District: "", Region: "SVU", Category: "OC", Gender: "M", CutoffRank: 7000},
	})

	opts := s.FilterOptions()

	if !reflect.DeepEqual(opts.Categories, []string{"BC_A", "OC"}) {
		t.Errorf("unexpected categories %v", opts.Categories)
	}
	if !reflect.DeepEqual(opts.Genders, []string{"F", "M"}) {
		t.Errorf("unexpected genders %v", opts.Genders)
	}
	if !reflect.DeepEqual(opts.Regions, []string{"AU", "SVU"}) {
		t.Errorf("unexpected regions %v", opts.Regions)
	}
	// Empty districts are not offered as a filter choice.
	if !reflect.DeepEqual(opts.Districts, []string{"Hyderabad"}) {
		t.Errorf("unexpected districts %v", opts.Districts)
	}
}

func TestInstitutionsAndBranches(t *testing.T) {
	s := snapshotWithTable(predictor.Table{
		{Institution: "JNTU", BranchCode: "CSE"},
		{Institution: "JNTU", BranchCode: "ECE"},
		{Institution: "JNTU", BranchCode: "CSE"},
		{Institution: "AUC", BranchCode: "MEC"},
	})

	if got := s.Institutions(); !reflect.DeepEqual(got, []string{"AUC", "JNTU"}) {
		t.Errorf("unexpected institutions %v", got)
	}
	if got := s.Branches("JNTU"); !reflect.DeepEqual(got, []string{"CSE", "ECE"}) {
		t.Errorf("unexpected branches %v", got)
	}
	if got := s.Branches("unknown"); len(got) != 0 {
		t.Errorf("expected no branches for unknown institution, got %v", got)
	}
}

func TestTableNilBeforeFirstLoad(t *testing.T) {
	s := &SnapshotService{}

	if s.Table() != nil {
		t.Error("expected nil table before the first load")
	}
	if !s.LoadedAt().IsZero() {
		t.Error("expected zero load time before the first load")
	}

	opts := s.FilterOptions()
	if len(opts.Categories) != 0 || len(opts.Regions) != 0 {
		t.Errorf("expected empty options for empty snapshot, got %+v", opts)
	}
}
