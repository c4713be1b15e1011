package predictor

import (
	"errors"
	"testing"
)

func TestCheckAspirationNegativeGapIsValid(t *testing.T) {
	table := Table{
		{Institution: "X", BranchCode: "CSE", District: "D1", Region: "AU", Category: "OC", Gender: "F", CutoffRank: 25000},
	}

	got, found, err := CheckAspiration(table, "X", "CSE", 26000, "OC", "F")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Fatal("expected a historical record to be found")
	}
	if got.Cutoff != 25000 {
		t.Fatalf("expected cutoff 25000, got %d", got.Cutoff)
	}
	if got.RankGap != -1000 {
		t.Fatalf("expected rank gap -1000, got %d", got.RankGap)
	}
}

func TestCheckAspirationAbsentIsNotAnError(t *testing.T) {
	table := Table{
		{Institution: "X", BranchCode: "CSE", District: "D1", Region: "AU", Category: "OC", Gender: "F", CutoffRank: 25000},
	}

	got, found, err := CheckAspiration(table, "X", "ECE", 20000, "OC", "F")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found || got != nil {
		t.Fatalf("expected absent result, got %+v", got)
	}
}

func TestCheckAspirationTakesMinimumCutoffAcrossRounds(t *testing.T) {
	table := Table{
		{Institution: "X", BranchCode: "CSE", Region: "AU", Category: "OC", Gender: "F", CutoffRank: 27000},
		{Institution: "X", BranchCode: "CSE", Region: "AU", Category: "OC", Gender: "F", CutoffRank: 25000},
		{Institution: "X", BranchCode: "CSE", Region: "AU", Category: "OC", Gender: "F", CutoffRank: 26000},
	}

	got, found, err := CheckAspiration(table, "X", "CSE", 20000, "OC", "F")
	if err != nil || !found {
		t.Fatalf("expected a result, got found=%v err=%v", found, err)
	}
	if got.Cutoff != 25000 {
		t.Fatalf("expected conservative cutoff 25000, got %d", got.Cutoff)
	}
}

func TestCheckAspirationRejectsNonPositiveRank(t *testing.T) {
	_, _, err := CheckAspiration(Table{}, "X", "CSE", -5, "OC", "F")
	if !errors.Is(err, ErrInvalidRank) {
		t.Fatalf("expected ErrInvalidRank, got %v", err)
	}
}
