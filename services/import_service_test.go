package services

import (
	"strings"
	"testing"
)

func TestParseCutoffCSVLongFormat(t *testing.T) {
	csv := `NAME OF THE INSTITUTION,branch_code,DIST,A_REG,category,gender,cutoff_rank,year,round
JNTU College of Engineering,CSE,Hyderabad,AU,OC,M,4500,2024,1
Andhra University College,ECE,Visakhapatnam,AU,BC_A,F,12000,2024,1
`

	records, skipped, err := parseCutoffCSV(strings.NewReader(csv), "batch-1")
	if err != nil {
		t.Fatalf("parseCutoffCSV returned error: %v", err)
	}
	if skipped != 0 {
		t.Fatalf("expected no skipped rows, got %d", skipped)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	first := records[0]
	if first.Institution != "JNTU College of Engineering" {
		t.Errorf("unexpected institution %q", first.Institution)
	}
	if first.BranchCode != "CSE" || first.Region != "AU" || first.Category != "OC" || first.Gender != "M" {
		t.Errorf("unexpected key fields: %+v", first)
	}
	if first.CutoffRank != 4500 || first.Year != 2024 || first.Round != 1 {
		t.Errorf("unexpected numeric fields: %+v", first)
	}
	if first.District == nil || *first.District != "Hyderabad" {
		t.Errorf("expected district Hyderabad, got %v", first.District)
	}
	if first.ImportJobID == nil || *first.ImportJobID != "batch-1" {
		t.Errorf("expected import job id batch-1, got %v", first.ImportJobID)
	}
}

func TestParseCutoffCSVSkipsBadRows(t *testing.T) {
	csv := `institution,branch_code,region,category,gender,cutoff_rank
Good College,CSE,AU,OC,M,4500
Bad Rank College,CSE,AU,OC,M,not-a-number
,CSE,AU,OC,M,100
Negative College,CSE,AU,OC,M,-5
`

	records, skipped, err := parseCutoffCSV(strings.NewReader(csv), "batch-2")
	if err != nil {
		t.Fatalf("parseCutoffCSV returned error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if skipped != 3 {
		t.Fatalf("expected 3 skipped rows, got %d", skipped)
	}
	if records[0].District != nil {
		t.Errorf("expected nil district when column is absent, got %v", records[0].District)
	}
}

func TestParseCutoffCSVMissingColumn(t *testing.T) {
	csv := `institution,branch_code,region,category,gender
Good College,CSE,AU,OC,M
`

	_, _, err := parseCutoffCSV(strings.NewReader(csv), "batch-3")
	if err == nil {
		t.Fatal("expected error for missing cutoff_rank column")
	}
	if !strings.Contains(err.Error(), "cutoff_rank") {
		t.Errorf("error should name the missing column, got %v", err)
	}
}

func TestParseCutoffText(t *testing.T) {
	text := strings.Join([]string{
		"EAPCET 2024 Final Phase Last Ranks",
		"JNTU College of Engineering  CSE OC M AU 4500",
		"Andhra University College of Engineering  ECE BC_A F SVU 12000",
		"this line does not match anything",
		"",
	}, "\n")

	records, skipped := parseCutoffText(text, "batch-4")
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	// The header is unparseable and counted as skipped; blank lines are not.
	if skipped != 2 {
		t.Fatalf("expected 2 skipped lines, got %d", skipped)
	}

	first := records[0]
	if first.Institution != "JNTU College of Engineering" {
		t.Errorf("unexpected institution %q", first.Institution)
	}
	if first.BranchCode != "CSE" || first.Category != "OC" || first.Gender != "M" || first.Region != "AU" {
		t.Errorf("unexpected fields: %+v", first)
	}
	if first.CutoffRank != 4500 {
		t.Errorf("unexpected cutoff %d", first.CutoffRank)
	}
}
