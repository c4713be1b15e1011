package database

import (
	"os"
	"testing"

	"github.com/saikumarp/eapcet-predictor/model"
)

// Requires a running Postgres configured through the usual DB_* variables.
// Set RUN_INTEGRATION_TESTS=true to enable.
func TestBulkInsertRoundTrip(t *testing.T) {
	if os.Getenv("RUN_INTEGRATION_TESTS") != "true" {
		t.Skip("set RUN_INTEGRATION_TESTS=true to run database integration tests")
	}

	gormStore, err := StartGORM()
	if err != nil {
		t.Fatalf("failed to connect with GORM: %v", err)
	}
	defer gormStore.Close()

	if err := gormStore.Init(); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	bulkStore, err := Start()
	if err != nil {
		t.Fatalf("failed to open raw connection: %v", err)
	}
	defer bulkStore.Close()

	batchID := "integration-test-batch"
	district := "VSP"
	records := []model.AdmissionRecord{
		{Institution: "INTEGRATION TEST COLLEGE", BranchCode: "CSE", District: &district, Region: "AU", Category: "OC", Gender: "F", CutoffRank: 4200, Year: 2024, Round: 1, ImportJobID: &batchID},
		{Institution: "INTEGRATION TEST COLLEGE", BranchCode: "ECE", Region: "AU", Category: "OC", Gender: "M", CutoffRank: 8800, Year: 2024, Round: 1, ImportJobID: &batchID},
	}

	defer func() {
		if err := bulkStore.DeleteRecordsByImportJob(batchID); err != nil {
			t.Errorf("cleanup failed: %v", err)
		}
	}()

	before, err := bulkStore.CountAdmissionRecords()
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}

	inserted, err := bulkStore.BulkInsertAdmissionRecords(records)
	if err != nil {
		t.Fatalf("bulk insert failed: %v", err)
	}
	if inserted != len(records) {
		t.Fatalf("expected %d rows inserted, got %d", len(records), inserted)
	}

	after, err := bulkStore.CountAdmissionRecords()
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if after != before+int64(len(records)) {
		t.Fatalf("expected count to grow by %d, got %d -> %d", len(records), before, after)
	}
}
