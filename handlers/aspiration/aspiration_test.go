package aspiration

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/saikumarp/eapcet-predictor/services/predictor"
)

type staticSnapshot struct {
	table predictor.Table
}

func (s staticSnapshot) Table() predictor.Table {
	return s.table
}

func newTestApp(table predictor.Table) *fiber.App {
	h := NewAspirationHandler(staticSnapshot{table: table})
	app := fiber.New()
	app.Post("/api/v1/aspiration", h.CheckAspiration)
	return app
}

func postAspiration(t *testing.T, app *fiber.App, body string) string {
	t.Helper()

	req := httptest.NewRequest("POST", "/api/v1/aspiration", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	return string(raw)
}

func TestCheckAspirationZeroGapIsSerialized(t *testing.T) {
	app := newTestApp(predictor.Table{
		{Institution: "JNTU", BranchCode: "CSE", Region: "AU", Category: "OC", Gender: "F", CutoffRank: 25000},
	})

	// Rank exactly at the historical cutoff: gap 0 must appear in the JSON,
	// not be dropped as an empty field.
	body := postAspiration(t, app,
		`{"rank":25000,"institution":"JNTU","branch_code":"CSE","category":"OC","gender":"F"}`)

	if !strings.Contains(body, `"found":true`) {
		t.Fatalf("expected found:true, got %s", body)
	}
	if !strings.Contains(body, `"cutoff":25000`) {
		t.Fatalf("expected cutoff:25000, got %s", body)
	}
	if !strings.Contains(body, `"rank_gap":0`) {
		t.Fatalf("expected rank_gap:0 in response, got %s", body)
	}
}

func TestCheckAspirationNegativeGapIsSerialized(t *testing.T) {
	app := newTestApp(predictor.Table{
		{Institution: "JNTU", BranchCode: "CSE", Region: "AU", Category: "OC", Gender: "F", CutoffRank: 25000},
	})

	body := postAspiration(t, app,
		`{"rank":26000,"institution":"JNTU","branch_code":"CSE","category":"OC","gender":"F"}`)

	if !strings.Contains(body, `"rank_gap":-1000`) {
		t.Fatalf("expected rank_gap:-1000 in response, got %s", body)
	}
}

func TestCheckAspirationAbsentCombination(t *testing.T) {
	app := newTestApp(predictor.Table{
		{Institution: "JNTU", BranchCode: "CSE", Region: "AU", Category: "OC", Gender: "F", CutoffRank: 25000},
	})

	body := postAspiration(t, app,
		`{"rank":20000,"institution":"JNTU","branch_code":"ECE","category":"OC","gender":"F"}`)

	if !strings.Contains(body, `"found":false`) {
		t.Fatalf("expected found:false, got %s", body)
	}
}
