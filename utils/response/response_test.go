package response

import "testing"

func TestCalculatePaginationClampsInputs(t *testing.T) {
	cases := []struct {
		name        string
		page, limit int
		total       int64
		wantPage    int
		wantPer     int
		wantPages   int
	}{
		{"normal", 2, 50, 120, 2, 50, 3},
		{"zero page", 0, 50, 120, 1, 50, 3},
		{"negative page", -3, 50, 120, 1, 50, 3},
		{"zero limit", 1, 0, 25, 1, 10, 3},
		{"oversized limit", 2, 1000, 250, 2, 100, 3},
		{"empty table", 1, 10, 0, 1, 10, 0},
	}

	for _, tc := range cases {
		got := CalculatePagination(tc.page, tc.limit, tc.total)
		if got.CurrentPage != tc.wantPage {
			t.Errorf("%s: CurrentPage = %d, want %d", tc.name, got.CurrentPage, tc.wantPage)
		}
		if got.PerPage != tc.wantPer {
			t.Errorf("%s: PerPage = %d, want %d", tc.name, got.PerPage, tc.wantPer)
		}
		if got.TotalPages != tc.wantPages {
			t.Errorf("%s: TotalPages = %d, want %d", tc.name, got.TotalPages, tc.wantPages)
		}
		if got.Total != tc.total {
			t.Errorf("%s: Total = %d, want %d", tc.name, got.Total, tc.total)
		}
	}
}

// The list endpoints page with offset = (CurrentPage-1) * PerPage taken from
// the clamped metadata, never from the raw query values.
func TestPaginationOffsetNeverNegative(t *testing.T) {
	for _, page := range []int{-5, 0, 1, 7} {
		for _, limit := range []int{-1, 0, 10, 1000} {
			p := CalculatePagination(page, limit, 500)
			offset := (p.CurrentPage - 1) * p.PerPage
			if offset < 0 {
				t.Fatalf("offset %d negative for page=%d limit=%d", offset, page, limit)
			}
			if p.PerPage > 100 {
				t.Fatalf("PerPage %d exceeds cap for limit=%d", p.PerPage, limit)
			}
		}
	}
}
