package predictor

// Sentinel values carried over from the counselling data. A query region of
// RegionNonLocal means "no regional restriction"; a district of DistrictAll
// means "any district".
const (
	RegionNonLocal = "NON-LOCAL"
	DistrictAll    = "All"
)

// Record is one historical allotment row: the last-admitted (cutoff) rank for
// a college + branch + category + gender + region combination in a prior
// counselling cycle.
type Record struct {
	Institution string `json:"institution"`
	BranchCode  string `json:"branch_code"`
	District    string `json:"district,omitempty"`
	Region      string `json:"region"`
	Category    string `json:"category"`
	Gender      string `json:"gender"`
	CutoffRank  int    `json:"cutoff_rank"`
}

// Table is an immutable snapshot of admission records. Callers must not
// mutate a table after handing it to the engine; reloads swap in a fresh one.
type Table []Record
