package predictor

// AspirationResult is the raw point comparison for one specific college and
// branch. RankGap may be negative: the user's rank is worse than the last
// admitted rank, an unfavorable but valid answer.
type AspirationResult struct {
	Cutoff  int `json:"cutoff"`
	RankGap int `json:"rank_gap"`
}

// CheckAspiration looks up the historical cutoff for an exact college,
// branch, category and gender combination. The second return value is false
// when no historical precedent exists for that combination.
//
// When several counselling rounds produce duplicate rows for the same key,
// the minimum cutoff wins: the most conservative historical answer, and one
// that does not depend on row order in the source file.
func CheckAspiration(table Table, institution, branchCode string, userRank int, category, gender string) (*AspirationResult, bool, error) {
	if userRank <= 0 {
		return nil, false, ErrInvalidRank
	}

	cutoff := 0
	found := false
	for _, rec := range table {
		if rec.Institution != institution || rec.BranchCode != branchCode {
			continue
		}
		if rec.Category != category || rec.Gender != gender {
			continue
		}
		if !found || rec.CutoffRank < cutoff {
			cutoff = rec.CutoffRank
			found = true
		}
	}

	if !found {
		return nil, false, nil
	}

	return &AspirationResult{
		Cutoff:  cutoff,
		RankGap: cutoff - userRank,
	}, true, nil
}
