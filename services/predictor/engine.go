package predictor

import (
	"context"
	"errors"
	"sort"
)

// ErrInvalidRank is returned when a query carries a non-positive rank.
var ErrInvalidRank = errors.New("user rank must be a positive integer")

// DefaultLimit is the recommendation count used when a query does not ask
// for a specific number.
const DefaultLimit = 10

// Query is the ephemeral student profile a recommendation is computed for.
type Query struct {
	Rank     int
	Category string
	Gender   string
	Region   string // RegionNonLocal means no regional restriction
	District string // DistrictAll (or empty) means any district
	Limit    int
}

// Recommendation is one scored row of the shortlist.
type Recommendation struct {
	Position    int     `json:"position"`
	Record              // embedded allotment row
	RankGap     int     `json:"rank_gap"`
	Suitability float64 `json:"suitability"`
	Risk        Risk    `json:"risk"`
}

// Recommend filters the table by the query's hard eligibility constraints,
// scores the survivors with the deterministic gap formula, and returns the
// top rows sorted by suitability. An empty result is a normal outcome, not
// an error.
func Recommend(table Table, q Query) ([]Recommendation, error) {
	return RecommendWithStrategy(context.Background(), table, q, DeterministicGapScore{})
}

// RecommendWithStrategy is Recommend with a caller-chosen scoring strategy.
func RecommendWithStrategy(ctx context.Context, table Table, q Query, strategy ScoreStrategy) ([]Recommendation, error) {
	if q.Rank <= 0 {
		return nil, ErrInvalidRank
	}

	limit := q.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	result := []Recommendation{}
	for _, rec := range table {
		if rec.Category != q.Category || rec.Gender != q.Gender {
			continue
		}
		// Hard eligibility: the user's rank must clear the historical cutoff.
		if rec.CutoffRank < q.Rank {
			continue
		}
		if q.Region != RegionNonLocal && rec.Region != q.Region {
			continue
		}
		if q.District != "" && q.District != DistrictAll && rec.District != q.District {
			continue
		}

		gap := rec.CutoffRank - q.Rank
		if gap > RealisticGapCeiling {
			continue
		}

		score, err := strategy.Score(ctx, q.Rank, rec.CutoffRank)
		if err != nil {
			return nil, err
		}

		result = append(result, Recommendation{
			Record:      rec,
			RankGap:     gap,
			Suitability: score,
			Risk:        ClassifyRisk(gap),
		})
	}

	// Highest suitability first; among equal scores the tighter gap wins.
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Suitability != result[j].Suitability {
			return result[i].Suitability > result[j].Suitability
		}
		return result[i].RankGap < result[j].RankGap
	})

	if len(result) > limit {
		result = result[:limit]
	}
	for i := range result {
		result[i].Position = i + 1
	}

	return result, nil
}
