package predictor

import "math"

const (
	// DefaultMaxGap is the rank gap at which the suitability score bottoms
	// out. Gaps beyond this are all equally unattractive.
	DefaultMaxGap = 60000

	// RealisticGapCeiling drops colleges vastly easier than the user's rank
	// from recommendations.
	RealisticGapCeiling = 30000

	ambitiousGapMax = 2000
	moderateGapMax  = 10000
)

// Risk labels how comfortably a rank clears a cutoff.
type Risk string

const (
	RiskAmbitious Risk = "Ambitious"
	RiskModerate  Risk = "Moderate"
	RiskSafe      Risk = "Safe"
)

// Suitability converts the gap between the user's rank and a historical
// cutoff into a bounded [5,95] percentage. A negative gap (cutoff better than
// the user's rank) returns exactly 0, a sentinel meaning "does not clear".
func Suitability(userRank, cutoffRank int) float64 {
	return SuitabilityWithMaxGap(userRank, cutoffRank, DefaultMaxGap)
}

// SuitabilityWithMaxGap is Suitability with a configurable saturation gap.
// Closer cutoffs score higher: a tight match is the most achievable one.
func SuitabilityWithMaxGap(userRank, cutoffRank, maxGap int) float64 {
	gap := cutoffRank - userRank
	if gap < 0 {
		return 0.0
	}

	ratio := math.Min(float64(gap)/float64(maxGap), 1)
	score := 85*(1-ratio) + 15

	return round2(math.Min(math.Max(score, 5), 95))
}

// ClassifyRisk labels a non-negative rank gap. Callers clamp negative gaps to
// zero before classifying.
func ClassifyRisk(gap int) Risk {
	switch {
	case gap <= ambitiousGapMax:
		return RiskAmbitious
	case gap <= moderateGapMax:
		return RiskModerate
	default:
		return RiskSafe
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
