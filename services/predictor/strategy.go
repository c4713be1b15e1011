package predictor

import "context"

// ProbabilityModel is an external collaborator that estimates the chance of
// admission for a given cutoff rank, as a percentage in [0,100].
type ProbabilityModel interface {
	Probability(ctx context.Context, cutoffRank int) (float64, error)
}

// ScoreStrategy computes the suitability score for one candidate row. The
// engine picks the strategy from configuration, so the deterministic formula
// and the model-backed estimate share one recommendation path.
type ScoreStrategy interface {
	Score(ctx context.Context, userRank, cutoffRank int) (float64, error)
}

// DeterministicGapScore is the default strategy: the bounded gap formula.
type DeterministicGapScore struct {
	// MaxGap overrides DefaultMaxGap when positive.
	MaxGap int
}

func (s DeterministicGapScore) Score(_ context.Context, userRank, cutoffRank int) (float64, error) {
	maxGap := s.MaxGap
	if maxGap <= 0 {
		maxGap = DefaultMaxGap
	}
	return SuitabilityWithMaxGap(userRank, cutoffRank, maxGap), nil
}

// ModelProbabilityScore delegates scoring to an external probability model.
// Rows the user does not clear still score 0 without consulting the model.
type ModelProbabilityScore struct {
	Model ProbabilityModel
}

func (s ModelProbabilityScore) Score(ctx context.Context, userRank, cutoffRank int) (float64, error) {
	if cutoffRank-userRank < 0 {
		return 0.0, nil
	}
	return s.Model.Probability(ctx, cutoffRank)
}
