package predictor

import "testing"

func TestSuitabilityReturnsZeroWhenCutoffNotCleared(t *testing.T) {
	if got := Suitability(30000, 25000); got != 0.0 {
		t.Fatalf("expected 0.0 sentinel for uncleared cutoff, got %v", got)
	}
	if got := Suitability(2, 1); got != 0.0 {
		t.Fatalf("expected 0.0 sentinel for gap of -1, got %v", got)
	}
}

func TestSuitabilityStaysWithinBounds(t *testing.T) {
	cases := []struct {
		userRank, cutoffRank int
	}{
		{1, 1},
		{20000, 20000},
		{20000, 25000},
		{1, 60001},
		{1, 500000},
		{100, 30100},
	}

	for _, tc := range cases {
		score := Suitability(tc.userRank, tc.cutoffRank)
		if score < 5 || score > 95 {
			t.Fatalf("Suitability(%d, %d) = %v, outside [5,95]", tc.userRank, tc.cutoffRank, score)
		}
	}
}

func TestSuitabilityWorkedExample(t *testing.T) {
	// gap 5000, ratio 5000/60000 -> 85*(1-0.0833..)+15 = 92.92
	if got := Suitability(20000, 25000); got != 92.92 {
		t.Fatalf("expected 92.92, got %v", got)
	}
}

func TestSuitabilityZeroGapScoresHighest(t *testing.T) {
	if got := Suitability(12345, 12345); got != 95 {
		t.Fatalf("expected exact-cutoff match to score 95, got %v", got)
	}
}

func TestSuitabilityIsMonotonicInGap(t *testing.T) {
	userRank := 1000
	prev := 96.0
	for gap := 0; gap <= 70000; gap += 500 {
		score := Suitability(userRank, userRank+gap)
		if score > prev {
			t.Fatalf("score increased with gap: gap=%d score=%v prev=%v", gap, score, prev)
		}
		prev = score
	}
}

func TestSuitabilitySaturatesAtMaxGap(t *testing.T) {
	at := Suitability(1, 1+DefaultMaxGap)
	beyond := Suitability(1, 1+DefaultMaxGap+25000)
	if at != beyond {
		t.Fatalf("expected saturation beyond max gap, got %v then %v", at, beyond)
	}
	if at != 15 {
		t.Fatalf("expected floor of 15 at max gap, got %v", at)
	}
}

func TestClassifyRiskThresholds(t *testing.T) {
	cases := []struct {
		gap  int
		want Risk
	}{
		{0, RiskAmbitious},
		{2000, RiskAmbitious},
		{2001, RiskModerate},
		{10000, RiskModerate},
		{10001, RiskSafe},
		{30000, RiskSafe},
	}

	for _, tc := range cases {
		if got := ClassifyRisk(tc.gap); got != tc.want {
			t.Fatalf("ClassifyRisk(%d) = %s, want %s", tc.gap, got, tc.want)
		}
	}
}
