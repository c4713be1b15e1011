package recommend

import (
	"strings"
	"testing"

	"github.com/saikumarp/eapcet-predictor/utils/cache"
)

func TestCacheKeyLivesUnderFlushedPrefix(t *testing.T) {
	key := cacheKey(RecommendationRequest{
		Rank: 20000, Category: "OC", Gender: "F", Region: "AU", District: "All", Limit: 10,
	})

	// Snapshot reloads delete RecommendationKeyPrefix+"*"; a key written
	// outside that namespace would survive a reload and serve stale rows.
	if !strings.HasPrefix(key, cache.RecommendationKeyPrefix) {
		t.Fatalf("cache key %q not under prefix %q", key, cache.RecommendationKeyPrefix)
	}
}

func TestCacheKeyVariesWithQueryProfile(t *testing.T) {
	base := RecommendationRequest{Rank: 20000, Category: "OC", Gender: "F", Region: "AU", District: "All", Limit: 10}

	variants := []RecommendationRequest{
		{Rank: 20001, Category: "OC", Gender: "F", Region: "AU", District: "All", Limit: 10},
		{Rank: 20000, Category: "BC_A", Gender: "F", Region: "AU", District: "All", Limit: 10},
		{Rank: 20000, Category: "OC", Gender: "M", Region: "AU", District: "All", Limit: 10},
		{Rank: 20000, Category: "OC", Gender: "F", Region: "SVU", District: "All", Limit: 10},
		{Rank: 20000, Category: "OC", Gender: "F", Region: "AU", District: "D1", Limit: 10},
		{Rank: 20000, Category: "OC", Gender: "F", Region: "AU", District: "All", Limit: 5},
	}

	baseKey := cacheKey(base)
	for _, v := range variants {
		if cacheKey(v) == baseKey {
			t.Errorf("distinct query %+v collides with base key %q", v, baseKey)
		}
	}
}
