package service

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"

	"dream-match/internal/domain"
)

func strategyRank(s Strategy) int {
	switch s {
	case StrategyContentInit:
		return 0
	case StrategyBanditExplore:
		return 1
	case StrategyCollaborativeFiltering:
		return 2
	case StrategyCrossDomainTransfer:
		return 3
	}
	return -1
}

func TestRecommendationStrategy_Monotonic(t *testing.T) {
	selector := NewColdStartSelector(nil)
	prev := -1
	for n := 0; n <= 1000; n++ {
		rank := strategyRank(selector.RecommendationStrategy(n))
		if rank < 0 {
			t.Fatalf("unknown strategy at n=%d", n)
		}
		if rank < prev {
			t.Fatalf("strategy regressed to a less informed regime at n=%d", n)
		}
		prev = rank
	}
	if prev != strategyRank(StrategyCrossDomainTransfer) {
		t.Fatalf("expected cross-domain transfer for heavy users, got rank %d", prev)
	}
}

type fakeInteractionReader struct {
	counts map[string]int
	err    error
}

func (f *fakeInteractionReader) InteractionCount(_ context.Context, userID string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.counts[userID], nil
}

func TestStrategyForUser(t *testing.T) {
	selector := NewColdStartSelector(&fakeInteractionReader{counts: map[string]int{"u1": 0, "u2": 20, "u3": 9999}})

	got, err := selector.StrategyForUser(context.Background(), "u1")
	if err != nil || got != StrategyContentInit {
		t.Fatalf("expected content init for new user, got %v,%v", got, err)
	}
	got, err = selector.StrategyForUser(context.Background(), "u2")
	if err != nil || got != StrategyBanditExplore {
		t.Fatalf("expected bandit exploration, got %v,%v", got, err)
	}
	got, err = selector.StrategyForUser(context.Background(), "u3")
	if err != nil || got != StrategyCrossDomainTransfer {
		t.Fatalf("expected cross-domain transfer, got %v,%v", got, err)
	}

	failing := NewColdStartSelector(&fakeInteractionReader{err: errors.New("storage down")})
	got, err = failing.StrategyForUser(context.Background(), "u1")
	if err == nil || got != StrategyContentInit {
		t.Fatalf("expected content-init fallback with error, got %v,%v", got, err)
	}
}

func TestInitializeFromContent_EmptyMeansNoPersonalization(t *testing.T) {
	selector := NewColdStartSelector(nil)
	profiles := []domain.CategoryProfile{{Category: "art", MeanEmbedding: []float64{1, 0}, Weight: 1}}

	if got := selector.InitializeFromContent(nil, profiles); len(got) != 0 {
		t.Fatalf("expected empty vector without records, got %v", got)
	}
	if got := selector.InitializeFromContent([]domain.ContentRecord{{Category: "art"}}, nil); len(got) != 0 {
		t.Fatalf("expected empty vector without category profiles, got %v", got)
	}
}

func TestInitializeFromContent_WeightedCentroid(t *testing.T) {
	selector := NewColdStartSelector(nil)
	records := []domain.ContentRecord{
		{Category: "art"}, {Category: "art"}, {Category: "art"},
		{Category: "tech"},
	}
	profiles := []domain.CategoryProfile{
		{Category: "art", MeanEmbedding: []float64{1, 0}, Weight: 1},
		{Category: "tech", MeanEmbedding: []float64{0, 1}, Weight: 1},
		{Category: "unused", MeanEmbedding: []float64{100, 100}, Weight: 5},
	}

	centroid := selector.InitializeFromContent(records, profiles)
	if len(centroid) != 2 {
		t.Fatalf("unexpected centroid dims: %v", centroid)
	}
	// 3 registros de art contra 1 de tech con igual importancia: 0.75/0.25.
	if math.Abs(centroid[0]-0.75) > 1e-9 || math.Abs(centroid[1]-0.25) > 1e-9 {
		t.Fatalf("unexpected centroid: %v", centroid)
	}
}

func TestExploreBandit_RanksBySampledTheta(t *testing.T) {
	selector := NewColdStartSelector(nil)
	rng := rand.New(rand.NewSource(99))

	candidates := []domain.BanditCandidate{
		{CandidateID: "a"}, {CandidateID: "b"}, {CandidateID: "c"},
	}
	posteriors := map[string]domain.BanditPosterior{
		"a": {Alpha: 50, Beta: 2},
		"b": {Alpha: 2, Beta: 50},
	}

	ranking := selector.ExploreBandit(candidates, posteriors, rng)
	if len(ranking.AllSamples) != 3 {
		t.Fatalf("expected one sample per candidate, got %d", len(ranking.AllSamples))
	}
	for i := 1; i < len(ranking.AllSamples); i++ {
		if ranking.AllSamples[i].Theta > ranking.AllSamples[i-1].Theta {
			t.Fatalf("samples not sorted descending: %+v", ranking.AllSamples)
		}
	}
	for _, s := range ranking.AllSamples {
		if s.Theta < 0 || s.Theta > 1 {
			t.Fatalf("theta out of range: %+v", s)
		}
	}
}

func TestExploreBandit_ConvergesToPosteriorMean(t *testing.T) {
	selector := NewColdStartSelector(nil)
	rng := rand.New(rand.NewSource(12345))

	candidates := []domain.BanditCandidate{{CandidateID: "x"}}
	posteriors := map[string]domain.BanditPosterior{
		"x": {Alpha: 8, Beta: 2},
	}

	const draws = 4000
	sum := 0.0
	for i := 0; i < draws; i++ {
		ranking := selector.ExploreBandit(candidates, posteriors, rng)
		sum += ranking.AllSamples[0].Theta
	}
	mean := sum / draws

	// Media posterior de Beta(8,2) es 0.8; tolerancia estadistica holgada.
	if math.Abs(mean-0.8) > 0.02 {
		t.Fatalf("empirical mean %v too far from posterior mean 0.8", mean)
	}
}

func TestExploreBandit_UniformPriorForUnknown(t *testing.T) {
	selector := NewColdStartSelector(nil)
	rng := rand.New(rand.NewSource(7))

	candidates := []domain.BanditCandidate{{CandidateID: "new"}}

	const draws = 4000
	sum := 0.0
	for i := 0; i < draws; i++ {
		ranking := selector.ExploreBandit(candidates, map[string]domain.BanditPosterior{}, rng)
		sum += ranking.AllSamples[0].Theta
	}
	mean := sum / draws
	if math.Abs(mean-0.5) > 0.03 {
		t.Fatalf("expected uniform prior mean near 0.5, got %v", mean)
	}
}
