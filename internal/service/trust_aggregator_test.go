package service

import (
	"math"
	"testing"

	"dream-match/internal/domain"
)

func TestComputeCrossServiceTrust_Empty(t *testing.T) {
	agg := TrustAggregator{}
	if got := agg.ComputeCrossServiceTrust(nil); got != 0 {
		t.Fatalf("expected 0 for no signals, got %v", got)
	}
}

func TestComputeCrossServiceTrust_ReliabilityWeighting(t *testing.T) {
	agg := TrustAggregator{}

	// Señal alta muy confiable vs señal baja nada confiable: el composite
	// debe quedar del lado de la confiable.
	signals := []domain.ServiceTrustSignal{
		{Service: "marketplace", Score: 9, Mean: 5, StdDev: 2, Reliability: 1},
		{Service: "spam-prone", Score: 1, Mean: 5, StdDev: 2, Reliability: 0.01},
	}
	got := agg.ComputeCrossServiceTrust(signals)
	if got < 0.7 {
		t.Fatalf("expected composite dominated by reliable signal, got %v", got)
	}
}

func TestComputeCrossServiceTrust_ZeroReliabilityFallback(t *testing.T) {
	agg := TrustAggregator{}
	signals := []domain.ServiceTrustSignal{
		{Service: "a", Score: 8, Mean: 5, StdDev: 1, Reliability: 0},
		{Service: "b", Score: 2, Mean: 5, StdDev: 1, Reliability: 0},
	}
	got := agg.ComputeCrossServiceTrust(signals)
	// Media simple de los normalizados: uno sobre la media, otro bajo,
	// clipeados simetricamente alrededor de 0.5.
	if math.Abs(got-0.5) > 1e-9 {
		t.Fatalf("expected unweighted mean fallback 0.5, got %v", got)
	}
}

func TestNormalizeSignal_ClipsAndCenters(t *testing.T) {
	// Outlier extremo queda clipeado en 1, no mas alla.
	high := normalizeSignal(domain.ServiceTrustSignal{Score: 1000, Mean: 0, StdDev: 1})
	if high != 1 {
		t.Fatalf("expected clip at 1, got %v", high)
	}
	low := normalizeSignal(domain.ServiceTrustSignal{Score: -1000, Mean: 0, StdDev: 1})
	if low != 0 {
		t.Fatalf("expected clip at 0, got %v", low)
	}
	center := normalizeSignal(domain.ServiceTrustSignal{Score: 5, Mean: 5, StdDev: 2})
	if math.Abs(center-0.5) > 1e-9 {
		t.Fatalf("expected score at its own mean to normalize to 0.5, got %v", center)
	}
	degenerate := normalizeSignal(domain.ServiceTrustSignal{Score: 5, Mean: 3, StdDev: 0})
	if degenerate != 0.5 {
		t.Fatalf("expected degenerate std to center the signal, got %v", degenerate)
	}
}

func TestToTrustVector_IsPureReshape(t *testing.T) {
	agg := TrustAggregator{}
	vector := agg.ToTrustVector(1.7, domain.TrustFacet{
		OfflineReputation:  0.8,
		Responsiveness:     -0.5,
		DeliveryCompliance: 0.9,
	})
	if vector.Composite != 1 {
		t.Fatalf("expected composite clamped to 1, got %v", vector.Composite)
	}
	if vector.Responsiveness != 0 {
		t.Fatalf("expected responsiveness clamped to 0, got %v", vector.Responsiveness)
	}
	if vector.OfflineReputation != 0.8 || vector.DeliveryCompliance != 0.9 {
		t.Fatalf("expected in-range extras untouched, got %+v", vector)
	}
}
