package service

import (
	"testing"

	"dream-match/internal/domain"
)

func TestBoostMultiplier_SaturatesAtCap(t *testing.T) {
	prev := boostMultiplier(0)
	if prev != 1.0 {
		t.Fatalf("expected neutral multiplier for zero matches, got %f", prev)
	}
	for count := 1; count <= 10; count++ {
		m := boostMultiplier(count)
		if m < prev {
			t.Fatalf("multiplier decreased at count %d: %f -> %f", count, prev, m)
		}
		if m > 1.25 {
			t.Fatalf("multiplier exceeded cap at count %d: %f", count, m)
		}
		prev = m
	}
	if got := boostMultiplier(100); got != 1.25 {
		t.Fatalf("expected saturation at 1.25, got %f", got)
	}
	if got := boostMultiplier(-3); got != 1.0 {
		t.Fatalf("negative count must be neutral, got %f", got)
	}
}

func TestApplySuccessPattern_RoleAndTagMatching(t *testing.T) {
	var booster SuccessBooster
	patterns := []domain.SuccessPattern{
		{DomainTag: "fintech", Role: "backend", Tags: []string{"payments"}},
		{DomainTag: "fintech", Role: "designer"}, // sin tags: calza por rol
		{DomainTag: "gaming", Role: "backend", Tags: []string{"payments"}},
	}
	team := []domain.TeamMember{
		{Role: "Backend", Tags: []string{"Payments", "go"}},
		{Role: "designer", Tags: []string{"branding"}},
		{Role: "backend", Tags: []string{"ml"}}, // rol calza, tags no
		{Role: "sales"},
	}

	res := booster.ApplySuccessPattern(60, "FinTech", team, patterns)
	if res.MatchingPatternCount != 2 {
		t.Fatalf("expected 2 matching members, got %d", res.MatchingPatternCount)
	}
	if res.BoostMultiplier != 1.10 {
		t.Fatalf("expected multiplier 1.10, got %f", res.BoostMultiplier)
	}
	if res.BoostedScore != 66 {
		t.Fatalf("expected boosted score 66, got %f", res.BoostedScore)
	}
}

func TestApplySuccessPattern_OtherDomainNeverCounts(t *testing.T) {
	var booster SuccessBooster
	patterns := []domain.SuccessPattern{
		{DomainTag: "gaming", Role: "backend"},
	}
	team := []domain.TeamMember{{Role: "backend"}}

	res := booster.ApplySuccessPattern(50, "fintech", team, patterns)
	if res.MatchingPatternCount != 0 || res.BoostMultiplier != 1.0 {
		t.Fatalf("pattern from another domain must not boost: %+v", res)
	}
	if res.BoostedScore != res.BaseScore {
		t.Fatalf("expected unchanged score, got %+v", res)
	}
}

func TestApplySuccessPattern_ClampsToHundred(t *testing.T) {
	var booster SuccessBooster
	patterns := []domain.SuccessPattern{{DomainTag: "d", Role: "r"}}
	team := make([]domain.TeamMember, 6)
	for i := range team {
		team[i] = domain.TeamMember{Role: "r"}
	}

	res := booster.ApplySuccessPattern(95, "d", team, patterns)
	if res.BoostMultiplier != 1.25 {
		t.Fatalf("expected saturated multiplier, got %f", res.BoostMultiplier)
	}
	if res.BoostedScore != 100 {
		t.Fatalf("boosted score must clamp to 100, got %f", res.BoostedScore)
	}

	// Base fuera de rango tambien se corrige antes de aplicar.
	res = booster.ApplySuccessPattern(140, "d", nil, patterns)
	if res.BaseScore != 100 || res.BoostedScore != 100 {
		t.Fatalf("out-of-range base must clamp, got %+v", res)
	}
	res = booster.ApplySuccessPattern(-10, "d", nil, patterns)
	if res.BaseScore != 0 || res.BoostedScore != 0 {
		t.Fatalf("negative base must clamp to zero, got %+v", res)
	}
}
