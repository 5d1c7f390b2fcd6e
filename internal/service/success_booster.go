package service

import (
	"strings"

	"dream-match/internal/domain"
)

// SuccessBooster empuja un score base usando composiciones de equipo
// historicamente exitosas. Las tablas de patrones llegan como input de solo
// lectura; el booster no guarda estado.
type SuccessBooster struct{}

// Cap y paso del multiplicador: con pocas coincidencias el boost no puede
// inflar el score sin limite. Maximo multiplicador: 1.25.
const (
	boostPatternCap = 5
	boostStep       = 0.05
)

// ApplySuccessPattern cuenta cuantas entradas de la composicion actual calzan
// con un patron exitoso conocido del dominio y aplica un multiplicador
// creciente y saturante sobre ese conteo. boostedScore queda en [0,100].
func (SuccessBooster) ApplySuccessPattern(
	baseScore float64,
	domainTag string,
	team []domain.TeamMember,
	patterns []domain.SuccessPattern,
) domain.BoostResult {
	if baseScore < 0 {
		baseScore = 0
	}
	if baseScore > 100 {
		baseScore = 100
	}

	tag := normalizeTag(domainTag)
	count := 0
	for _, member := range team {
		if memberMatchesAny(member, tag, patterns) {
			count++
		}
	}

	multiplier := boostMultiplier(count)
	boosted := baseScore * multiplier
	if boosted > 100 {
		boosted = 100
	}

	return domain.BoostResult{
		BaseScore:            baseScore,
		BoostedScore:         boosted,
		MatchingPatternCount: count,
		BoostMultiplier:      multiplier,
	}
}

// boostMultiplier es no-decreciente en count y acotado por el cap documentado.
func boostMultiplier(count int) float64 {
	if count < 0 {
		count = 0
	}
	if count > boostPatternCap {
		count = boostPatternCap
	}
	return 1 + float64(count)*boostStep
}

// memberMatchesAny busca un patron del dominio que calce rol y al menos un tag.
// Un patron sin tags calza por rol solo.
func memberMatchesAny(member domain.TeamMember, tag string, patterns []domain.SuccessPattern) bool {
	for _, p := range patterns {
		if normalizeTag(p.DomainTag) != tag {
			continue
		}
		if !strings.EqualFold(strings.TrimSpace(p.Role), strings.TrimSpace(member.Role)) {
			continue
		}
		if len(p.Tags) == 0 {
			return true
		}
		if anyTagOverlap(member.Tags, p.Tags) {
			return true
		}
	}
	return false
}

func anyTagOverlap(a, b []string) bool {
	set := make(map[string]struct{}, len(a))
	for _, t := range a {
		set[normalizeTag(t)] = struct{}{}
	}
	for _, t := range b {
		if _, ok := set[normalizeTag(t)]; ok {
			return true
		}
	}
	return false
}

func normalizeTag(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}
