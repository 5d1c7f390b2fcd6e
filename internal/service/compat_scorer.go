package service

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"dream-match/internal/domain"
)

// CompatibilityScorer calcula compatibilidad entre dos perfiles simples.
// Funcion pura y total: inputs vacios degradan a contribucion 0, nunca panic.
type CompatibilityScorer struct{}

// Pesos de la combinacion: dream 40%, skills 35%, valores 25%.
const (
	dreamWeight = 0.40
	skillWeight = 0.35
	valueWeight = 0.25
)

// confidenceSaturation controla que tan rapido el descuento de confianza se
// acerca a 1 a medida que acumula evidencia.
const confidenceSaturation = 30.0

// DefaultDataPoints es el valor que usan los callers cuando no observaron nada mejor.
const DefaultDataPoints = 15

var nonWordSplitter = regexp.MustCompile(`\W+`)

var dreamStopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "with": {}, "that": {}, "this": {},
	"from": {}, "into": {}, "want": {}, "will": {}, "can": {}, "have": {},
	"are": {}, "was": {}, "but": {}, "not": {}, "you": {}, "your": {},
	"our": {}, "their": {}, "them": {}, "they": {}, "about": {},
}

// ConfidenceDiscount devuelve 1 - e^(-dataPoints/30): 0 sin evidencia,
// estrictamente creciente, asintotico a 1. Nunca excede 1 ni es negativo.
func ConfidenceDiscount(dataPoints int) float64 {
	if dataPoints <= 0 {
		return 0
	}
	return 1 - math.Exp(-float64(dataPoints)/confidenceSaturation)
}

// ScoreProfiles calcula el score de compatibilidad entre a y b.
func (CompatibilityScorer) ScoreProfiles(a, b domain.Profile, dataPoints int) domain.CompatibilityResult {
	dream := jaccard(tokenizeDream(a.DreamStatement), tokenizeDream(b.DreamStatement))
	skill := skillComplementarity(a, b)
	value := jaccard(toSet(a.Interests), toSet(b.Interests))

	weighted := dreamWeight*dream + skillWeight*skill + valueWeight*value
	discounted := weighted * ConfidenceDiscount(dataPoints)

	return domain.CompatibilityResult{
		MatchScore:          toPercent(discounted),
		DreamScore:          toPercent(dream),
		SkillScore:          toPercent(skill),
		ValueScore:          toPercent(value),
		ComplementarySkills: intersectLists(b.SkillsOffered, a.SkillsNeeded),
		SharedInterests:     intersectLists(a.Interests, b.Interests),
	}
}

// skillComplementarity mide el fill ratio bidireccional: que fraccion de lo que
// A necesita ofrece B, y viceversa. Media geometrica cuando ambos lados aportan,
// media aritmetica si uno es cero, asi la complementariedad unilateral no se
// anula pero tampoco se sobre-premia.
func skillComplementarity(a, b domain.Profile) float64 {
	aFilled := fillRatio(a.SkillsNeeded, b.SkillsOffered)
	bFilled := fillRatio(b.SkillsNeeded, a.SkillsOffered)
	if aFilled > 0 && bFilled > 0 {
		return math.Sqrt(aFilled * bFilled)
	}
	return (aFilled + bFilled) / 2
}

// fillRatio es la fraccion de needed presente en offered. Listas vacias dan 0.
func fillRatio(needed, offered []string) float64 {
	neededSet := toSet(needed)
	if len(neededSet) == 0 {
		return 0
	}
	offeredSet := toSet(offered)
	covered := 0
	for n := range neededSet {
		if _, ok := offeredSet[n]; ok {
			covered++
		}
	}
	return float64(covered) / float64(len(neededSet))
}

// tokenizeDream normaliza el enunciado: minusculas, split en no-palabra,
// descarta stop words y tokens de largo <= 2.
func tokenizeDream(statement string) map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, tok := range nonWordSplitter.Split(strings.ToLower(statement), -1) {
		if len(tok) <= 2 {
			continue
		}
		if _, stop := dreamStopWords[tok]; stop {
			continue
		}
		tokens[tok] = struct{}{}
	}
	return tokens
}

// jaccard es interseccion sobre union. Union vacia da 0.
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	inter := 0
	for k := range a {
		if _, ok := b[k]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		it = strings.ToLower(strings.TrimSpace(it))
		if it == "" {
			continue
		}
		set[it] = struct{}{}
	}
	return set
}

func toSortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// intersectLists devuelve la interseccion normalizada y ordenada, para salida estable.
func intersectLists(a, b []string) []string {
	bSet := toSet(b)
	out := make([]string, 0)
	for _, k := range toSortedKeys(toSet(a)) {
		if _, ok := bSet[k]; ok {
			out = append(out, k)
		}
	}
	return out
}

func toPercent(v float64) int {
	if v != v || v <= 0 {
		return 0
	}
	if v >= 1 {
		return 100
	}
	return int(math.Round(v * 100))
}
