package service

import (
	"math"

	"dream-match/internal/domain"
)

// DNAScorer calcula el score de match entre dos DreamDNA en contexto de proyecto.
type DNAScorer struct{}

// matchWeights pondera los cuatro sub-scores. Cada fila suma 1.
type matchWeights struct {
	Vision float64
	Comp   float64
	Trust  float64
	Psych  float64
}

// defaultWeights aplica cuando el stage no tiene fila propia.
var defaultWeights = matchWeights{Vision: 0.35, Comp: 0.30, Trust: 0.20, Psych: 0.15}

// stageWeights modula el peso por etapa del proyecto: ideacion premia vision,
// desarrollo activo premia complementariedad, lanzamiento premia confianza.
var stageWeights = map[domain.ProjectStage]matchWeights{
	domain.StageIdeation:          {Vision: 0.45, Comp: 0.20, Trust: 0.20, Psych: 0.15},
	domain.StageTeamFormation:     {Vision: 0.35, Comp: 0.30, Trust: 0.20, Psych: 0.15},
	domain.StageActiveDevelopment: {Vision: 0.20, Comp: 0.45, Trust: 0.20, Psych: 0.15},
	domain.StageLaunch:            {Vision: 0.20, Comp: 0.30, Trust: 0.35, Psych: 0.15},
	domain.StageComplete:          {Vision: 0.35, Comp: 0.30, Trust: 0.20, Psych: 0.15},
}

// Pesos chicos fijos para que el historial de ejecucion compense parcialmente
// una confianza observada baja.
const (
	trustCompositeWeight  = 0.80
	trustCompletionWeight = 0.12
	trustGritWeight       = 0.08
)

// ComputeMatchScore calcula score y breakdown para (a=dueño, b=candidato).
// requiredSkills/teamSkills describen el proyecto; psychFit viene del caller.
func (DNAScorer) ComputeMatchScore(
	a, b domain.DreamDNA,
	requiredSkills, teamSkills []float64,
	stage domain.ProjectStage,
	psychFit float64,
	dataPoints int,
) domain.MatchBreakdown {
	vision := CosineSimilarity(a.Identity.VisionEmbedding, b.Identity.VisionEmbedding)
	comp := gapComplementarity(b.Capability.SkillVector, requiredSkills, teamSkills)
	trust := trustIndex(b)
	psych := domain.Clamp01(psychFit)

	w, ok := stageWeights[stage]
	if !ok {
		w = defaultWeights
	}
	weighted := w.Vision*vision + w.Comp*comp + w.Trust*trust + w.Psych*psych

	return domain.MatchBreakdown{
		Score:           weighted * ConfidenceDiscount(dataPoints) * 100,
		VisionAlignment: vision,
		Complementarity: comp,
		TrustIndex:      trust,
		PsychFit:        psych,
	}
}

// trustIndex mezcla el composite cross-service con ejecucion.
func trustIndex(dna domain.DreamDNA) float64 {
	blended := trustCompositeWeight*domain.Clamp01(dna.Trust.Composite) +
		trustCompletionWeight*domain.Clamp01(dna.Execution.CompletionRate) +
		trustGritWeight*domain.Clamp01(dna.Execution.Grit)
	return domain.Clamp01(blended)
}

// gapComplementarity premia llenar huecos (required alto, team bajo) en vez de
// duplicar fortalezas existentes. Dot product ponderado por gap, normalizado a
// [0,1]. Sin huecos no hay nada que llenar: devuelve 0.
func gapComplementarity(candidate, required, team []float64) float64 {
	n := len(required)
	if len(team) > n {
		n = len(team)
	}
	if len(candidate) > n {
		n = len(candidate)
	}
	if n == 0 {
		return 0
	}

	var gapSum, score float64
	for i := 0; i < n; i++ {
		gap := domain.Clamp01(at(required, i) - at(team, i))
		gapSum += gap
		score += gap * domain.Clamp01(at(candidate, i))
	}
	if gapSum == 0 {
		return 0
	}
	return domain.Clamp01(score / gapSum)
}

// at lee la dimension i tratando vectores cortos como rellenados con cero.
func at(v []float64, i int) float64 {
	if i < 0 || i >= len(v) {
		return 0
	}
	return v[i]
}

// CosineSimilarity calcula similitud coseno con pad implicito a cero para
// largos dispares. Vector cero da 0, no NaN. Resultado clampeado a [0,1].
func CosineSimilarity(a, b []float64) float64 {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	if n == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		x, y := at(a, i), at(b, i)
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	cos := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if cos != cos || cos < 0 {
		return 0
	}
	if cos > 1 {
		return 1
	}
	return cos
}
