package service

import (
	"fmt"
	"math/rand"

	"dream-match/internal/domain"
)

// SyntheticDNAGenerator produce perfiles DreamDNA sinteticos reproducibles
// para fixtures, tests y el harness offline. El motor nunca genera su propio
// input en caminos de produccion: este generador vive afuera de los scorers.
type SyntheticDNAGenerator struct {
	rng  *rand.Rand
	dims int
}

// NewSyntheticDNAGenerator crea un generador con seed explicito.
func NewSyntheticDNAGenerator(seed int64) *SyntheticDNAGenerator {
	return &SyntheticDNAGenerator{
		rng:  rand.New(rand.NewSource(seed)),
		dims: 16,
	}
}

var syntheticSkillNames = []string{
	"backend", "frontend", "design", "marketing", "sales",
	"data", "mobile", "devops", "product", "finance",
}

var syntheticValues = []string{
	"autonomy", "craft", "impact", "community", "growth", "transparency",
}

// GenerateDNA produce un DreamDNA completo y ya normalizado.
func (g *SyntheticDNAGenerator) GenerateDNA(userID string) domain.DreamDNA {
	vision := make([]float64, g.dims)
	for i := range vision {
		vision[i] = g.rng.Float64()
	}

	skillVector := make([]float64, len(syntheticSkillNames))
	hard := make([]domain.SkillLevel, 0, 3)
	for _, idx := range g.rng.Perm(len(syntheticSkillNames))[:3] {
		prof := 0.3 + 0.7*g.rng.Float64()
		skillVector[idx] = prof
		hard = append(hard, domain.SkillLevel{Name: syntheticSkillNames[idx], Proficiency: prof})
	}

	values := make([]string, 0, 2)
	for _, idx := range g.rng.Perm(len(syntheticValues))[:2] {
		values = append(values, syntheticValues[idx])
	}

	dna := domain.DreamDNA{
		UserID: userID,
		Identity: domain.IdentityFacet{
			VisionEmbedding: vision,
			CoreValues:      values,
			Emotion: domain.EmotionTone{
				Valence: g.rng.Float64(),
				Arousal: g.rng.Float64(),
			},
		},
		Capability: domain.CapabilityFacet{
			HardSkills:  hard,
			SoftSkills:  []domain.SkillLevel{{Name: "communication", Proficiency: g.rng.Float64()}},
			SkillVector: skillVector,
		},
		Execution: domain.ExecutionFacet{
			Grit:             g.rng.Float64(),
			CompletionRate:   g.rng.Float64(),
			SalesPerformance: g.rng.Float64(),
			HasShippedMVP:    g.rng.Float64() > 0.5,
		},
		Trust: domain.TrustFacet{
			OfflineReputation:  g.rng.Float64(),
			Responsiveness:     g.rng.Float64(),
			DeliveryCompliance: g.rng.Float64(),
			Composite:          g.rng.Float64(),
		},
	}
	dna.Normalize()
	return dna
}

// GenerateProject produce un proyecto con huecos de skills reales (required
// alto donde el equipo actual esta bajo).
func (g *SyntheticDNAGenerator) GenerateProject(id string, stage domain.ProjectStage) domain.MatchProject {
	required := make([]float64, len(syntheticSkillNames))
	team := make([]float64, len(syntheticSkillNames))
	for i := range required {
		required[i] = g.rng.Float64()
		team[i] = required[i] * g.rng.Float64()
	}
	return domain.MatchProject{
		ID:             id,
		OwnerDNA:       g.GenerateDNA(fmt.Sprintf("owner-%s", id)),
		RequiredSkills: required,
		TeamSkills:     team,
		Stage:          stage,
		DataPoints:     5 + g.rng.Intn(60),
	}
}

// GenerateCandidate produce un candidato con psych-fit contra los proyectos dados.
func (g *SyntheticDNAGenerator) GenerateCandidate(id string, projectIDs ...string) domain.MatchCandidate {
	fit := make(map[string]float64, len(projectIDs))
	for _, pid := range projectIDs {
		fit[pid] = g.rng.Float64()
	}
	return domain.MatchCandidate{
		ID:       id,
		DNA:      g.GenerateDNA(id),
		PsychFit: fit,
	}
}
