package domain

// ProjectStage es contexto de scoring, no una maquina de estados que el motor maneje.
type ProjectStage string

const (
	StageIdeation          ProjectStage = "IDEATION"
	StageTeamFormation     ProjectStage = "TEAM_FORMATION"
	StageActiveDevelopment ProjectStage = "ACTIVE_DEVELOPMENT"
	StageLaunch            ProjectStage = "LAUNCH"
	StageComplete          ProjectStage = "COMPLETE"
)

// MatchProject es un proyecto que busca formar equipo.
// DataPoints alimenta el descuento de confianza del scorer.
type MatchProject struct {
	ID             string       `json:"id"`
	OwnerDNA       DreamDNA     `json:"owner_dna"`
	RequiredSkills []float64    `json:"required_skills"`
	TeamSkills     []float64    `json:"team_skills"`
	Stage          ProjectStage `json:"stage"`
	DataPoints     int          `json:"data_points"`
}

// MatchCandidate es un candidato a entrar en un proyecto. PsychFit mapea
// project id -> probabilidad de compatibilidad psicologica en [0,1],
// provista externamente, nunca re-derivada aca.
type MatchCandidate struct {
	ID       string             `json:"id"`
	DNA      DreamDNA           `json:"dna"`
	PsychFit map[string]float64 `json:"psych_fit,omitempty"`
}

// PsychFitFor devuelve el fit psicologico del candidato para un proyecto,
// con fallback neutral cuando no hay dato.
func (c MatchCandidate) PsychFitFor(projectID string) float64 {
	if v, ok := c.PsychFit[projectID]; ok {
		return Clamp01(v)
	}
	return 0.5
}
