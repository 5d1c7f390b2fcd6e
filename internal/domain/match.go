package domain

// MatchBreakdown son los sub-scores etiquetados de un par, todos en [0,1]
// salvo Score que ya esta escalado a [0,100] con el descuento aplicado.
type MatchBreakdown struct {
	Score           float64 `json:"score"`
	VisionAlignment float64 `json:"vision_alignment"`
	Complementarity float64 `json:"complementarity"`
	TrustIndex      float64 `json:"trust_index"`
	PsychFit        float64 `json:"psych_fit"`
}

// MatchResult es la salida del solver y del feed de descubrimiento.
type MatchResult struct {
	CandidateID     string         `json:"candidate_id"`
	ProjectID       string         `json:"project_id,omitempty"`
	Score           float64        `json:"score"`
	Breakdown       MatchBreakdown `json:"breakdown"`
	BoostMultiplier float64        `json:"boost_multiplier,omitempty"`
}

// ServiceTrustSignal es una observacion de confianza de un servicio
// independiente. Efimera, provista por request; el agregador no guarda estado.
type ServiceTrustSignal struct {
	Service     string  `json:"service"`
	Score       float64 `json:"score"`
	Mean        float64 `json:"mean"`
	StdDev      float64 `json:"std_dev"`
	Reliability float64 `json:"reliability"`
}

// BanditCandidate es un candidato entrando al pool de exploracion.
type BanditCandidate struct {
	CandidateID string `json:"candidate_id"`
}

// BanditPosterior son los parametros Beta(alpha, beta) por usuario+candidato.
// Las actualizaciones por accept/reject son responsabilidad del repositorio.
type BanditPosterior struct {
	Alpha float64 `json:"alpha"`
	Beta  float64 `json:"beta"`
}

// BanditSample es un draw de Thompson para un candidato.
type BanditSample struct {
	CandidateID string  `json:"candidate_id"`
	Theta       float64 `json:"theta"`
}

// BanditRanking es el resultado de una pasada de exploracion, ordenado por
// theta muestreado descendente.
type BanditRanking struct {
	AllSamples []BanditSample `json:"all_samples"`
}

// CategoryProfile empareja una categoria con su embedding medio y su peso de
// importancia. Solo lo usa el camino de cold-start por contenido.
type CategoryProfile struct {
	Category      string    `json:"category"`
	MeanEmbedding []float64 `json:"mean_embedding"`
	Weight        float64   `json:"weight"`
}

// ContentRecord es un registro de actividad del usuario etiquetado por categoria.
type ContentRecord struct {
	Category string `json:"category"`
}

// TeamMember describe una entrada de composicion de equipo (rol + tags).
type TeamMember struct {
	Role string   `json:"role"`
	Tags []string `json:"tags"`
}

// SuccessPattern es una combinacion rol/tags historicamente exitosa para un
// dominio. Tabla provista como input de solo lectura por el repositorio.
type SuccessPattern struct {
	DomainTag string   `json:"domain_tag"`
	Role      string   `json:"role"`
	Tags      []string `json:"tags"`
}

// BoostResult es la salida del booster de patrones de exito.
type BoostResult struct {
	BaseScore            float64 `json:"base_score"`
	BoostedScore         float64 `json:"boosted_score"`
	MatchingPatternCount int     `json:"matching_pattern_count"`
	BoostMultiplier      float64 `json:"boost_multiplier"`
}
