package domain

// Profile es la forma simple de perfil usada por el scorer de compatibilidad.
// Inmutable por comparacion; el caller es dueño de los datos.
type Profile struct {
	ID             string   `json:"id"`
	DreamStatement string   `json:"dream_statement"`
	SkillsOffered  []string `json:"skills_offered"`
	SkillsNeeded   []string `json:"skills_needed"`
	Interests      []string `json:"interests"`
}

// CompatibilityResult es la salida del scorer simple. Todos los scores son
// porcentajes enteros en [0,100]; match_score ya incluye el descuento de confianza.
type CompatibilityResult struct {
	MatchScore          int      `json:"match_score"`
	DreamScore          int      `json:"dream_score"`
	SkillScore          int      `json:"skill_score"`
	ValueScore          int      `json:"value_score"`
	ComplementarySkills []string `json:"complementary_skills"`
	SharedInterests     []string `json:"shared_interests"`
}
