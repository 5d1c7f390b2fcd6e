package domain

// DreamDNA es el perfil estructurado multi-faceta usado por el scorer rico.
// Todos los campos escalares tipo rate/score viven en [0,1]; Normalize los
// clampea antes de entrar a cualquier funcion de scoring.
type DreamDNA struct {
	UserID     string          `json:"user_id"`
	Identity   IdentityFacet   `json:"identity"`
	Capability CapabilityFacet `json:"capability"`
	Execution  ExecutionFacet  `json:"execution"`
	Trust      TrustFacet      `json:"trust"`
}

// IdentityFacet agrupa vision, valores y tono emocional.
type IdentityFacet struct {
	VisionEmbedding []float64   `json:"vision_embedding"`
	CoreValues      []string    `json:"core_values"`
	Emotion         EmotionTone `json:"emotion"`
}

// EmotionTone es el par (valence, arousal) en [0,1].
type EmotionTone struct {
	Valence float64 `json:"valence"`
	Arousal float64 `json:"arousal"`
}

// SkillLevel es un skill con su nivel de dominio en [0,1].
type SkillLevel struct {
	Name        string  `json:"name"`
	Proficiency float64 `json:"proficiency"`
}

// CapabilityFacet agrupa skills duros/blandos y el vector de skills alineado
// al ordenamiento compartido de dimensiones.
type CapabilityFacet struct {
	HardSkills  []SkillLevel `json:"hard_skills"`
	SoftSkills  []SkillLevel `json:"soft_skills"`
	SkillVector []float64    `json:"skill_vector"`
}

// ExecutionFacet agrupa historial de ejecucion.
type ExecutionFacet struct {
	Grit             float64 `json:"grit"`
	CompletionRate   float64 `json:"completion_rate"`
	SalesPerformance float64 `json:"sales_performance"`
	HasShippedMVP    bool    `json:"has_shipped_mvp"`
}

// TrustFacet agrupa señales de confianza. Composite lo escribe unicamente el
// agregador cross-service, nunca se calcula localmente.
type TrustFacet struct {
	OfflineReputation  float64 `json:"offline_reputation"`
	Responsiveness     float64 `json:"responsiveness"`
	DeliveryCompliance float64 `json:"delivery_compliance"`
	Composite          float64 `json:"composite"`
}

// Clamp01 acota un escalar al rango [0,1]. NaN colapsa a 0.
func Clamp01(v float64) float64 {
	if v != v || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Normalize clampea todos los escalares del DNA en el borde del modelo de datos.
// Las funciones de scoring asumen input clampeado pero re-clampean en punto de
// uso como segunda linea de defensa.
func (d *DreamDNA) Normalize() {
	d.Identity.Emotion.Valence = Clamp01(d.Identity.Emotion.Valence)
	d.Identity.Emotion.Arousal = Clamp01(d.Identity.Emotion.Arousal)
	for i := range d.Capability.HardSkills {
		d.Capability.HardSkills[i].Proficiency = Clamp01(d.Capability.HardSkills[i].Proficiency)
	}
	for i := range d.Capability.SoftSkills {
		d.Capability.SoftSkills[i].Proficiency = Clamp01(d.Capability.SoftSkills[i].Proficiency)
	}
	for i := range d.Capability.SkillVector {
		d.Capability.SkillVector[i] = Clamp01(d.Capability.SkillVector[i])
	}
	d.Execution.Grit = Clamp01(d.Execution.Grit)
	d.Execution.CompletionRate = Clamp01(d.Execution.CompletionRate)
	d.Execution.SalesPerformance = Clamp01(d.Execution.SalesPerformance)
	d.Trust.OfflineReputation = Clamp01(d.Trust.OfflineReputation)
	d.Trust.Responsiveness = Clamp01(d.Trust.Responsiveness)
	d.Trust.DeliveryCompliance = Clamp01(d.Trust.DeliveryCompliance)
	d.Trust.Composite = Clamp01(d.Trust.Composite)
}
