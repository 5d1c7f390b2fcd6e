package service

import (
	"context"
	"math"
	"math/rand"
	"sort"

	"dream-match/internal/domain"
)

// Strategy es el regimen de scoring elegido segun cuanta historia tiene el usuario.
type Strategy string

const (
	StrategyContentInit            Strategy = "CONTENT_INIT"
	StrategyBanditExplore          Strategy = "BANDIT_EXPLORE"
	StrategyCollaborativeFiltering Strategy = "COLLABORATIVE_FILTERING"
	StrategyCrossDomainTransfer    Strategy = "CROSS_DOMAIN_TRANSFER"
)

// Cortes del escalador de estrategias. Tunables, no invariantes duros; el
// contrato que si debe sostenerse es la monotonia: mas interacciones nunca
// regresan a un regimen menos informado.
const (
	contentInitMax   = 5
	banditExploreMax = 50
	collaborativeMax = 500
)

// InteractionReader es el accessor read-through sobre historial persistido
// externamente. El motor lo trata como dependencia inyectada, no estado propio.
type InteractionReader interface {
	InteractionCount(ctx context.Context, userID string) (int, error)
}

// ColdStartSelector decide como puntuar candidatos segun historial del usuario.
type ColdStartSelector struct {
	interactions InteractionReader
}

func NewColdStartSelector(interactions InteractionReader) *ColdStartSelector {
	return &ColdStartSelector{interactions: interactions}
}

// RecommendationStrategy es una funcion escalon determinista del contador.
func (*ColdStartSelector) RecommendationStrategy(interactionCount int) Strategy {
	switch {
	case interactionCount <= contentInitMax:
		return StrategyContentInit
	case interactionCount <= banditExploreMax:
		return StrategyBanditExplore
	case interactionCount <= collaborativeMax:
		return StrategyCollaborativeFiltering
	default:
		return StrategyCrossDomainTransfer
	}
}

// StrategyForUser resuelve la estrategia leyendo el contador persistido.
func (s *ColdStartSelector) StrategyForUser(ctx context.Context, userID string) (Strategy, error) {
	if s.interactions == nil {
		return StrategyContentInit, nil
	}
	count, err := s.interactions.InteractionCount(ctx, userID)
	if err != nil {
		return StrategyContentInit, err
	}
	return s.RecommendationStrategy(count), nil
}

// InitializeFromContent calcula el centroide ponderado de los embeddings medios
// por categoria, pesado por (a) la importancia configurada de la categoria y
// (b) cuantos registros del usuario caen en ella. Sin registros devuelve un
// vector vacio: "sin personalizacion disponible", no un embedding valido.
func (*ColdStartSelector) InitializeFromContent(
	records []domain.ContentRecord,
	categoryProfiles []domain.CategoryProfile,
) []float64 {
	if len(records) == 0 || len(categoryProfiles) == 0 {
		return nil
	}

	countByCategory := make(map[string]int)
	for _, r := range records {
		countByCategory[r.Category]++
	}

	dims := 0
	for _, cp := range categoryProfiles {
		if len(cp.MeanEmbedding) > dims {
			dims = len(cp.MeanEmbedding)
		}
	}
	if dims == 0 {
		return nil
	}

	centroid := make([]float64, dims)
	var weightTotal float64
	for _, cp := range categoryProfiles {
		count := countByCategory[cp.Category]
		if count == 0 {
			continue
		}
		w := cp.Weight * float64(count)
		if w <= 0 {
			continue
		}
		weightTotal += w
		for i := 0; i < dims; i++ {
			centroid[i] += w * at(cp.MeanEmbedding, i)
		}
	}
	if weightTotal == 0 {
		return nil
	}
	for i := range centroid {
		centroid[i] /= weightTotal
	}
	return centroid
}

// ExploreBandit implementa Thompson Sampling: un draw theta ~ Beta(alpha, beta)
// por candidato, ranking por el theta muestreado (no por la media posterior)
// para balancear exploracion y explotacion. Los posteriors llegan como input;
// sus actualizaciones por accept/reject son de un colaborador externo. El rng
// se inyecta para que los tests sean reproducibles.
func (*ColdStartSelector) ExploreBandit(
	candidates []domain.BanditCandidate,
	posteriors map[string]domain.BanditPosterior,
	rng *rand.Rand,
) domain.BanditRanking {
	samples := make([]domain.BanditSample, 0, len(candidates))
	for _, c := range candidates {
		post, ok := posteriors[c.CandidateID]
		if !ok || post.Alpha <= 0 || post.Beta <= 0 {
			// Prior uniforme Beta(1,1) para candidatos sin historial.
			post = domain.BanditPosterior{Alpha: 1, Beta: 1}
		}
		samples = append(samples, domain.BanditSample{
			CandidateID: c.CandidateID,
			Theta:       sampleBeta(rng, post.Alpha, post.Beta),
		})
	}
	sort.Slice(samples, func(i, j int) bool {
		if samples[i].Theta != samples[j].Theta {
			return samples[i].Theta > samples[j].Theta
		}
		return samples[i].CandidateID < samples[j].CandidateID
	})
	return domain.BanditRanking{AllSamples: samples}
}

// sampleBeta muestrea Beta(a,b) via dos draws Gamma: X/(X+Y).
func sampleBeta(rng *rand.Rand, a, b float64) float64 {
	x := sampleGamma(rng, a)
	y := sampleGamma(rng, b)
	if x+y == 0 {
		return 0.5
	}
	return x / (x + y)
}

// sampleGamma muestrea Gamma(shape, 1) con Marsaglia-Tsang; shapes < 1 se
// elevan con el boost U^(1/shape).
func sampleGamma(rng *rand.Rand, shape float64) float64 {
	if shape <= 0 {
		return 0
	}
	if shape < 1 {
		u := rng.Float64()
		for u == 0 {
			u = rng.Float64()
		}
		return sampleGamma(rng, shape+1) * math.Pow(u, 1/shape)
	}

	d := shape - 1.0/3.0
	c := 1.0 / math.Sqrt(9*d)
	for {
		x := rng.NormFloat64()
		v := 1 + c*x
		if v <= 0 {
			continue
		}
		v = v * v * v
		u := rng.Float64()
		if u < 1-0.0331*x*x*x*x {
			return d * v
		}
		if u > 0 && math.Log(u) < 0.5*x*x+d*(1-v+math.Log(v)) {
			return d * v
		}
	}
}
