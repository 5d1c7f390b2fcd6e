package service

import (
	"sort"

	"dream-match/internal/domain"
)

// StableMatcher convierte scores pairwise en una asignacion uno-a-uno estable
// via deferred acceptance (Gale-Shapley) con los proyectos proponiendo.
// Trade-off estandar del algoritmo: los proponentes quedan debiles favorecidos;
// es una decision de politica, no un bug.
type StableMatcher struct {
	scorer DNAScorer
}

func NewStableMatcher() *StableMatcher {
	return &StableMatcher{}
}

// pairKey identifica un par (proyecto, candidato) en la matriz de scores.
type pairKey struct {
	projectID   string
	candidateID string
}

// scoreMatrix precalcula el breakdown de cada par via el DNA scorer.
// Ambos lados leen el mismo score pairwise: lo que difiere es la dimension
// sobre la que cada lado ordena (candidatos vs proyectos).
func (m *StableMatcher) scoreMatrix(
	projects []domain.MatchProject,
	candidates []domain.MatchCandidate,
) map[pairKey]domain.MatchBreakdown {
	scores := make(map[pairKey]domain.MatchBreakdown, len(projects)*len(candidates))
	for _, p := range projects {
		for _, c := range candidates {
			scores[pairKey{p.ID, c.ID}] = m.scorer.ComputeMatchScore(
				p.OwnerDNA, c.DNA,
				p.RequiredSkills, p.TeamSkills,
				p.Stage,
				c.PsychFitFor(p.ID),
				p.DataPoints,
			)
		}
	}
	return scores
}

// prefersOver decide si score a gana sobre score b, desempatando por id para
// mantener el algoritmo reproducible.
func prefersOver(scoreA, scoreB float64, idA, idB string) bool {
	if scoreA != scoreB {
		return scoreA > scoreB
	}
	return idA < idB
}

// RunStableMatching produce la asignacion estable. Cero proyectos o cero
// candidatos devuelve vacio: eso es exito, no error.
func (m *StableMatcher) RunStableMatching(
	projects []domain.MatchProject,
	candidates []domain.MatchCandidate,
) []domain.MatchResult {
	if len(projects) == 0 || len(candidates) == 0 {
		return []domain.MatchResult{}
	}

	scores := m.scoreMatrix(projects, candidates)

	// Orden de preferencia de cada proyecto sobre candidatos, descendente por
	// score y desempate por candidate id.
	prefs := make(map[string][]string, len(projects))
	for _, p := range projects {
		order := make([]string, 0, len(candidates))
		for _, c := range candidates {
			order = append(order, c.ID)
		}
		pid := p.ID
		sort.Slice(order, func(i, j int) bool {
			si := scores[pairKey{pid, order[i]}].Score
			sj := scores[pairKey{pid, order[j]}].Score
			return prefersOver(si, sj, order[i], order[j])
		})
		prefs[pid] = order
	}

	// Indice de proyectos ordenado para que las rondas de propuestas sean
	// deterministas ante cualquier orden de entrada.
	projectIDs := make([]string, 0, len(projects))
	for _, p := range projects {
		projectIDs = append(projectIDs, p.ID)
	}
	sort.Strings(projectIDs)

	nextProposal := make(map[string]int, len(projects)) // cursor sobre prefs
	heldBy := make(map[string]string)                   // candidato -> proyecto que lo retiene

	free := append([]string(nil), projectIDs...)
	for len(free) > 0 {
		pid := free[0]
		free = free[1:]

		// Propone hacia abajo en su lista; si la agota queda sin match.
		order := prefs[pid]
		for nextProposal[pid] < len(order) {
			cid := order[nextProposal[pid]]
			nextProposal[pid]++

			holder, taken := heldBy[cid]
			if !taken {
				heldBy[cid] = pid
				break
			}
			// El candidato retiene la mejor oferta segun su propia vista del
			// score pairwise.
			offerNew := scores[pairKey{pid, cid}].Score
			offerHeld := scores[pairKey{holder, cid}].Score
			if prefersOver(offerNew, offerHeld, pid, holder) {
				heldBy[cid] = pid
				free = append(free, holder)
				break
			}
		}
	}

	results := make([]domain.MatchResult, 0, len(heldBy))
	for cid, pid := range heldBy {
		br := scores[pairKey{pid, cid}]
		results = append(results, domain.MatchResult{
			CandidateID: cid,
			ProjectID:   pid,
			Score:       br.Score,
			Breakdown:   br,
		})
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].ProjectID < results[j].ProjectID
	})
	return results
}

// BlockingPair es un par que desestabilizaria la asignacion: ambos preferirian
// estar juntos antes que con su asignacion actual.
type BlockingPair struct {
	ProjectID   string `json:"project_id"`
	CandidateID string `json:"candidate_id"`
}

// FindBlockingPairs re-escanea una asignacion (propia o provista externamente)
// buscando pares bloqueantes. Una corrida correcta de RunStableMatching debe
// devolver un set vacio; existe como utilidad de verificacion de invariantes.
func (m *StableMatcher) FindBlockingPairs(
	projects []domain.MatchProject,
	candidates []domain.MatchCandidate,
	matches []domain.MatchResult,
) []BlockingPair {
	scores := m.scoreMatrix(projects, candidates)

	projectOf := make(map[string]string, len(matches)) // candidato -> proyecto
	candidateOf := make(map[string]string, len(matches))
	for _, r := range matches {
		projectOf[r.CandidateID] = r.ProjectID
		candidateOf[r.ProjectID] = r.CandidateID
	}

	var blocking []BlockingPair
	for _, p := range projects {
		for _, c := range candidates {
			if candidateOf[p.ID] == c.ID {
				continue
			}
			pairScore := scores[pairKey{p.ID, c.ID}].Score

			// El proyecto prefiere estrictamente a c sobre su match actual
			// (o esta sin match).
			projectWants := true
			if cur, ok := candidateOf[p.ID]; ok {
				projectWants = prefersOver(pairScore, scores[pairKey{p.ID, cur}].Score, c.ID, cur)
			}
			if !projectWants {
				continue
			}

			// Y el candidato prefiere estrictamente a p sobre el suyo.
			candidateWants := true
			if cur, ok := projectOf[c.ID]; ok {
				candidateWants = prefersOver(pairScore, scores[pairKey{cur, c.ID}].Score, p.ID, cur)
			}
			if candidateWants {
				blocking = append(blocking, BlockingPair{ProjectID: p.ID, CandidateID: c.ID})
			}
		}
	}
	return blocking
}
