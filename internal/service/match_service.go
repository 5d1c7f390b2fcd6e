package service

import (
	"context"
	"errors"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"dream-match/internal/domain"
	"dream-match/internal/events"
	"dream-match/internal/repository"
)

// MatchService coordina el motor de matching: scoring, cold-start, solver
// estable, booster, cooldown y notificaciones. Los componentes del motor son
// puros; todo el I/O pasa por los repositorios y el publisher inyectados.
type MatchService struct {
	logger       *zap.Logger
	dna          repository.DNARepository
	interactions repository.InteractionRepository
	patterns     repository.PatternRepository
	matches      repository.MatchRepository
	trustSignals repository.TrustSignalRepository
	cooldown     BatchCooldown
	publisher    events.Publisher

	scorer     DNAScorer
	compat     CompatibilityScorer
	aggregator TrustAggregator
	selector   *ColdStartSelector
	matcher    *StableMatcher
	booster    SuccessBooster

	rngMu sync.Mutex
	rng   *rand.Rand
}

var (
	ErrCooldownActive = errors.New("batch cooldown active")
	ErrDNANotFound    = errors.New("dream dna not found")
)

func NewMatchService(
	logger *zap.Logger,
	dna repository.DNARepository,
	interactions repository.InteractionRepository,
	patterns repository.PatternRepository,
	matches repository.MatchRepository,
	trustSignals repository.TrustSignalRepository,
	cooldown BatchCooldown,
	publisher events.Publisher,
) *MatchService {
	if cooldown == nil {
		cooldown = NewMemoryBatchCooldown(DefaultBatchWindow)
	}
	if publisher == nil {
		publisher = events.NewDisabledPublisher("publisher not configured")
	}
	return &MatchService{
		logger:       logger,
		dna:          dna,
		interactions: interactions,
		patterns:     patterns,
		matches:      matches,
		trustSignals: trustSignals,
		cooldown:     cooldown,
		publisher:    publisher,
		selector:     NewColdStartSelector(interactions),
		matcher:      NewStableMatcher(),
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SetRand inyecta una fuente aleatoria con seed para corridas reproducibles.
// Thompson Sampling es no-determinista por llamada a proposito.
func (s *MatchService) SetRand(rng *rand.Rand) {
	if rng != nil {
		s.rng = rng
	}
}

// DiscoverOptions filtra y acota el feed de descubrimiento.
type DiscoverOptions struct {
	MinScore   float64
	Limit      int
	SearchText string
	DataPoints int

	// Inputs del camino content cold-start; vacios si el caller no los tiene.
	ContentRecords   []domain.ContentRecord
	CategoryProfiles []domain.CategoryProfile
}

// DiscoverMatches arma el feed rankeado para el DNA solicitante contra un pool
// de candidatos. El regimen de scoring lo decide el selector de cold-start.
func (s *MatchService) DiscoverMatches(
	ctx context.Context,
	seeker domain.DreamDNA,
	pool []domain.MatchCandidate,
	opts DiscoverOptions,
) ([]domain.MatchResult, Strategy, error) {
	seeker.Normalize()

	strategy, err := s.selector.StrategyForUser(ctx, seeker.UserID)
	if err != nil {
		s.logger.Warn("strategy lookup failed, falling back to content init", zap.Error(err))
		strategy = StrategyContentInit
	}

	// Sin embedding propio, el centroide por categorias es la unica
	// personalizacion disponible para arrancar.
	if strategy == StrategyContentInit && len(seeker.Identity.VisionEmbedding) == 0 {
		centroid := s.selector.InitializeFromContent(opts.ContentRecords, opts.CategoryProfiles)
		if len(centroid) > 0 {
			seeker.Identity.VisionEmbedding = centroid
		}
	}

	pool = filterBySearchText(pool, opts.SearchText)

	dataPoints := opts.DataPoints
	if dataPoints <= 0 {
		dataPoints = DefaultDataPoints
	}

	var results []domain.MatchResult
	if strategy == StrategyBanditExplore {
		results = s.banditResults(ctx, seeker.UserID, seeker, pool, dataPoints)
	} else {
		results = make([]domain.MatchResult, 0, len(pool))
		for _, c := range pool {
			br := s.scoreSeekerCandidate(seeker, c, dataPoints)
			results = append(results, domain.MatchResult{
				CandidateID: c.ID,
				Score:       br.Score,
				Breakdown:   br,
			})
		}
	}

	filtered := results[:0]
	for _, r := range results {
		if r.Score >= opts.MinScore {
			filtered = append(filtered, r)
		}
	}
	results = filtered

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].CandidateID < results[j].CandidateID
	})
	if opts.Limit > 0 && len(results) > opts.Limit {
		results = results[:opts.Limit]
	}
	return results, strategy, nil
}

// banditResults rankea por theta muestreado; el breakdown DNA acompaña como
// contexto pero el orden lo manda el sampling.
func (s *MatchService) banditResults(
	ctx context.Context,
	userID string,
	seeker domain.DreamDNA,
	pool []domain.MatchCandidate,
	dataPoints int,
) []domain.MatchResult {
	ids := make([]string, 0, len(pool))
	banditPool := make([]domain.BanditCandidate, 0, len(pool))
	for _, c := range pool {
		ids = append(ids, c.ID)
		banditPool = append(banditPool, domain.BanditCandidate{CandidateID: c.ID})
	}

	posteriors := map[string]domain.BanditPosterior{}
	if s.interactions != nil {
		loaded, err := s.interactions.BanditPosteriors(ctx, userID, ids)
		if err != nil {
			s.logger.Warn("bandit posteriors lookup failed, using uniform priors", zap.Error(err))
		} else {
			posteriors = loaded
		}
	}

	s.rngMu.Lock()
	ranking := s.selector.ExploreBandit(banditPool, posteriors, s.rng)
	s.rngMu.Unlock()

	byID := make(map[string]domain.MatchCandidate, len(pool))
	for _, c := range pool {
		byID[c.ID] = c
	}

	results := make([]domain.MatchResult, 0, len(ranking.AllSamples))
	for _, sample := range ranking.AllSamples {
		br := s.scoreSeekerCandidate(seeker, byID[sample.CandidateID], dataPoints)
		results = append(results, domain.MatchResult{
			CandidateID: sample.CandidateID,
			Score:       sample.Theta * 100,
			Breakdown:   br,
		})
	}
	return results
}

// scoreSeekerCandidate adapta el scorer de proyecto al caso persona-persona:
// los huecos a llenar son las dimensiones donde el seeker esta flojo.
func (s *MatchService) scoreSeekerCandidate(seeker domain.DreamDNA, c domain.MatchCandidate, dataPoints int) domain.MatchBreakdown {
	required := make([]float64, len(seeker.Capability.SkillVector))
	for i := range required {
		required[i] = 1
	}
	return s.scorer.ComputeMatchScore(
		seeker, c.DNA,
		required, seeker.Capability.SkillVector,
		domain.StageTeamFormation,
		c.PsychFitFor(""),
		dataPoints,
	)
}

// ProjectMatchOutcome es la salida del matching de proyecto.
type ProjectMatchOutcome struct {
	Results           []domain.MatchResult `json:"results"`
	IsStable          bool                 `json:"is_stable"`
	NotificationsSent int                  `json:"notifications_sent"`
}

// MatchForProject corre el solver estable para un proyecto contra candidatos
// persistidos, aplica el booster si hay domainTag, persiste y notifica.
func (s *MatchService) MatchForProject(
	ctx context.Context,
	project domain.MatchProject,
	candidateIDs []string,
	psychFitOverrides map[string]float64,
	domainTag string,
	team []domain.TeamMember,
) (ProjectMatchOutcome, error) {
	candidates := make([]domain.MatchCandidate, 0, len(candidateIDs))
	for _, id := range candidateIDs {
		dna, err := s.dna.GetByUserID(ctx, id)
		if err != nil {
			if repository.IsNotFound(err) {
				s.logger.Warn("candidate without dna skipped", zap.String("candidate_id", id))
				continue
			}
			return ProjectMatchOutcome{}, err
		}
		c := domain.MatchCandidate{ID: id, DNA: dna, PsychFit: map[string]float64{}}
		if fit, ok := psychFitOverrides[id]; ok {
			c.PsychFit[project.ID] = domain.Clamp01(fit)
		}
		candidates = append(candidates, c)
	}

	results := s.matcher.RunStableMatching([]domain.MatchProject{project}, candidates)
	blocking := s.matcher.FindBlockingPairs([]domain.MatchProject{project}, candidates, results)

	if domainTag != "" && s.patterns != nil {
		patterns, err := s.patterns.FindByDomainTag(ctx, domainTag)
		if err != nil {
			s.logger.Warn("success patterns lookup failed", zap.Error(err))
		} else if len(patterns) > 0 {
			for i := range results {
				boost := s.booster.ApplySuccessPattern(results[i].Score, domainTag, team, patterns)
				results[i].Score = boost.BoostedScore
				results[i].BoostMultiplier = boost.BoostMultiplier
			}
		}
	}

	if s.matches != nil {
		if err := s.matches.SaveAll(ctx, results); err != nil {
			s.logger.Error("persist matches failed", zap.Error(err))
			return ProjectMatchOutcome{}, err
		}
	}

	sent := 0
	for _, r := range results {
		event := events.MatchEvent{
			ProjectID:   r.ProjectID,
			CandidateID: r.CandidateID,
			Score:       r.Score,
			OccurredAt:  time.Now().UTC(),
		}
		if err := s.publisher.PublishMatch(ctx, event); err != nil {
			s.logger.Warn("match notification failed", zap.Error(err))
			continue
		}
		sent++
	}

	return ProjectMatchOutcome{
		Results:           results,
		IsStable:          len(blocking) == 0,
		NotificationsSent: sent,
	}, nil
}

// BatchOutcome es la salida de una corrida batch.
type BatchOutcome struct {
	Results         []domain.MatchResult `json:"results"`
	NextAvailableAt time.Time            `json:"next_available_at"`
}

// RunBatch recalcula todos los scores pairwise de un usuario contra el pool.
// Como maximo una corrida por usuario por ventana: la violacion se distingue
// con ErrCooldownActive, nunca se confunde con error de validacion o server.
func (s *MatchService) RunBatch(
	ctx context.Context,
	userID string,
	pool []domain.MatchCandidate,
) (BatchOutcome, error) {
	allowed, nextAt, err := s.cooldown.Acquire(ctx, userID)
	if err != nil {
		return BatchOutcome{}, err
	}
	if !allowed {
		return BatchOutcome{NextAvailableAt: nextAt}, ErrCooldownActive
	}

	seeker, err := s.dna.GetByUserID(ctx, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return BatchOutcome{NextAvailableAt: nextAt}, ErrDNANotFound
		}
		return BatchOutcome{}, err
	}

	results := make([]domain.MatchResult, 0, len(pool))
	for _, c := range pool {
		br := s.scoreSeekerCandidate(seeker, c, DefaultDataPoints)
		results = append(results, domain.MatchResult{
			CandidateID: c.ID,
			Score:       br.Score,
			Breakdown:   br,
		})
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].CandidateID < results[j].CandidateID
	})

	return BatchOutcome{Results: results, NextAvailableAt: nextAt}, nil
}

// TrustReport es el snapshot de confianza de un usuario.
type TrustReport struct {
	Signals   []domain.ServiceTrustSignal `json:"signals"`
	Composite float64                     `json:"composite"`
	Vector    domain.TrustFacet           `json:"vector"`
}

// TrustSnapshot agrega las señales por-servicio del usuario y deriva el
// vector de confianza que consume el scorer.
func (s *MatchService) TrustSnapshot(ctx context.Context, userID string) (TrustReport, error) {
	var signals []domain.ServiceTrustSignal
	if s.trustSignals != nil {
		loaded, err := s.trustSignals.FindByUserID(ctx, userID)
		if err != nil {
			return TrustReport{}, err
		}
		signals = loaded
	}

	composite := s.aggregator.ComputeCrossServiceTrust(signals)

	extras := domain.TrustFacet{}
	if dna, err := s.dna.GetByUserID(ctx, userID); err == nil {
		extras = dna.Trust
	}

	return TrustReport{
		Signals:   signals,
		Composite: composite,
		Vector:    s.aggregator.ToTrustVector(composite, extras),
	}, nil
}

// filterBySearchText retiene candidatos cuyo nombre de skill o valor core
// contiene el texto buscado.
func filterBySearchText(pool []domain.MatchCandidate, text string) []domain.MatchCandidate {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return pool
	}
	out := make([]domain.MatchCandidate, 0, len(pool))
	for _, c := range pool {
		if candidateMatchesText(c, text) {
			out = append(out, c)
		}
	}
	return out
}

func candidateMatchesText(c domain.MatchCandidate, text string) bool {
	for _, sk := range c.DNA.Capability.HardSkills {
		if strings.Contains(strings.ToLower(sk.Name), text) {
			return true
		}
	}
	for _, sk := range c.DNA.Capability.SoftSkills {
		if strings.Contains(strings.ToLower(sk.Name), text) {
			return true
		}
	}
	for _, v := range c.DNA.Identity.CoreValues {
		if strings.Contains(strings.ToLower(v), text) {
			return true
		}
	}
	return false
}
