package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"dream-match/internal/domain"
	"dream-match/internal/repository"
	"dream-match/internal/service"
)

// stubDNARepo sirve perfiles desde un mapa, suficiente para los handlers.
type stubDNARepo struct {
	byUser map[string]domain.DreamDNA
}

func (s *stubDNARepo) GetByUserID(_ context.Context, userID string) (domain.DreamDNA, error) {
	dna, ok := s.byUser[userID]
	if !ok {
		return domain.DreamDNA{}, pgx.ErrNoRows
	}
	return dna, nil
}

func (s *stubDNARepo) Upsert(_ context.Context, dna domain.DreamDNA) error {
	s.byUser[dna.UserID] = dna
	return nil
}

func (s *stubDNARepo) NearestCandidates(_ context.Context, _ []float64, _ int) ([]domain.MatchCandidate, error) {
	return nil, nil
}

func newTestRouter(t *testing.T, dnaRepo repository.DNARepository) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	svc := service.NewMatchService(
		logger,
		dnaRepo,
		repository.NewNullInteractionRepository(),
		repository.NewNullPatternRepository(),
		repository.NewNullMatchRepository(),
		repository.NewNullTrustSignalRepository(),
		service.NewMemoryBatchCooldown(service.DefaultBatchWindow),
		nil,
	)

	matchH := NewMatchHandler(logger, svc)
	trustH := NewTrustHandler(logger, svc)
	jwtSvc := service.NewJWTService("", 0) // deshabilitado: rutas abiertas
	return NewRouter(logger, matchH, trustH, jwtSvc)
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func seekerDNA(userID string) domain.DreamDNA {
	return domain.DreamDNA{
		UserID: userID,
		Identity: domain.IdentityFacet{
			VisionEmbedding: []float64{0.5, 0.5, 0.1},
		},
		Capability: domain.CapabilityFacet{
			SkillVector: []float64{0.8, 0.2},
		},
		Execution: domain.ExecutionFacet{Grit: 0.7, CompletionRate: 0.6},
		Trust:     domain.TrustFacet{Composite: 0.5},
	}
}

func TestDiscoverMatchesEndpoint(t *testing.T) {
	router := newTestRouter(t, &stubDNARepo{byUser: map[string]domain.DreamDNA{}})

	candidate := domain.MatchCandidate{ID: "c1", DNA: seekerDNA("c1")}
	w := postJSON(t, router, "/matches/discover", gin.H{
		"seeker":     seekerDNA("seeker"),
		"candidates": []domain.MatchCandidate{candidate},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Strategy string               `json:"strategy"`
		Results  []domain.MatchResult `json:"results"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Strategy != "CONTENT_INIT" {
		t.Fatalf("expected CONTENT_INIT for null interactions, got %q", resp.Strategy)
	}
	if len(resp.Results) != 1 || resp.Results[0].CandidateID != "c1" {
		t.Fatalf("unexpected results: %+v", resp.Results)
	}
}

func TestDiscoverMatchesEndpoint_RejectsInvalidBody(t *testing.T) {
	router := newTestRouter(t, &stubDNARepo{byUser: map[string]domain.DreamDNA{}})

	req := httptest.NewRequest(http.MethodPost, "/matches/discover", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestRunBatchEndpoint_CooldownReturns429(t *testing.T) {
	repo := &stubDNARepo{byUser: map[string]domain.DreamDNA{
		"user-1": seekerDNA("user-1"),
	}}
	router := newTestRouter(t, repo)

	body := gin.H{
		"user_id":    "user-1",
		"candidates": []domain.MatchCandidate{{ID: "c1", DNA: seekerDNA("c1")}},
	}

	first := postJSON(t, router, "/matches/batch", body)
	if first.Code != http.StatusOK {
		t.Fatalf("first batch expected 200, got %d: %s", first.Code, first.Body.String())
	}

	second := postJSON(t, router, "/matches/batch", body)
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("second batch expected 429, got %d: %s", second.Code, second.Body.String())
	}
	var resp struct {
		NextAvailableAt string `json:"next_available_at"`
		RemainingMs     int64  `json:"remaining_ms"`
	}
	if err := json.Unmarshal(second.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.NextAvailableAt == "" {
		t.Fatal("429 response must carry next_available_at")
	}
	if resp.RemainingMs <= 0 {
		t.Fatalf("expected positive remaining_ms, got %d", resp.RemainingMs)
	}
}

func TestRunBatchEndpoint_UnknownUserReturns404(t *testing.T) {
	router := newTestRouter(t, &stubDNARepo{byUser: map[string]domain.DreamDNA{}})

	w := postJSON(t, router, "/matches/batch", gin.H{"user_id": "ghost"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestMatchProjectEndpoint_RequiresProjectID(t *testing.T) {
	router := newTestRouter(t, &stubDNARepo{byUser: map[string]domain.DreamDNA{}})

	w := postJSON(t, router, "/matches/project", gin.H{
		"project":       gin.H{"stage": "IDEATION"},
		"candidate_ids": []string{"c1"},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without project id, got %d: %s", w.Code, w.Body.String())
	}
}

func TestMatchProjectEndpoint_MatchesPersistedCandidate(t *testing.T) {
	repo := &stubDNARepo{byUser: map[string]domain.DreamDNA{
		"c1": seekerDNA("c1"),
	}}
	router := newTestRouter(t, repo)

	w := postJSON(t, router, "/matches/project", gin.H{
		"project": domain.MatchProject{
			ID:             "p1",
			OwnerDNA:       seekerDNA("owner"),
			RequiredSkills: []float64{1, 0.5},
			TeamSkills:     []float64{0.2, 0.1},
			Stage:          domain.StageTeamFormation,
			DataPoints:     30,
		},
		"candidate_ids": []string{"c1", "missing"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var outcome service.ProjectMatchOutcome
	if err := json.Unmarshal(w.Body.Bytes(), &outcome); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !outcome.IsStable {
		t.Fatal("single project assignment must be stable")
	}
	if len(outcome.Results) != 1 || outcome.Results[0].CandidateID != "c1" {
		t.Fatalf("unexpected results: %+v", outcome.Results)
	}
}

func TestGetTrustEndpoint(t *testing.T) {
	repo := &stubDNARepo{byUser: map[string]domain.DreamDNA{
		"user-1": seekerDNA("user-1"),
	}}
	router := newTestRouter(t, repo)

	req := httptest.NewRequest(http.MethodGet, "/trust/user-1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var report service.TrustReport
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if report.Vector.Composite < 0 || report.Vector.Composite > 1 {
		t.Fatalf("composite out of range: %+v", report)
	}
}
