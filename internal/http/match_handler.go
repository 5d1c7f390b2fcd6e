package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dream-match/internal/domain"
	"dream-match/internal/service"
)

// MatchHandler mantiene dependencias para los endpoints de matching.
type MatchHandler struct {
	logger *zap.Logger
	svc    *service.MatchService
}

// NewMatchHandler crea una instancia de MatchHandler con dependencias necesarias.
func NewMatchHandler(logger *zap.Logger, svc *service.MatchService) *MatchHandler {
	return &MatchHandler{logger: logger, svc: svc}
}

// DiscoverMatches maneja POST /matches/discover.
func (h *MatchHandler) DiscoverMatches(c *gin.Context) {
	var req struct {
		Seeker           domain.DreamDNA          `json:"seeker" binding:"required"`
		Candidates       []domain.MatchCandidate  `json:"candidates"`
		MinScore         float64                  `json:"min_score"`
		Limit            int                      `json:"limit"`
		SearchText       string                   `json:"search_text"`
		DataPoints       int                      `json:"data_points"`
		ContentRecords   []domain.ContentRecord   `json:"content_records"`
		CategoryProfiles []domain.CategoryProfile `json:"category_profiles"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid discover request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	results, strategy, err := h.svc.DiscoverMatches(c.Request.Context(), req.Seeker, req.Candidates, service.DiscoverOptions{
		MinScore:         req.MinScore,
		Limit:            req.Limit,
		SearchText:       req.SearchText,
		DataPoints:       req.DataPoints,
		ContentRecords:   req.ContentRecords,
		CategoryProfiles: req.CategoryProfiles,
	})
	if err != nil {
		h.logger.Error("discover matches failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not compute matches"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"strategy": strategy,
		"results":  results,
	})
}

// MatchProject maneja POST /matches/project.
func (h *MatchHandler) MatchProject(c *gin.Context) {
	var req struct {
		Project           domain.MatchProject `json:"project" binding:"required"`
		CandidateIDs      []string            `json:"candidate_ids" binding:"required"`
		PsychFitOverrides map[string]float64  `json:"psych_fit_overrides"`
		DomainTag         string              `json:"domain_tag"`
		Team              []domain.TeamMember `json:"team"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid project match request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.Project.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "project id is required"})
		return
	}

	outcome, err := h.svc.MatchForProject(
		c.Request.Context(),
		req.Project,
		req.CandidateIDs,
		req.PsychFitOverrides,
		req.DomainTag,
		req.Team,
	)
	if err != nil {
		h.logger.Error("project match failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not match project"})
		return
	}

	c.JSON(http.StatusOK, outcome)
}

// RunBatch maneja POST /matches/batch con cooldown de 24h por usuario.
func (h *MatchHandler) RunBatch(c *gin.Context) {
	var req struct {
		UserID     string                  `json:"user_id" binding:"required"`
		Candidates []domain.MatchCandidate `json:"candidates"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid batch request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	outcome, err := h.svc.RunBatch(c.Request.Context(), req.UserID, req.Candidates)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCooldownActive):
			remaining := time.Until(outcome.NextAvailableAt)
			if remaining < 0 {
				remaining = 0
			}
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":             "batch still cooling down",
				"next_available_at": outcome.NextAvailableAt,
				"remaining_ms":      remaining.Milliseconds(),
			})
		case errors.Is(err, service.ErrDNANotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "dna not found"})
		default:
			h.logger.Error("batch run failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not run batch"})
		}
		return
	}

	c.JSON(http.StatusOK, outcome)
}
