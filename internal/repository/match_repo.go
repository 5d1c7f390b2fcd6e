package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"dream-match/internal/domain"
)

// MatchRepository persiste asignaciones producidas por el solver.
type MatchRepository interface {
	SaveAll(ctx context.Context, results []domain.MatchResult) error
}

type PgMatchRepository struct {
	pool *pgxpool.Pool
}

func NewPgMatchRepository(pool *pgxpool.Pool) *PgMatchRepository {
	return &PgMatchRepository{pool: pool}
}

func (r *PgMatchRepository) SaveAll(ctx context.Context, results []domain.MatchResult) error {
	if len(results) == 0 {
		return nil
	}

	const query = `
		INSERT INTO matches (
			id, project_id, candidate_id, score,
			vision_alignment, complementarity, trust_index, psych_fit,
			boost_multiplier, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	now := time.Now().UTC()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, result := range results {
		if _, err := tx.Exec(ctx, query,
			uuid.NewString(),
			result.ProjectID,
			result.CandidateID,
			result.Score,
			result.Breakdown.VisionAlignment,
			result.Breakdown.Complementarity,
			result.Breakdown.TrustIndex,
			result.Breakdown.PsychFit,
			result.BoostMultiplier,
			now,
		); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}
