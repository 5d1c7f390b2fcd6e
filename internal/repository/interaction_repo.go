package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"dream-match/internal/domain"
)

// InteractionRepository expone el historial de interacciones y los posteriors
// del bandit. El motor solo lee; las actualizaciones por accept/reject entran
// por RecordOutcome desde los handlers de feedback.
type InteractionRepository interface {
	InteractionCount(ctx context.Context, userID string) (int, error)
	BanditPosteriors(ctx context.Context, userID string, candidateIDs []string) (map[string]domain.BanditPosterior, error)
	RecordOutcome(ctx context.Context, userID, candidateID string, accepted bool) error
}

type PgInteractionRepository struct {
	pool *pgxpool.Pool
}

func NewPgInteractionRepository(pool *pgxpool.Pool) *PgInteractionRepository {
	return &PgInteractionRepository{pool: pool}
}

func (r *PgInteractionRepository) InteractionCount(ctx context.Context, userID string) (int, error) {
	const query = `
		SELECT COUNT(*) FROM interactions WHERE user_id = $1
	`
	var count int
	err := r.pool.QueryRow(ctx, query, userID).Scan(&count)
	return count, err
}

func (r *PgInteractionRepository) BanditPosteriors(ctx context.Context, userID string, candidateIDs []string) (map[string]domain.BanditPosterior, error) {
	const query = `
		SELECT candidate_id, alpha, beta
		FROM bandit_posteriors
		WHERE user_id = $1 AND candidate_id = ANY($2)
	`
	rows, err := r.pool.Query(ctx, query, userID, candidateIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posteriors := make(map[string]domain.BanditPosterior, len(candidateIDs))
	for rows.Next() {
		var (
			candidateID string
			post        domain.BanditPosterior
		)
		if err := rows.Scan(&candidateID, &post.Alpha, &post.Beta); err != nil {
			return nil, err
		}
		posteriors[candidateID] = post
	}
	return posteriors, rows.Err()
}

// RecordOutcome actualiza el posterior Beta: accept suma alpha, reject suma
// beta. Upsert con prior Beta(1,1) para pares nuevos, y registra la interaccion.
func (r *PgInteractionRepository) RecordOutcome(ctx context.Context, userID, candidateID string, accepted bool) error {
	alphaDelta, betaDelta := 0.0, 1.0
	if accepted {
		alphaDelta, betaDelta = 1.0, 0.0
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const upsert = `
		INSERT INTO bandit_posteriors (user_id, candidate_id, alpha, beta)
		VALUES ($1, $2, 1 + $3, 1 + $4)
		ON CONFLICT (user_id, candidate_id) DO UPDATE SET
			alpha = bandit_posteriors.alpha + $3,
			beta = bandit_posteriors.beta + $4
	`
	if _, err := tx.Exec(ctx, upsert, userID, candidateID, alphaDelta, betaDelta); err != nil {
		return err
	}

	const record = `
		INSERT INTO interactions (user_id, candidate_id, accepted, created_at)
		VALUES ($1, $2, $3, NOW())
	`
	if _, err := tx.Exec(ctx, record, userID, candidateID, accepted); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// IsNotFound ayuda a los handlers a mapear ausencia de fila a 404.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
