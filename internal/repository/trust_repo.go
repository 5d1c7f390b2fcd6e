package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"dream-match/internal/domain"
)

// TrustSignalRepository lee el snapshot de señales de confianza por servicio.
// Cada fila trae la observacion actual junto a su media/desvio historico y el
// peso de confiabilidad del servicio emisor.
type TrustSignalRepository interface {
	FindByUserID(ctx context.Context, userID string) ([]domain.ServiceTrustSignal, error)
}

type PgTrustSignalRepository struct {
	pool *pgxpool.Pool
}

func NewPgTrustSignalRepository(pool *pgxpool.Pool) *PgTrustSignalRepository {
	return &PgTrustSignalRepository{pool: pool}
}

func (r *PgTrustSignalRepository) FindByUserID(ctx context.Context, userID string) ([]domain.ServiceTrustSignal, error) {
	const query = `
		SELECT service, score, mean, std_dev, reliability
		FROM trust_signals
		WHERE user_id = $1
		ORDER BY service
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var signals []domain.ServiceTrustSignal
	for rows.Next() {
		var s domain.ServiceTrustSignal
		if err := rows.Scan(&s.Service, &s.Score, &s.Mean, &s.StdDev, &s.Reliability); err != nil {
			return nil, err
		}
		signals = append(signals, s)
	}
	return signals, rows.Err()
}
