package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"dream-match/internal/domain"
)

// PatternRepository sirve las tablas de patrones de equipo historicamente
// exitosos, como input de solo lectura para el booster.
type PatternRepository interface {
	FindByDomainTag(ctx context.Context, domainTag string) ([]domain.SuccessPattern, error)
}

type PgPatternRepository struct {
	pool *pgxpool.Pool
}

func NewPgPatternRepository(pool *pgxpool.Pool) *PgPatternRepository {
	return &PgPatternRepository{pool: pool}
}

func (r *PgPatternRepository) FindByDomainTag(ctx context.Context, domainTag string) ([]domain.SuccessPattern, error) {
	const query = `
		SELECT domain_tag, role, tags
		FROM success_patterns
		WHERE LOWER(domain_tag) = LOWER($1)
	`
	rows, err := r.pool.Query(ctx, query, domainTag)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var patterns []domain.SuccessPattern
	for rows.Next() {
		var p domain.SuccessPattern
		if err := rows.Scan(&p.DomainTag, &p.Role, &p.Tags); err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}
	return patterns, rows.Err()
}
