package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"dream-match/internal/domain"
)

// Implementaciones null-object para ambientes sin base configurada. El camino
// "sin persistencia" es una rama de primera clase y testeable, no un efecto
// colateral de imports condicionales.

type NullDNARepository struct{}

func NewNullDNARepository() *NullDNARepository { return &NullDNARepository{} }

func (*NullDNARepository) GetByUserID(context.Context, string) (domain.DreamDNA, error) {
	return domain.DreamDNA{}, pgx.ErrNoRows
}

func (*NullDNARepository) Upsert(context.Context, domain.DreamDNA) error { return nil }

func (*NullDNARepository) NearestCandidates(context.Context, []float64, int) ([]domain.MatchCandidate, error) {
	return nil, nil
}

type NullInteractionRepository struct{}

func NewNullInteractionRepository() *NullInteractionRepository {
	return &NullInteractionRepository{}
}

func (*NullInteractionRepository) InteractionCount(context.Context, string) (int, error) {
	return 0, nil
}

func (*NullInteractionRepository) BanditPosteriors(context.Context, string, []string) (map[string]domain.BanditPosterior, error) {
	return map[string]domain.BanditPosterior{}, nil
}

func (*NullInteractionRepository) RecordOutcome(context.Context, string, string, bool) error {
	return nil
}

type NullPatternRepository struct{}

func NewNullPatternRepository() *NullPatternRepository { return &NullPatternRepository{} }

func (*NullPatternRepository) FindByDomainTag(context.Context, string) ([]domain.SuccessPattern, error) {
	return nil, nil
}

type NullMatchRepository struct{}

func NewNullMatchRepository() *NullMatchRepository { return &NullMatchRepository{} }

func (*NullMatchRepository) SaveAll(context.Context, []domain.MatchResult) error { return nil }

type NullTrustSignalRepository struct{}

func NewNullTrustSignalRepository() *NullTrustSignalRepository {
	return &NullTrustSignalRepository{}
}

func (*NullTrustSignalRepository) FindByUserID(context.Context, string) ([]domain.ServiceTrustSignal, error) {
	return nil, nil
}
