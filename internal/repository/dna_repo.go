package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"dream-match/internal/domain"
)

// DNARepository lee y escribe perfiles DreamDNA persistidos. El motor de
// scoring nunca toca este layer: consume los structs que salen de aca.
type DNARepository interface {
	GetByUserID(ctx context.Context, userID string) (domain.DreamDNA, error)
	Upsert(ctx context.Context, dna domain.DreamDNA) error
	NearestCandidates(ctx context.Context, embedding []float64, k int) ([]domain.MatchCandidate, error)
}

type PgDNARepository struct {
	pool *pgxpool.Pool
}

func NewPgDNARepository(pool *pgxpool.Pool) *PgDNARepository {
	return &PgDNARepository{pool: pool}
}

func (r *PgDNARepository) GetByUserID(ctx context.Context, userID string) (domain.DreamDNA, error) {
	const query = `
		SELECT user_id, vision_embedding, core_values, valence, arousal,
		       skill_vector, grit, completion_rate, sales_performance, has_shipped_mvp,
		       offline_reputation, responsiveness, delivery_compliance, trust_composite
		FROM dream_dna
		WHERE user_id = $1
	`
	var (
		dna       domain.DreamDNA
		embedding pgvector.Vector
	)
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&dna.UserID,
		&embedding,
		&dna.Identity.CoreValues,
		&dna.Identity.Emotion.Valence,
		&dna.Identity.Emotion.Arousal,
		&dna.Capability.SkillVector,
		&dna.Execution.Grit,
		&dna.Execution.CompletionRate,
		&dna.Execution.SalesPerformance,
		&dna.Execution.HasShippedMVP,
		&dna.Trust.OfflineReputation,
		&dna.Trust.Responsiveness,
		&dna.Trust.DeliveryCompliance,
		&dna.Trust.Composite,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.DreamDNA{}, err
	}
	if err != nil {
		return domain.DreamDNA{}, err
	}
	dna.Identity.VisionEmbedding = vectorToFloat64(embedding)
	dna.Normalize()
	return dna, nil
}

func (r *PgDNARepository) Upsert(ctx context.Context, dna domain.DreamDNA) error {
	const query = `
		INSERT INTO dream_dna (
			user_id, vision_embedding, core_values, valence, arousal,
			skill_vector, grit, completion_rate, sales_performance, has_shipped_mvp,
			offline_reputation, responsiveness, delivery_compliance, trust_composite
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (user_id) DO UPDATE SET
			vision_embedding = EXCLUDED.vision_embedding,
			core_values = EXCLUDED.core_values,
			valence = EXCLUDED.valence,
			arousal = EXCLUDED.arousal,
			skill_vector = EXCLUDED.skill_vector,
			grit = EXCLUDED.grit,
			completion_rate = EXCLUDED.completion_rate,
			sales_performance = EXCLUDED.sales_performance,
			has_shipped_mvp = EXCLUDED.has_shipped_mvp,
			offline_reputation = EXCLUDED.offline_reputation,
			responsiveness = EXCLUDED.responsiveness,
			delivery_compliance = EXCLUDED.delivery_compliance,
			trust_composite = EXCLUDED.trust_composite
	`
	dna.Normalize()
	_, err := r.pool.Exec(ctx, query,
		dna.UserID,
		float64ToVector(dna.Identity.VisionEmbedding),
		dna.Identity.CoreValues,
		dna.Identity.Emotion.Valence,
		dna.Identity.Emotion.Arousal,
		dna.Capability.SkillVector,
		dna.Execution.Grit,
		dna.Execution.CompletionRate,
		dna.Execution.SalesPerformance,
		dna.Execution.HasShippedMVP,
		dna.Trust.OfflineReputation,
		dna.Trust.Responsiveness,
		dna.Trust.DeliveryCompliance,
		dna.Trust.Composite,
	)
	return err
}

// NearestCandidates arma el pool de candidatos por cercania de vision en el
// espacio de embeddings (distancia coseno de pgvector).
func (r *PgDNARepository) NearestCandidates(ctx context.Context, embedding []float64, k int) ([]domain.MatchCandidate, error) {
	if k <= 0 {
		k = 20
	}
	const query = `
		SELECT user_id, vision_embedding, core_values, valence, arousal,
		       skill_vector, grit, completion_rate, sales_performance, has_shipped_mvp,
		       offline_reputation, responsiveness, delivery_compliance, trust_composite
		FROM dream_dna
		ORDER BY vision_embedding <=> $1
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, float64ToVector(embedding), k)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var candidates []domain.MatchCandidate
	for rows.Next() {
		var (
			dna       domain.DreamDNA
			vectorCol pgvector.Vector
		)
		if err := rows.Scan(
			&dna.UserID,
			&vectorCol,
			&dna.Identity.CoreValues,
			&dna.Identity.Emotion.Valence,
			&dna.Identity.Emotion.Arousal,
			&dna.Capability.SkillVector,
			&dna.Execution.Grit,
			&dna.Execution.CompletionRate,
			&dna.Execution.SalesPerformance,
			&dna.Execution.HasShippedMVP,
			&dna.Trust.OfflineReputation,
			&dna.Trust.Responsiveness,
			&dna.Trust.DeliveryCompliance,
			&dna.Trust.Composite,
		); err != nil {
			return nil, err
		}
		dna.Identity.VisionEmbedding = vectorToFloat64(vectorCol)
		dna.Normalize()
		candidates = append(candidates, domain.MatchCandidate{ID: dna.UserID, DNA: dna})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return candidates, nil
}

func vectorToFloat64(v pgvector.Vector) []float64 {
	src := v.Slice()
	out := make([]float64, len(src))
	for i, f := range src {
		out[i] = float64(f)
	}
	return out
}

func float64ToVector(src []float64) pgvector.Vector {
	out := make([]float32, len(src))
	for i, f := range src {
		out[i] = float32(f)
	}
	return pgvector.NewVector(out)
}
