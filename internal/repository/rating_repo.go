package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"swapwise/internal/domain"
)

// RatingRepository guarda calificaciones entre usuarios y mantiene profiles.rating.
type RatingRepository interface {
	// Upsert guarda la calificacion y devuelve el nuevo promedio del destinatario.
	Upsert(ctx context.Context, rating domain.PeerRating) (float64, error)
}

type PgRatingRepository struct {
	pool *pgxpool.Pool
}

func NewPgRatingRepository(pool *pgxpool.Pool) *PgRatingRepository {
	return &PgRatingRepository{pool: pool}
}

func (r *PgRatingRepository) Upsert(ctx context.Context, rating domain.PeerRating) (float64, error) {
	const upsertRating = `
		INSERT INTO ratings (rater_id, target_id, score, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (rater_id, target_id)
		DO UPDATE SET score = EXCLUDED.score, updated_at = EXCLUDED.updated_at
	`
	const refreshAverage = `
		UPDATE profiles
		SET rating = (SELECT avg(score) FROM ratings WHERE target_id = $1)
		WHERE id = $1
		RETURNING rating
	`

	var avg float64
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, upsertRating,
			rating.RaterID,
			rating.TargetID,
			rating.Score,
			rating.CreatedAt,
			rating.UpdatedAt,
		); err != nil {
			return err
		}
		return tx.QueryRow(ctx, refreshAverage, rating.TargetID).Scan(&avg)
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNotFound
	}
	return avg, err
}
