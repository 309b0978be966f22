package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"swapwise/internal/domain"
)

// SwipeRepository persiste likes y matches.
type SwipeRepository interface {
	CreateLike(ctx context.Context, like domain.Like) error
	HasLike(ctx context.Context, fromID, toID string) (bool, error)
	LikedBy(ctx context.Context, fromID string) ([]string, error)
	// CreateMatch devuelve false si el par ya tenia match.
	CreateMatch(ctx context.Context, match domain.Match) (bool, error)
	ListMatches(ctx context.Context, userID string) ([]domain.Match, error)
	HasMatch(ctx context.Context, a, b string) (bool, error)
}

type PgSwipeRepository struct {
	pool *pgxpool.Pool
}

func NewPgSwipeRepository(pool *pgxpool.Pool) *PgSwipeRepository {
	return &PgSwipeRepository{pool: pool}
}

func (r *PgSwipeRepository) CreateLike(ctx context.Context, like domain.Like) error {
	const query = `
		INSERT INTO likes (id, from_user_id, to_user_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (from_user_id, to_user_id) DO NOTHING
	`
	_, err := r.pool.Exec(ctx, query, like.ID, like.FromUserID, like.ToUserID, like.CreatedAt)
	return err
}

func (r *PgSwipeRepository) HasLike(ctx context.Context, fromID, toID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM likes WHERE from_user_id = $1 AND to_user_id = $2)`
	var exists bool
	err := r.pool.QueryRow(ctx, query, fromID, toID).Scan(&exists)
	return exists, err
}

func (r *PgSwipeRepository) LikedBy(ctx context.Context, fromID string) ([]string, error) {
	const query = `SELECT to_user_id FROM likes WHERE from_user_id = $1`

	rows, err := r.pool.Query(ctx, query, fromID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *PgSwipeRepository) CreateMatch(ctx context.Context, match domain.Match) (bool, error) {
	const query = `
		INSERT INTO matches (id, user_a, user_b, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_a, user_b) DO NOTHING
	`
	a, b := domain.OrderedPair(match.UserA, match.UserB)
	tag, err := r.pool.Exec(ctx, query, match.ID, a, b, match.CreatedAt)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *PgSwipeRepository) ListMatches(ctx context.Context, userID string) ([]domain.Match, error) {
	const query = `
		SELECT id, user_a, user_b, created_at
		FROM matches
		WHERE user_a = $1 OR user_b = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []domain.Match
	for rows.Next() {
		var m domain.Match
		if err := rows.Scan(&m.ID, &m.UserA, &m.UserB, &m.CreatedAt); err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *PgSwipeRepository) HasMatch(ctx context.Context, a, b string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM matches WHERE user_a = $1 AND user_b = $2)`
	a, b = domain.OrderedPair(a, b)
	var exists bool
	err := r.pool.QueryRow(ctx, query, a, b).Scan(&exists)
	return exists, err
}
