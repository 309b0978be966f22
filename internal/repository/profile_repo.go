package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"swapwise/internal/domain"
)

// ErrNotFound se devuelve cuando la fila pedida no existe.
var ErrNotFound = errors.New("not found")

// ProfileRepository define el contrato de persistencia para perfiles de matching.
type ProfileRepository interface {
	Upsert(ctx context.Context, profile domain.Profile) error
	GetByID(ctx context.Context, id string) (domain.Profile, error)
	ListAll(ctx context.Context) ([]domain.Profile, error)
}

// PgProfileRepository implementa ProfileRepository usando pgxpool.
type PgProfileRepository struct {
	pool *pgxpool.Pool
}

func NewPgProfileRepository(pool *pgxpool.Pool) *PgProfileRepository {
	return &PgProfileRepository{pool: pool}
}

const profileColumns = `id, name, teach, learn, hobbies, rating, district, province, created_at, updated_at`

// Upsert no pisa rating en perfiles existentes: solo RatingRepository lo recalcula.
func (r *PgProfileRepository) Upsert(ctx context.Context, profile domain.Profile) error {
	const query = `
		INSERT INTO profiles (` + profileColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id)
		DO UPDATE SET
			name = EXCLUDED.name,
			teach = EXCLUDED.teach,
			learn = EXCLUDED.learn,
			hobbies = EXCLUDED.hobbies,
			district = EXCLUDED.district,
			province = EXCLUDED.province,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.pool.Exec(ctx, query,
		profile.ID,
		profile.Name,
		profile.Teach,
		profile.Learn,
		profile.Hobbies,
		profile.Rating,
		profile.Location.District,
		profile.Location.Province,
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	return err
}

func (r *PgProfileRepository) GetByID(ctx context.Context, id string) (domain.Profile, error) {
	const query = `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`

	profile, err := scanProfile(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Profile{}, ErrNotFound
	}
	return profile, err
}

func (r *PgProfileRepository) ListAll(ctx context.Context) ([]domain.Profile, error) {
	const query = `SELECT ` + profileColumns + ` FROM profiles ORDER BY created_at, id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []domain.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return profiles, nil
}

// scanProfile lee una fila con profileColumns. Arrays NULL llegan como sets vacios.
func scanProfile(row pgx.Row) (domain.Profile, error) {
	var p domain.Profile
	var name, district, province *string
	var rating *float64
	if err := row.Scan(
		&p.ID,
		&name,
		&p.Teach,
		&p.Learn,
		&p.Hobbies,
		&rating,
		&district,
		&province,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return domain.Profile{}, err
	}
	if name != nil {
		p.Name = *name
	}
	if rating != nil {
		p.Rating = *rating
	}
	if district != nil {
		p.Location.District = *district
	}
	if province != nil {
		p.Location.Province = *province
	}
	return p.Normalize(), nil
}
