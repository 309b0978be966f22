package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"swapwise/internal/config"
)

// NewPool construye y devuelve un pool de conexiones configurado.
func NewPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	// Configuración razonable para ambientes iniciales.
	poolCfg.MaxConns = 10
	poolCfg.MinConns = 1
	poolCfg.MaxConnLifetime = 30 * time.Minute
	poolCfg.MaxConnIdleTime = 5 * time.Minute
	poolCfg.HealthCheckPeriod = 30 * time.Second
	poolCfg.ConnConfig.ConnectTimeout = 5 * time.Second

	return pgxpool.NewWithConfig(ctx, poolCfg)
}

// Ping verifica conectividad con la base de datos.
func Ping(ctx context.Context, pool *pgxpool.Pool) error {
	return pool.Ping(ctx)
}

// Schema crea las tablas de perfiles, likes, matches, calificaciones y reuniones si no existen.
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS profiles (
		id TEXT PRIMARY KEY,
		name TEXT,
		teach TEXT[] NOT NULL DEFAULT '{}',
		learn TEXT[] NOT NULL DEFAULT '{}',
		hobbies TEXT[] NOT NULL DEFAULT '{}',
		rating DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (rating >= 0),
		district TEXT,
		province TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS likes (
		id TEXT PRIMARY KEY,
		from_user_id TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
		to_user_id TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (from_user_id, to_user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS matches (
		id TEXT PRIMARY KEY,
		user_a TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
		user_b TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (user_a, user_b),
		CHECK (user_a < user_b)
	)`,
	`CREATE TABLE IF NOT EXISTS ratings (
		rater_id TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
		target_id TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
		score DOUBLE PRECISION NOT NULL CHECK (score > 0),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (rater_id, target_id),
		CHECK (rater_id <> target_id)
	)`,
	`CREATE TABLE IF NOT EXISTS meetings (
		id TEXT PRIMARY KEY,
		organizer_id TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
		category TEXT NOT NULL,
		subject TEXT NOT NULL,
		online BOOLEAN NOT NULL DEFAULT false,
		location TEXT NOT NULL,
		meet_link TEXT NOT NULL DEFAULT '',
		starts_at TIMESTAMPTZ NOT NULL,
		ends_at TIMESTAMPTZ NOT NULL,
		reminder_minutes INTEGER NOT NULL,
		attendees TEXT[] NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		CHECK (ends_at > starts_at)
	)`,
	`CREATE INDEX IF NOT EXISTS likes_to_user_idx ON likes (to_user_id)`,
	`CREATE INDEX IF NOT EXISTS ratings_target_idx ON ratings (target_id)`,
	`CREATE INDEX IF NOT EXISTS meetings_organizer_starts_idx ON meetings (organizer_id, starts_at)`,
	`CREATE INDEX IF NOT EXISTS meetings_attendees_idx ON meetings USING GIN (attendees)`,
	`CREATE INDEX IF NOT EXISTS matches_user_b_idx ON matches (user_b)`,
}

// Migrate aplica Schema en orden.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for i, stmt := range Schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate step %d: %w", i, err)
		}
	}
	return nil
}
