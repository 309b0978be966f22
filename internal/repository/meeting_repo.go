package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"swapwise/internal/domain"
)

// MeetingRepository persiste las reuniones agendadas.
type MeetingRepository interface {
	Create(ctx context.Context, meeting domain.Meeting) error
	Update(ctx context.Context, meeting domain.Meeting) error
	GetByID(ctx context.Context, id string) (domain.Meeting, error)
	// ListForUser devuelve las reuniones que userID organiza o a las que asiste
	// con inicio en [from, to), ordenadas por inicio.
	ListForUser(ctx context.Context, userID string, from, to time.Time) ([]domain.Meeting, error)
}

type PgMeetingRepository struct {
	pool *pgxpool.Pool
}

func NewPgMeetingRepository(pool *pgxpool.Pool) *PgMeetingRepository {
	return &PgMeetingRepository{pool: pool}
}

const meetingColumns = `id, organizer_id, category, subject, online, location, meet_link,
	starts_at, ends_at, reminder_minutes, attendees, created_at, updated_at`

func (r *PgMeetingRepository) Create(ctx context.Context, m domain.Meeting) error {
	const query = `
		INSERT INTO meetings (` + meetingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.pool.Exec(ctx, query,
		m.ID,
		m.OrganizerID,
		m.Category,
		m.Subject,
		m.Online,
		m.Location,
		m.MeetLink,
		m.From,
		m.To,
		m.ReminderMinutes,
		m.Attendees,
		m.CreatedAt,
		m.UpdatedAt,
	)
	return err
}

func (r *PgMeetingRepository) Update(ctx context.Context, m domain.Meeting) error {
	const query = `
		UPDATE meetings SET
			category = $2,
			subject = $3,
			online = $4,
			location = $5,
			meet_link = $6,
			starts_at = $7,
			ends_at = $8,
			reminder_minutes = $9,
			attendees = $10,
			updated_at = $11
		WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query,
		m.ID,
		m.Category,
		m.Subject,
		m.Online,
		m.Location,
		m.MeetLink,
		m.From,
		m.To,
		m.ReminderMinutes,
		m.Attendees,
		m.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgMeetingRepository) GetByID(ctx context.Context, id string) (domain.Meeting, error) {
	const query = `SELECT ` + meetingColumns + ` FROM meetings WHERE id = $1`

	m, err := scanMeeting(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Meeting{}, ErrNotFound
	}
	return m, err
}

func (r *PgMeetingRepository) ListForUser(ctx context.Context, userID string, from, to time.Time) ([]domain.Meeting, error) {
	const query = `
		SELECT ` + meetingColumns + `
		FROM meetings
		WHERE (organizer_id = $1 OR $1 = ANY(attendees))
			AND starts_at >= $2 AND starts_at < $3
		ORDER BY starts_at, id
	`

	rows, err := r.pool.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var meetings []domain.Meeting
	for rows.Next() {
		m, err := scanMeeting(rows)
		if err != nil {
			return nil, err
		}
		meetings = append(meetings, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return meetings, nil
}

func scanMeeting(row pgx.Row) (domain.Meeting, error) {
	var m domain.Meeting
	err := row.Scan(
		&m.ID,
		&m.OrganizerID,
		&m.Category,
		&m.Subject,
		&m.Online,
		&m.Location,
		&m.MeetLink,
		&m.From,
		&m.To,
		&m.ReminderMinutes,
		&m.Attendees,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if m.Attendees == nil {
		m.Attendees = []string{}
	}
	return m, err
}
