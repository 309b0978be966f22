package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"swapwise/internal/domain"
	"swapwise/internal/metrics"
	"swapwise/internal/repository"
)

var (
	ErrInvalidMeeting   = errors.New("invalid meeting")
	ErrMeetingNotFound  = errors.New("meeting not found")
	ErrMeetingForbidden = errors.New("only the organizer can edit the meeting")
)

// DefaultReminderMinutes se usa cuando el input no trae aviso.
const DefaultReminderMinutes = 5

// MeetingInput es lo que el organizador completa al agendar o editar.
type MeetingInput struct {
	Category        string    `json:"category"`
	Subject         string    `json:"subject"`
	Online          bool      `json:"online"`
	Location        string    `json:"location"`
	MeetLink        string    `json:"meet_link"`
	From            time.Time `json:"from"`
	To              time.Time `json:"to"`
	ReminderMinutes int       `json:"reminder_minutes"`
	Attendees       []string  `json:"attendees"`
}

// MeetingService agenda sesiones entre usuarios que ya tienen match.
type MeetingService struct {
	logger   *zap.Logger
	meetings repository.MeetingRepository
	swipes   repository.SwipeRepository
	now      func() time.Time
}

func NewMeetingService(logger *zap.Logger, meetings repository.MeetingRepository, swipes repository.SwipeRepository) *MeetingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MeetingService{
		logger:   logger,
		meetings: meetings,
		swipes:   swipes,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *MeetingService) Create(ctx context.Context, organizerID string, input MeetingInput) (domain.Meeting, error) {
	if s.meetings == nil || s.swipes == nil {
		return domain.Meeting{}, errors.New("meeting service not configured")
	}
	organizerID = strings.TrimSpace(organizerID)
	meeting, err := s.build(ctx, organizerID, input)
	if err != nil {
		return domain.Meeting{}, err
	}
	now := s.now()
	meeting.ID = uuid.NewString()
	meeting.CreatedAt = now
	meeting.UpdatedAt = now

	if err := s.meetings.Create(ctx, meeting); err != nil {
		return domain.Meeting{}, fmt.Errorf("create meeting: %w", err)
	}
	metrics.MeetingsScheduled.Inc()
	s.logger.Info("meeting scheduled",
		zap.String("meeting_id", meeting.ID),
		zap.String("organizer_id", organizerID),
		zap.Int("attendees", len(meeting.Attendees)),
		zap.Time("from", meeting.From),
	)
	return meeting, nil
}

// Update reemplaza los datos editables. Solo el organizador puede hacerlo.
func (s *MeetingService) Update(ctx context.Context, organizerID, meetingID string, input MeetingInput) (domain.Meeting, error) {
	if s.meetings == nil || s.swipes == nil {
		return domain.Meeting{}, errors.New("meeting service not configured")
	}
	organizerID = strings.TrimSpace(organizerID)
	existing, err := s.meetings.GetByID(ctx, strings.TrimSpace(meetingID))
	if errors.Is(err, repository.ErrNotFound) {
		return domain.Meeting{}, ErrMeetingNotFound
	}
	if err != nil {
		return domain.Meeting{}, fmt.Errorf("load meeting: %w", err)
	}
	if existing.OrganizerID != organizerID {
		return domain.Meeting{}, ErrMeetingForbidden
	}

	meeting, err := s.build(ctx, organizerID, input)
	if err != nil {
		return domain.Meeting{}, err
	}
	meeting.ID = existing.ID
	meeting.CreatedAt = existing.CreatedAt
	meeting.UpdatedAt = s.now()

	err = s.meetings.Update(ctx, meeting)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.Meeting{}, ErrMeetingNotFound
	}
	if err != nil {
		return domain.Meeting{}, fmt.Errorf("update meeting: %w", err)
	}
	s.logger.Info("meeting updated", zap.String("meeting_id", meeting.ID))
	return meeting, nil
}

// ListDay devuelve las reuniones de userID que empiezan el dia calendario de
// day en loc. Sin loc se usa UTC.
func (s *MeetingService) ListDay(ctx context.Context, userID string, day time.Time, loc *time.Location) ([]domain.Meeting, error) {
	if s.meetings == nil {
		return nil, errors.New("meeting service not configured")
	}
	if loc == nil {
		loc = time.UTC
	}
	day = day.In(loc)
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 1)

	meetings, err := s.meetings.ListForUser(ctx, strings.TrimSpace(userID), start, end)
	if err != nil {
		return nil, fmt.Errorf("list meetings: %w", err)
	}
	if meetings == nil {
		meetings = []domain.Meeting{}
	}
	return meetings, nil
}

// build valida el input y comprueba que cada asistente tenga match con el organizador.
func (s *MeetingService) build(ctx context.Context, organizerID string, input MeetingInput) (domain.Meeting, error) {
	if organizerID == "" {
		return domain.Meeting{}, ErrProfileNotFound
	}
	m := domain.Meeting{
		OrganizerID:     organizerID,
		Category:        strings.TrimSpace(input.Category),
		Subject:         strings.TrimSpace(input.Subject),
		Online:          input.Online,
		Location:        strings.TrimSpace(input.Location),
		MeetLink:        strings.TrimSpace(input.MeetLink),
		From:            input.From.UTC(),
		To:              input.To.UTC(),
		ReminderMinutes: input.ReminderMinutes,
	}
	if m.Category == "" || m.Subject == "" {
		return domain.Meeting{}, fmt.Errorf("%w: category and subject are required", ErrInvalidMeeting)
	}
	if m.Online {
		m.Location = domain.OnlineLocation
	} else if m.Location == "" {
		return domain.Meeting{}, fmt.Errorf("%w: location is required for in-person meetings", ErrInvalidMeeting)
	}
	if input.From.IsZero() || input.To.IsZero() || !m.To.After(m.From) {
		return domain.Meeting{}, fmt.Errorf("%w: end must be after start", ErrInvalidMeeting)
	}
	if m.ReminderMinutes == 0 {
		m.ReminderMinutes = DefaultReminderMinutes
	}
	if !domain.ValidReminder(m.ReminderMinutes) {
		return domain.Meeting{}, fmt.Errorf("%w: reminder must be one of %v minutes", ErrInvalidMeeting, domain.ReminderOptions)
	}

	attendees := make([]string, 0, len(input.Attendees))
	for _, id := range domain.NormalizeTags(input.Attendees) {
		if id != organizerID {
			attendees = append(attendees, id)
		}
	}
	if len(attendees) == 0 {
		return domain.Meeting{}, fmt.Errorf("%w: at least one attendee is required", ErrInvalidMeeting)
	}
	for _, id := range attendees {
		matched, err := s.swipes.HasMatch(ctx, organizerID, id)
		if err != nil {
			return domain.Meeting{}, fmt.Errorf("check match: %w", err)
		}
		if !matched {
			return domain.Meeting{}, fmt.Errorf("%w: %s", ErrNotMatched, id)
		}
	}
	m.Attendees = attendees
	return m, nil
}
