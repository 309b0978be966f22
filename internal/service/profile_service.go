package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"swapwise/internal/domain"
	"swapwise/internal/repository"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrInvalidProfile  = errors.New("invalid profile")
)

// ProfileInput es lo que el usuario puede editar de su perfil. El rating no
// esta: solo cambia por calificaciones de otros (RatingService).
type ProfileInput struct {
	Name     string   `json:"name"`
	Teach    []string `json:"teach"`
	Learn    []string `json:"learn"`
	Hobbies  []string `json:"hobbies"`
	District string   `json:"district"`
	Province string   `json:"province"`
}

// ProfileService es el punto de construccion de perfiles: todo perfil
// persistido sale normalizado.
type ProfileService struct {
	logger   *zap.Logger
	profiles repository.ProfileRepository
	now      func() time.Time
}

func NewProfileService(logger *zap.Logger, profiles repository.ProfileRepository) *ProfileService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileService{
		logger:   logger,
		profiles: profiles,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *ProfileService) Upsert(ctx context.Context, userID string, input ProfileInput) (domain.Profile, error) {
	if s.profiles == nil {
		return domain.Profile{}, errors.New("profile service not configured")
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return domain.Profile{}, ErrInvalidProfile
	}

	existing, err := s.profiles.GetByID(ctx, userID)
	found := err == nil
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return domain.Profile{}, fmt.Errorf("load profile: %w", err)
	}

	// Un perfil nuevo arranca sin rating.
	var rating float64
	if found {
		rating = existing.Rating
	}
	profile := domain.NewProfile(userID, input.Teach, input.Learn, input.Hobbies, rating,
		domain.Location{District: input.District, Province: input.Province})
	profile.Name = strings.TrimSpace(input.Name)

	now := s.now()
	profile.CreatedAt = now
	profile.UpdatedAt = now
	if found {
		profile.CreatedAt = existing.CreatedAt
	}

	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return domain.Profile{}, fmt.Errorf("upsert profile: %w", err)
	}
	s.logger.Info("profile saved",
		zap.String("user_id", userID),
		zap.Int("teach", len(profile.Teach)),
		zap.Int("learn", len(profile.Learn)),
	)
	return profile, nil
}

func (s *ProfileService) Get(ctx context.Context, userID string) (domain.Profile, error) {
	if s.profiles == nil {
		return domain.Profile{}, errors.New("profile service not configured")
	}
	profile, err := s.profiles.GetByID(ctx, strings.TrimSpace(userID))
	if errors.Is(err, repository.ErrNotFound) {
		return domain.Profile{}, ErrProfileNotFound
	}
	if err != nil {
		return domain.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	return profile, nil
}
