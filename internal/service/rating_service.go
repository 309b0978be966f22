package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"swapwise/internal/domain"
	"swapwise/internal/repository"
)

var (
	ErrSelfRating    = errors.New("cannot rate own profile")
	ErrInvalidRating = errors.New("invalid rating")
	ErrNotMatched    = errors.New("users are not matched")
)

// RatingService deja que un usuario califique a otro con quien tiene match.
// Es el unico camino que modifica Profile.Rating.
type RatingService struct {
	logger    *zap.Logger
	profiles  repository.ProfileRepository
	swipes    repository.SwipeRepository
	ratings   repository.RatingRepository
	maxRating float64
	now       func() time.Time
}

func NewRatingService(logger *zap.Logger, profiles repository.ProfileRepository, swipes repository.SwipeRepository, ratings repository.RatingRepository, maxRating float64) *RatingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RatingService{
		logger:    logger,
		profiles:  profiles,
		swipes:    swipes,
		ratings:   ratings,
		maxRating: maxRating,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Rate guarda (o reemplaza) la calificacion de raterID a targetID y devuelve
// el nuevo promedio de targetID. score debe estar en [1, maxRating].
func (s *RatingService) Rate(ctx context.Context, raterID, targetID string, score float64) (float64, error) {
	if s.profiles == nil || s.swipes == nil || s.ratings == nil {
		return 0, errors.New("rating service not configured")
	}
	raterID = strings.TrimSpace(raterID)
	targetID = strings.TrimSpace(targetID)
	if raterID == "" || targetID == "" {
		return 0, ErrProfileNotFound
	}
	if raterID == targetID {
		return 0, ErrSelfRating
	}
	if math.IsNaN(score) || score < 1 || (s.maxRating > 0 && score > s.maxRating) {
		return 0, fmt.Errorf("%w: score must be between 1 and %g", ErrInvalidRating, s.maxRating)
	}
	if _, err := s.profiles.GetByID(ctx, targetID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrProfileNotFound
		}
		return 0, fmt.Errorf("load target profile: %w", err)
	}
	matched, err := s.swipes.HasMatch(ctx, raterID, targetID)
	if err != nil {
		return 0, fmt.Errorf("check match: %w", err)
	}
	if !matched {
		return 0, ErrNotMatched
	}

	now := s.now()
	avg, err := s.ratings.Upsert(ctx, domain.PeerRating{
		RaterID:   raterID,
		TargetID:  targetID,
		Score:     score,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if errors.Is(err, repository.ErrNotFound) {
		return 0, ErrProfileNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("save rating: %w", err)
	}
	s.logger.Info("profile rated",
		zap.String("rater_id", raterID),
		zap.String("target_id", targetID),
		zap.Float64("rating", avg),
	)
	return avg, nil
}
