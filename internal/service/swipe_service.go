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
	ErrSelfLike    = errors.New("cannot like own profile")
	ErrRateLimited = errors.New("rate limited")
)

// DefaultLikesPerMinute aplica cuando no se inyecta un limiter.
const DefaultLikesPerMinute = 60

// MatchPublisher notifica matches nuevos a otros sistemas.
type MatchPublisher interface {
	PublishMatch(ctx context.Context, match domain.Match) error
}

// LikeResult informa si el like cerro un match.
type LikeResult struct {
	Like    domain.Like   `json:"like"`
	Matched bool          `json:"matched"`
	Match   *domain.Match `json:"match,omitempty"`
}

// SwipeService registra likes y detecta likes reciprocos.
type SwipeService struct {
	logger    *zap.Logger
	profiles  repository.ProfileRepository
	swipes    repository.SwipeRepository
	publisher MatchPublisher
	limiter   LikeRateLimiter
	now       func() time.Time
}

func NewSwipeService(logger *zap.Logger, profiles repository.ProfileRepository, swipes repository.SwipeRepository, publisher MatchPublisher, limiter LikeRateLimiter) *SwipeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if limiter == nil {
		limiter = NewLikeRateLimiter(time.Minute, DefaultLikesPerMinute)
	}
	return &SwipeService{
		logger:    logger,
		profiles:  profiles,
		swipes:    swipes,
		publisher: publisher,
		limiter:   limiter,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *SwipeService) Like(ctx context.Context, fromID, toID string) (LikeResult, error) {
	if s.profiles == nil || s.swipes == nil {
		return LikeResult{}, errors.New("swipe service not configured")
	}
	fromID = strings.TrimSpace(fromID)
	toID = strings.TrimSpace(toID)
	if fromID == "" || toID == "" {
		return LikeResult{}, ErrProfileNotFound
	}
	if fromID == toID {
		return LikeResult{}, ErrSelfLike
	}
	if !s.limiter.Allow(ctx, fromID) {
		return LikeResult{}, ErrRateLimited
	}
	if _, err := s.profiles.GetByID(ctx, toID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return LikeResult{}, ErrProfileNotFound
		}
		return LikeResult{}, fmt.Errorf("load target profile: %w", err)
	}

	now := s.now()
	like := domain.Like{
		ID:         uuid.NewString(),
		FromUserID: fromID,
		ToUserID:   toID,
		CreatedAt:  now,
	}
	if err := s.swipes.CreateLike(ctx, like); err != nil {
		return LikeResult{}, fmt.Errorf("create like: %w", err)
	}
	result := LikeResult{Like: like}

	reciprocal, err := s.swipes.HasLike(ctx, toID, fromID)
	if err != nil {
		return LikeResult{}, fmt.Errorf("check reciprocal like: %w", err)
	}
	if !reciprocal {
		return result, nil
	}

	a, b := domain.OrderedPair(fromID, toID)
	match := domain.Match{ID: uuid.NewString(), UserA: a, UserB: b, CreatedAt: now}
	created, err := s.swipes.CreateMatch(ctx, match)
	if err != nil {
		return LikeResult{}, fmt.Errorf("create match: %w", err)
	}
	result.Matched = true
	if !created {
		existing, err := s.findMatch(ctx, a, b)
		if err != nil {
			return LikeResult{}, err
		}
		result.Match = &existing
		return result, nil
	}
	result.Match = &match

	metrics.MatchesCreated.Inc()
	s.logger.Info("match created",
		zap.String("match_id", match.ID),
		zap.String("user_a", a),
		zap.String("user_b", b),
	)
	if s.publisher != nil {
		if err := s.publisher.PublishMatch(ctx, match); err != nil {
			s.logger.Warn("publish match failed", zap.String("match_id", match.ID), zap.Error(err))
		}
	}
	return result, nil
}

// findMatch recupera el match ya persistido del par ordenado (a, b).
func (s *SwipeService) findMatch(ctx context.Context, a, b string) (domain.Match, error) {
	matches, err := s.swipes.ListMatches(ctx, a)
	if err != nil {
		return domain.Match{}, fmt.Errorf("list matches: %w", err)
	}
	for _, m := range matches {
		if m.UserA == a && m.UserB == b {
			return m, nil
		}
	}
	return domain.Match{}, fmt.Errorf("match %s/%s not found after conflict", a, b)
}

func (s *SwipeService) Matches(ctx context.Context, userID string) ([]domain.Match, error) {
	if s.swipes == nil {
		return nil, errors.New("swipe service not configured")
	}
	matches, err := s.swipes.ListMatches(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	if matches == nil {
		matches = []domain.Match{}
	}
	return matches, nil
}
