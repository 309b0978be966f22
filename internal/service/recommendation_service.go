package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"swapwise/internal/domain"
	"swapwise/internal/repository"
)

// Recommender es el pipeline de matching (filtro, scoring y ranking).
type Recommender interface {
	Recommend(ctx context.Context, requester domain.Profile, candidates []domain.Profile) ([]domain.ScoredCandidate, error)
}

// RecommendationService arma el mazo de candidatos de un usuario.
type RecommendationService struct {
	logger      *zap.Logger
	profiles    repository.ProfileRepository
	swipes      repository.SwipeRepository
	recommender Recommender
}

func NewRecommendationService(logger *zap.Logger, profiles repository.ProfileRepository, swipes repository.SwipeRepository, recommender Recommender) *RecommendationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecommendationService{
		logger:      logger,
		profiles:    profiles,
		swipes:      swipes,
		recommender: recommender,
	}
}

// Recommend devuelve candidatos rankeados para userID, sin el propio usuario
// ni los que ya recibieron su like. limit <= 0 no recorta.
func (s *RecommendationService) Recommend(ctx context.Context, userID string, limit int) ([]domain.ScoredCandidate, error) {
	if s.profiles == nil || s.recommender == nil {
		return nil, errors.New("recommendation service not configured")
	}
	requester, err := s.profiles.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load requester: %w", err)
	}

	all, err := s.profiles.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	exclude := map[string]struct{}{requester.ID: {}}
	if s.swipes != nil {
		liked, err := s.swipes.LikedBy(ctx, requester.ID)
		if err != nil {
			return nil, fmt.Errorf("list likes: %w", err)
		}
		for _, id := range liked {
			exclude[id] = struct{}{}
		}
	}

	candidates := make([]domain.Profile, 0, len(all))
	for _, p := range all {
		if _, skip := exclude[p.ID]; skip {
			continue
		}
		candidates = append(candidates, p)
	}

	ranked, err := s.recommender.Recommend(ctx, requester, candidates)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	s.logger.Info("recommendations served",
		zap.String("user_id", requester.ID),
		zap.Int("candidates", len(candidates)),
		zap.Int("returned", len(ranked)),
	)
	return ranked, nil
}
