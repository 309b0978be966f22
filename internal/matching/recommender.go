package matching

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"swapwise/internal/domain"
	"swapwise/internal/metrics"
)

const DefaultWorkers = 8

// ErrInvalidRequester se devuelve cuando el solicitante no tiene id.
var ErrInvalidRequester = errors.New("invalid requester profile")

// Recommender ejecuta filtro, scoring concurrente acotado y ranking.
type Recommender struct {
	scorer  *Scorer
	workers int
	logger  *zap.Logger
}

func NewRecommender(scorer *Scorer, workers int, logger *zap.Logger) *Recommender {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recommender{scorer: scorer, workers: workers, logger: logger}
}

// Recommend devuelve los candidatos con interes mutuo ordenados por score.
// El llamador debe excluir al propio solicitante de candidates.
func (r *Recommender) Recommend(ctx context.Context, requester domain.Profile, candidates []domain.Profile) ([]domain.ScoredCandidate, error) {
	if strings.TrimSpace(requester.ID) == "" {
		return nil, ErrInvalidRequester
	}
	if r.scorer == nil {
		return nil, errors.New("recommender not configured")
	}
	start := time.Now()
	defer func() { metrics.RecommendDuration.Observe(time.Since(start).Seconds()) }()

	mutual := FilterMutual(requester, candidates)
	if len(mutual) == 0 {
		r.logger.Debug("no mutual matches",
			zap.String("requester_id", requester.ID),
			zap.Int("candidates", len(candidates)),
		)
		return []domain.ScoredCandidate{}, nil
	}

	scored := make([]domain.ScoredCandidate, len(mutual))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, candidate := range mutual {
		g.Go(func() error {
			scored[i] = r.scorer.Score(gctx, requester, candidate)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	metrics.CandidatesScored.Add(float64(len(scored)))

	ranked := Rank(scored)
	r.logger.Debug("recommendations computed",
		zap.String("requester_id", requester.ID),
		zap.Int("candidates", len(candidates)),
		zap.Int("mutual", len(mutual)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return ranked, nil
}
