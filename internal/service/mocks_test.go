package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"swapwise/internal/domain"
	"swapwise/internal/repository"
)

type mockProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]domain.Profile
	order    []string
	getErr   error
}

func newMockProfileRepo(profiles ...domain.Profile) *mockProfileRepo {
	m := &mockProfileRepo{profiles: make(map[string]domain.Profile)}
	for _, p := range profiles {
		_ = m.Upsert(context.Background(), p)
	}
	return m
}

func (m *mockProfileRepo) Upsert(_ context.Context, profile domain.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.profiles[profile.ID]; !ok {
		m.order = append(m.order, profile.ID)
	}
	m.profiles[profile.ID] = profile
	return nil
}

func (m *mockProfileRepo) GetByID(_ context.Context, id string) (domain.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return domain.Profile{}, m.getErr
	}
	p, ok := m.profiles[id]
	if !ok {
		return domain.Profile{}, repository.ErrNotFound
	}
	return p, nil
}

func (m *mockProfileRepo) ListAll(_ context.Context) ([]domain.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Profile, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.profiles[id])
	}
	return out, nil
}

type mockSwipeRepo struct {
	mu      sync.Mutex
	likes   map[[2]string]domain.Like
	matches map[[2]string]domain.Match
}

func newMockSwipeRepo() *mockSwipeRepo {
	return &mockSwipeRepo{
		likes:   make(map[[2]string]domain.Like),
		matches: make(map[[2]string]domain.Match),
	}
}

func (m *mockSwipeRepo) CreateLike(_ context.Context, like domain.Like) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := [2]string{like.FromUserID, like.ToUserID}
	if _, ok := m.likes[key]; !ok {
		m.likes[key] = like
	}
	return nil
}

func (m *mockSwipeRepo) HasLike(_ context.Context, fromID, toID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.likes[[2]string{fromID, toID}]
	return ok, nil
}

func (m *mockSwipeRepo) LikedBy(_ context.Context, fromID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []string
	for key := range m.likes {
		if key[0] == fromID {
			ids = append(ids, key[1])
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (m *mockSwipeRepo) CreateMatch(_ context.Context, match domain.Match) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, b := domain.OrderedPair(match.UserA, match.UserB)
	key := [2]string{a, b}
	if _, ok := m.matches[key]; ok {
		return false, nil
	}
	match.UserA, match.UserB = a, b
	m.matches[key] = match
	return true, nil
}

func (m *mockSwipeRepo) ListMatches(_ context.Context, userID string) ([]domain.Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Match
	for _, match := range m.matches {
		if match.UserA == userID || match.UserB == userID {
			out = append(out, match)
		}
	}
	return out, nil
}

func (m *mockSwipeRepo) HasMatch(_ context.Context, a, b string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, b = domain.OrderedPair(a, b)
	_, ok := m.matches[[2]string{a, b}]
	return ok, nil
}

// matchPair crea el match directamente, sin pasar por likes.
func (m *mockSwipeRepo) matchPair(a, b string) {
	_, _ = m.CreateMatch(context.Background(), domain.Match{ID: a + "-" + b, UserA: a, UserB: b})
}

// mockRatingRepo recalcula el promedio sobre el mismo mockProfileRepo.
type mockRatingRepo struct {
	mu       sync.Mutex
	profiles *mockProfileRepo
	scores   map[[2]string]float64
}

func newMockRatingRepo(profiles *mockProfileRepo) *mockRatingRepo {
	return &mockRatingRepo{profiles: profiles, scores: make(map[[2]string]float64)}
}

func (m *mockRatingRepo) Upsert(ctx context.Context, rating domain.PeerRating) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scores[[2]string{rating.RaterID, rating.TargetID}] = rating.Score
	var sum float64
	var n int
	for key, score := range m.scores {
		if key[1] == rating.TargetID {
			sum += score
			n++
		}
	}
	avg := sum / float64(n)
	p, err := m.profiles.GetByID(ctx, rating.TargetID)
	if err != nil {
		return 0, err
	}
	p.Rating = avg
	return avg, m.profiles.Upsert(ctx, p)
}

type mockMeetingRepo struct {
	mu       sync.Mutex
	meetings map[string]domain.Meeting
}

func newMockMeetingRepo() *mockMeetingRepo {
	return &mockMeetingRepo{meetings: make(map[string]domain.Meeting)}
}

func (m *mockMeetingRepo) Create(_ context.Context, meeting domain.Meeting) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.meetings[meeting.ID] = meeting
	return nil
}

func (m *mockMeetingRepo) Update(_ context.Context, meeting domain.Meeting) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.meetings[meeting.ID]; !ok {
		return repository.ErrNotFound
	}
	m.meetings[meeting.ID] = meeting
	return nil
}

func (m *mockMeetingRepo) GetByID(_ context.Context, id string) (domain.Meeting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	meeting, ok := m.meetings[id]
	if !ok {
		return domain.Meeting{}, repository.ErrNotFound
	}
	return meeting, nil
}

func (m *mockMeetingRepo) ListForUser(_ context.Context, userID string, from, to time.Time) ([]domain.Meeting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Meeting
	for _, meeting := range m.meetings {
		if meeting.Involves(userID) && !meeting.From.Before(from) && meeting.From.Before(to) {
			out = append(out, meeting)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].From.Before(out[j].From) })
	return out, nil
}

type recordingMatchPublisher struct {
	published []domain.Match
	err       error
}

func (r *recordingMatchPublisher) PublishMatch(_ context.Context, match domain.Match) error {
	r.published = append(r.published, match)
	return r.err
}

var errRepoDown = errors.New("repo down")

type staticResolver map[domain.Location]domain.Coordinate

func (s staticResolver) Resolve(_ context.Context, loc domain.Location) (domain.Coordinate, bool) {
	c, ok := s[loc]
	return c, ok
}
