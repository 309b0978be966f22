package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"swapwise/internal/domain"
	"swapwise/internal/matching"
)

var (
	kathmandu = domain.Location{District: "Kathmandu", Province: "Bagmati"}
	pokhara   = domain.Location{District: "Kaski", Province: "Gandaki"}
)

func newRecommendationFixture(profiles ...domain.Profile) (*RecommendationService, *mockProfileRepo, *mockSwipeRepo) {
	repo := newMockProfileRepo(profiles...)
	swipes := newMockSwipeRepo()
	resolver := staticResolver{
		kathmandu: {Latitude: 27.7172, Longitude: 85.3240},
		pokhara:   {Latitude: 28.2096, Longitude: 83.9856},
	}
	rec := matching.NewRecommender(matching.NewScorer(resolver), 2, zap.NewNop())
	return NewRecommendationService(zap.NewNop(), repo, swipes, rec), repo, swipes
}

func TestRecommendationService_RanksMutualCandidates(t *testing.T) {
	svc, _, _ := newRecommendationFixture(
		domain.NewProfile("me", []string{"Math"}, []string{"Guitar"}, []string{"Chess"}, 4, kathmandu),
		domain.NewProfile("near", []string{"Guitar"}, []string{"Math"}, []string{"Chess"}, 4, kathmandu),
		domain.NewProfile("far", []string{"Guitar"}, []string{"Math"}, nil, 3, pokhara),
		domain.NewProfile("nomatch", []string{"Cooking"}, []string{"Math"}, []string{"Chess"}, 5, kathmandu),
	)

	got, err := svc.Recommend(context.Background(), "me", 0)
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(got))
	}
	if got[0].Profile.ID != "near" || got[1].Profile.ID != "far" {
		t.Fatalf("unexpected order: %s, %s", got[0].Profile.ID, got[1].Profile.ID)
	}
}

func TestRecommendationService_ExcludesLikedAndAppliesLimit(t *testing.T) {
	svc, _, swipes := newRecommendationFixture(
		domain.NewProfile("me", []string{"Math"}, []string{"Guitar"}, nil, 4, kathmandu),
		domain.NewProfile("a", []string{"Guitar"}, []string{"Math"}, nil, 5, kathmandu),
		domain.NewProfile("b", []string{"Guitar"}, []string{"Math"}, nil, 4, kathmandu),
		domain.NewProfile("c", []string{"Guitar"}, []string{"Math"}, nil, 3, kathmandu),
	)
	_ = swipes.CreateLike(context.Background(), domain.Like{ID: "l1", FromUserID: "me", ToUserID: "a"})

	got, err := svc.Recommend(context.Background(), "me", 1)
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if len(got) != 1 || got[0].Profile.ID != "b" {
		t.Fatalf("expected only b, got %+v", got)
	}
}

func TestRecommendationService_UnknownRequester(t *testing.T) {
	svc, _, _ := newRecommendationFixture()

	if _, err := svc.Recommend(context.Background(), "ghost", 10); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestRecommendationService_RepositoryError(t *testing.T) {
	svc, repo, _ := newRecommendationFixture()
	repo.getErr = errRepoDown

	if _, err := svc.Recommend(context.Background(), "me", 10); !errors.Is(err, errRepoDown) {
		t.Fatalf("expected wrapped repo error, got %v", err)
	}
}
