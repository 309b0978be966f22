package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"swapwise/internal/domain"
)

func TestProfileService_UpsertNormalizes(t *testing.T) {
	repo := newMockProfileRepo()
	svc := NewProfileService(zap.NewNop(), repo)

	p, err := svc.Upsert(context.Background(), " u1 ", ProfileInput{
		Name:     " Asha ",
		Teach:    []string{"Math", " Math", ""},
		Learn:    nil,
		District: " Kathmandu ",
		Province: "Bagmati",
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if p.ID != "u1" || p.Name != "Asha" {
		t.Fatalf("unexpected identity %+v", p)
	}
	if len(p.Teach) != 1 || p.Learn == nil {
		t.Fatalf("expected normalized sets, got teach=%v learn=%#v", p.Teach, p.Learn)
	}
	if p.Rating != 0 {
		t.Fatalf("expected new profile without rating, got %v", p.Rating)
	}
	if p.Location.District != "Kathmandu" {
		t.Fatalf("expected trimmed district, got %q", p.Location.District)
	}

	stored, err := svc.Get(context.Background(), "u1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Name != "Asha" {
		t.Fatalf("unexpected stored profile %+v", stored)
	}
}

func TestProfileService_UpsertKeepsEarnedRating(t *testing.T) {
	repo := newMockProfileRepo(domain.Profile{ID: "u1", Rating: 3.5})
	svc := NewProfileService(zap.NewNop(), repo)

	p, err := svc.Upsert(context.Background(), "u1", ProfileInput{Name: "Asha", Teach: []string{"Math"}})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if p.Rating != 3.5 {
		t.Fatalf("expected stored rating 3.5 to survive the edit, got %v", p.Rating)
	}
	stored, _ := repo.GetByID(context.Background(), "u1")
	if stored.Rating != 3.5 {
		t.Fatalf("expected repo rating 3.5, got %v", stored.Rating)
	}
}

func TestProfileService_UpsertKeepsCreatedAt(t *testing.T) {
	repo := newMockProfileRepo()
	svc := NewProfileService(zap.NewNop(), repo)
	first := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return first }

	if _, err := svc.Upsert(context.Background(), "u1", ProfileInput{Name: "a"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	svc.now = func() time.Time { return first.Add(time.Hour) }
	p, err := svc.Upsert(context.Background(), "u1", ProfileInput{Name: "b"})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if !p.CreatedAt.Equal(first) || !p.UpdatedAt.Equal(first.Add(time.Hour)) {
		t.Fatalf("unexpected timestamps created=%v updated=%v", p.CreatedAt, p.UpdatedAt)
	}
}

func TestProfileService_Errors(t *testing.T) {
	repo := newMockProfileRepo()
	svc := NewProfileService(zap.NewNop(), repo)

	if _, err := svc.Upsert(context.Background(), "  ", ProfileInput{}); !errors.Is(err, ErrInvalidProfile) {
		t.Fatalf("expected ErrInvalidProfile, got %v", err)
	}
	if _, err := svc.Get(context.Background(), "ghost"); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
	repo.getErr = errRepoDown
	if _, err := svc.Upsert(context.Background(), "u1", ProfileInput{}); !errors.Is(err, errRepoDown) {
		t.Fatalf("expected repo error, got %v", err)
	}
}
