package repository

import (
	"errors"
	"testing"
	"time"

	"swapwise/internal/domain"
)

type fakeRow struct {
	values []any
	err    error
}

func (f fakeRow) Scan(dest ...any) error {
	if f.err != nil {
		return f.err
	}
	if len(dest) != len(f.values) {
		return errors.New("column count mismatch")
	}
	for i, d := range dest {
		switch ptr := d.(type) {
		case *string:
			*ptr = f.values[i].(string)
		case **string:
			if v, ok := f.values[i].(string); ok {
				*ptr = &v
			}
		case *[]string:
			if v, ok := f.values[i].([]string); ok {
				*ptr = v
			}
		case **float64:
			if v, ok := f.values[i].(float64); ok {
				*ptr = &v
			}
		case *bool:
			*ptr = f.values[i].(bool)
		case *int:
			*ptr = f.values[i].(int)
		case *time.Time:
			*ptr = f.values[i].(time.Time)
		default:
			return errors.New("unexpected destination type")
		}
	}
	return nil
}

func TestScanProfile_NormalizesNulls(t *testing.T) {
	now := time.Now().UTC()
	row := fakeRow{values: []any{
		"u1", nil, nil, []string{"Guitar", "Guitar"}, nil, nil, "Kathmandu", nil, now, now,
	}}

	p, err := scanProfile(row)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if p.ID != "u1" || p.Name != "" {
		t.Fatalf("unexpected identity: %+v", p)
	}
	if p.Teach == nil || len(p.Teach) != 0 {
		t.Fatalf("expected empty teach, got %#v", p.Teach)
	}
	if len(p.Learn) != 1 || p.Learn[0] != "Guitar" {
		t.Fatalf("expected deduplicated learn, got %v", p.Learn)
	}
	if p.Rating != 0 {
		t.Fatalf("expected unrated, got %v", p.Rating)
	}
	if p.Location != (domain.Location{District: "Kathmandu"}) || !p.Location.IsZero() {
		t.Fatalf("unexpected location %+v", p.Location)
	}
}

func TestScanProfile_FullRow(t *testing.T) {
	now := time.Now().UTC()
	row := fakeRow{values: []any{
		"u2", "Asha", []string{"Math"}, []string{"Guitar"}, []string{"Chess"}, 4.5, "Kaski", "Gandaki", now, now,
	}}

	p, err := scanProfile(row)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if p.Name != "Asha" || p.Rating != 4.5 || p.Location.Province != "Gandaki" {
		t.Fatalf("unexpected profile: %+v", p)
	}
}

func TestScanProfile_PropagatesError(t *testing.T) {
	want := errors.New("boom")
	if _, err := scanProfile(fakeRow{err: want}); !errors.Is(err, want) {
		t.Fatalf("expected scan error, got %v", err)
	}
}
