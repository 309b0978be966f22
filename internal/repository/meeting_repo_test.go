package repository

import (
	"testing"
	"time"
)

func TestScanMeeting_NilAttendeesBecomeEmpty(t *testing.T) {
	from := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	row := fakeRow{values: []any{
		"m1", "alice", "Music", "Guitar basics", true, "Online", "https://meet.example/abc",
		from, from.Add(time.Hour), 15, nil, from, from,
	}}

	m, err := scanMeeting(row)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if m.Attendees == nil || len(m.Attendees) != 0 {
		t.Fatalf("expected empty attendees, got %#v", m.Attendees)
	}
	if !m.Online || m.ReminderMinutes != 15 || !m.To.After(m.From) {
		t.Fatalf("unexpected meeting: %+v", m)
	}
}
