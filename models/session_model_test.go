package models

import (
	"testing"
	"time"
)

func TestSessionTransitions(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{SessionScheduled, SessionStarted, true},
		{SessionScheduled, SessionCancelled, true},
		{SessionScheduled, SessionCompleted, false},
		{SessionStarted, SessionCompleted, true},
		{SessionStarted, SessionCancelled, true},
		{SessionStarted, SessionScheduled, false},
		{SessionCompleted, SessionCancelled, false},
		{SessionCancelled, SessionStarted, false},
	}

	for _, tc := range cases {
		if got := SessionCanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("SessionCanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestSessionOverlaps(t *testing.T) {
	base := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	session := Session{ScheduledAt: base, DurationMinutes: 60}

	cases := []struct {
		name     string
		startAt  time.Time
		duration int
		want     bool
	}{
		{"identical window", base, 60, true},
		{"starts mid-session", base.Add(30 * time.Minute), 60, true},
		{"ends mid-session", base.Add(-30 * time.Minute), 60, true},
		{"fully inside", base.Add(15 * time.Minute), 30, true},
		{"fully covering", base.Add(-30 * time.Minute), 180, true},
		{"back to back after", base.Add(60 * time.Minute), 60, false},
		{"back to back before", base.Add(-60 * time.Minute), 60, false},
		{"well clear", base.Add(3 * time.Hour), 60, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := session.Overlaps(tc.startAt, tc.duration); got != tc.want {
				t.Errorf("Overlaps(%v, %d) = %v, want %v", tc.startAt, tc.duration, got, tc.want)
			}
		})
	}
}

func TestSessionSweptOnCancel(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

	cases := []struct {
		name        string
		scheduledAt time.Time
		status      string
		want        bool
	}{
		{"future scheduled", now.Add(24 * time.Hour), SessionScheduled, true},
		{"future started", now.Add(time.Hour), SessionStarted, true},
		{"future completed", now.Add(24 * time.Hour), SessionCompleted, false},
		{"future cancelled", now.Add(24 * time.Hour), SessionCancelled, false},
		{"past scheduled", now.Add(-time.Hour), SessionScheduled, false},
		{"past completed", now.Add(-24 * time.Hour), SessionCompleted, false},
		{"exactly now", now, SessionScheduled, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := Session{ScheduledAt: tc.scheduledAt, Status: tc.status}
			if got := s.SweptOnCancel(now); got != tc.want {
				t.Errorf("SweptOnCancel(%v) = %v, want %v", tc.scheduledAt, got, tc.want)
			}
		})
	}
}

func TestSessionEndsAt(t *testing.T) {
	s := Session{
		ScheduledAt:     time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC),
		DurationMinutes: 45,
	}
	want := time.Date(2025, 3, 10, 14, 45, 0, 0, time.UTC)
	if got := s.EndsAt(); !got.Equal(want) {
		t.Errorf("EndsAt() = %v, want %v", got, want)
	}
}
