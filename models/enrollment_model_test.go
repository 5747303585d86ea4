package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestEnrollmentTransitions(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{EnrollmentTrial, EnrollmentActive, true},
		{EnrollmentTrial, EnrollmentCancelled, true},
		{EnrollmentTrial, EnrollmentCompleted, false},
		{EnrollmentActive, EnrollmentCompleted, true},
		{EnrollmentActive, EnrollmentCancelled, true},
		{EnrollmentActive, EnrollmentTrial, false},
		{EnrollmentCompleted, EnrollmentCancelled, false},
		{EnrollmentCancelled, EnrollmentActive, false},
		{EnrollmentCancelled, EnrollmentCancelled, false},
	}

	for _, tc := range cases {
		if got := EnrollmentCanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("EnrollmentCanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestTrialOutcome(t *testing.T) {
	now := time.Now()

	cases := []struct {
		name         string
		status       string
		trialEndsAt  time.Time
		completed    int
		paidSessions int
		want         string
	}{
		{"trial still running", EnrollmentTrial, now.Add(24 * time.Hour), 0, 0, EnrollmentTrial},
		{"lapsed without payment", EnrollmentTrial, now.Add(-time.Minute), 0, 0, EnrollmentCancelled},
		{"lapsed with future coverage", EnrollmentTrial, now.Add(-time.Minute), 0, 3, EnrollmentActive},
		{"lapsed with coverage used up", EnrollmentTrial, now.Add(-time.Minute), 3, 3, EnrollmentCancelled},
		{"already active is untouched", EnrollmentActive, now.Add(-time.Hour), 0, 0, EnrollmentActive},
		{"cancelled is untouched", EnrollmentCancelled, now.Add(-time.Hour), 0, 5, EnrollmentCancelled},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := Enrollment{
				Status:            tc.status,
				TrialEndsAt:       tc.trialEndsAt,
				SessionsCompleted: tc.completed,
			}
			if got := e.TrialOutcome(now, tc.paidSessions); got != tc.want {
				t.Errorf("TrialOutcome() = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestCancellableBy(t *testing.T) {
	student := uuid.New()
	teacher := uuid.New()
	stranger := uuid.New()

	e := Enrollment{StudentID: student, TeacherID: teacher}

	if !e.CancellableBy(student, RoleStudent) {
		t.Error("enrolled student should be able to cancel")
	}
	if !e.CancellableBy(teacher, RoleTeacher) {
		t.Error("owning teacher should be able to cancel")
	}
	if !e.CancellableBy(stranger, RoleAdmin) {
		t.Error("admin should be able to cancel")
	}
	if e.CancellableBy(stranger, RoleStudent) {
		t.Error("unrelated student must not be able to cancel")
	}
}

func TestCourseTrialEnd(t *testing.T) {
	course := Course{FreeTrialDays: 7}
	createdAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	want := time.Date(2025, 3, 8, 12, 0, 0, 0, time.UTC)
	if got := course.TrialEnd(createdAt); !got.Equal(want) {
		t.Errorf("TrialEnd() = %v, want %v", got, want)
	}
}

func TestCourseAtCapacity(t *testing.T) {
	course := Course{MaxStudents: 3}

	cases := []struct {
		live int64
		want bool
	}{
		{0, false},
		{2, false},
		{3, true},
		{4, true},
	}

	for _, tc := range cases {
		if got := course.AtCapacity(tc.live); got != tc.want {
			t.Errorf("AtCapacity(%d) = %v, want %v", tc.live, got, tc.want)
		}
	}
}
