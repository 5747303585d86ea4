package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	SessionScheduled = "scheduled"
	SessionStarted   = "started"
	SessionCompleted = "completed"
	SessionCancelled = "cancelled"
)

type Session struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	EnrollmentID uuid.UUID `gorm:"not null;index" json:"enrollment_id"`
	CourseID     uuid.UUID `gorm:"not null" json:"course_id"`
	TeacherID    uuid.UUID `gorm:"not null;index" json:"teacher_id"`
	StudentID    uuid.UUID `gorm:"not null;index" json:"student_id"`

	ScheduledAt     time.Time `gorm:"not null" json:"scheduled_at"`
	DurationMinutes int       `gorm:"not null;default:60" json:"duration_minutes"`
	Status          string    `gorm:"size:20;not null;default:'scheduled'" json:"status"`

	MeetingPlatform *string `gorm:"size:50" json:"meeting_platform"`
	MeetingURL      *string `gorm:"size:255" json:"meeting_url"`
	MeetingID       *string `gorm:"size:255" json:"meeting_id"`
	MeetingPassword *string `gorm:"size:255" json:"-"`

	Materials []Material `gorm:"foreignkey:SessionID" json:"materials,omitempty"`

	Enrollment Enrollment `gorm:"foreignkey:EnrollmentID" json:"-"`
	Student    User       `gorm:"foreignkey:StudentID" json:"student,omitempty"`
	Teacher    User       `gorm:"foreignkey:TeacherID" json:"teacher,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

var sessionTransitions = map[[2]string]bool{
	{SessionScheduled, SessionStarted}:   true,
	{SessionScheduled, SessionCancelled}: true,
	{SessionStarted, SessionCompleted}:   true,
	{SessionStarted, SessionCancelled}:   true,
}

// SessionCanTransition reports whether the status change is allowed.
// Completed and cancelled are terminal.
func SessionCanTransition(from, to string) bool {
	return sessionTransitions[[2]string{from, to}]
}

// EndsAt is the exclusive end of the session's time window.
func (s *Session) EndsAt() time.Time {
	return s.ScheduledAt.Add(time.Duration(s.DurationMinutes) * time.Minute)
}

// Overlaps reports whether two sessions collide in time. Windows are
// half-open, so back-to-back sessions do not conflict.
func (s *Session) Overlaps(startAt time.Time, durationMinutes int) bool {
	end := startAt.Add(time.Duration(durationMinutes) * time.Minute)
	return s.ScheduledAt.Before(end) && startAt.Before(s.EndsAt())
}

// SweptOnCancel reports whether cancelling the enrollment takes this
// session with it. Only future sessions that have not already reached a
// terminal status are swept; everything else stays as history.
func (s *Session) SweptOnCancel(now time.Time) bool {
	if s.Status == SessionCompleted || s.Status == SessionCancelled {
		return false
	}
	return s.ScheduledAt.After(now)
}
