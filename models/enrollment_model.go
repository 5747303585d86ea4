package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	EnrollmentTrial     = "trial"
	EnrollmentActive    = "active"
	EnrollmentCompleted = "completed"
	EnrollmentCancelled = "cancelled"
)

// Enrollment binds a student to a course once the teacher has accepted
// their request. The partial unique index keeps at most one live (trial
// or active) enrollment per (student, course); completed and cancelled
// rows are retained as history.
type Enrollment struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	StudentID uuid.UUID `gorm:"not null;index:idx_enrollment_live,unique,where:status = 'trial' OR status = 'active'" json:"student_id"`
	TeacherID uuid.UUID `gorm:"not null;index" json:"teacher_id"`
	CourseID  uuid.UUID `gorm:"not null;index:idx_enrollment_live,unique,where:status = 'trial' OR status = 'active'" json:"course_id"`
	Status    string    `gorm:"size:20;not null;default:'trial'" json:"status"`

	TrialEndsAt       time.Time `gorm:"not null" json:"trial_ends_at"`
	SessionsCompleted int       `gorm:"not null;default:0" json:"sessions_completed"`
	TotalPaid         float64   `gorm:"type:numeric(10,2);not null;default:0.00" json:"total_paid"`

	Student User   `gorm:"foreignkey:StudentID" json:"student,omitempty"`
	Teacher User   `gorm:"foreignkey:TeacherID" json:"teacher,omitempty"`
	Course  Course `gorm:"foreignkey:CourseID" json:"course,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

var enrollmentTransitions = map[[2]string]bool{
	{EnrollmentTrial, EnrollmentActive}:     true, // payment settled
	{EnrollmentTrial, EnrollmentCancelled}:  true, // trial lapsed or cancelled
	{EnrollmentActive, EnrollmentCompleted}: true, // all sessions done
	{EnrollmentActive, EnrollmentCancelled}: true,
}

// EnrollmentCanTransition reports whether the status change is allowed by
// the enrollment state machine. Completed and cancelled are terminal.
func EnrollmentCanTransition(from, to string) bool {
	return enrollmentTransitions[[2]string{from, to}]
}

// Live reports whether the enrollment still admits payments and sessions.
func (e *Enrollment) Live() bool {
	return e.Status == EnrollmentTrial || e.Status == EnrollmentActive
}

// TrialOutcome evaluates the lazy trial-expiry rule: once the trial
// deadline has passed, the enrollment becomes active if paid coverage for
// at least one future session exists, otherwise it lapses to cancelled.
// It returns the current status unchanged when nothing is due, so callers
// may apply it on every read.
func (e *Enrollment) TrialOutcome(now time.Time, paidSessions int) string {
	if e.Status != EnrollmentTrial || now.Before(e.TrialEndsAt) {
		return e.Status
	}
	if paidSessions > e.SessionsCompleted {
		return EnrollmentActive
	}
	return EnrollmentCancelled
}

// CancellableBy reports whether the actor may cancel this enrollment.
func (e *Enrollment) CancellableBy(actorID uuid.UUID, role string) bool {
	return role == RoleAdmin || actorID == e.StudentID || actorID == e.TeacherID
}
