package models

import (
	"time"

	"github.com/google/uuid"
)

type Course struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TeacherID   uuid.UUID `gorm:"not null;index" json:"teacher_id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description *string   `gorm:"type:text" json:"description"`
	Subject     string    `gorm:"size:100;not null" json:"subject"`
	GradeLevel  string    `gorm:"size:50;not null" json:"grade_level"`

	PricePerSession float64 `gorm:"type:numeric(10,2);not null" json:"price_per_session"`
	Currency        string  `gorm:"size:3;not null;default:'USD'" json:"currency"`
	FreeTrialDays   int     `gorm:"not null;default:7" json:"free_trial_days"`
	MaxStudents     int     `gorm:"not null;default:10" json:"max_students"`

	// TotalSessions is the completion policy: when a student's completed
	// session count reaches it, their enrollment flips to completed.
	// Null means the enrollment never auto-completes.
	TotalSessions *int `json:"total_sessions"`

	Teacher User `gorm:"foreignkey:TeacherID" json:"teacher,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TrialEnd derives the trial deadline for an enrollment created at the
// given instant.
func (c *Course) TrialEnd(createdAt time.Time) time.Time {
	return createdAt.Add(time.Duration(c.FreeTrialDays) * 24 * time.Hour)
}

// AtCapacity reports whether the given live enrollment count fills the
// course.
func (c *Course) AtCapacity(live int64) bool {
	return live >= int64(c.MaxStudents)
}
