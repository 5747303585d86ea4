package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RequestPending  = "pending"
	RequestAccepted = "accepted"
	RequestRejected = "rejected"
)

type CourseRequest struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	StudentID uuid.UUID `gorm:"not null;index:idx_request_open,unique,where:status = 'pending' OR status = 'accepted'" json:"student_id"`
	TeacherID uuid.UUID `gorm:"not null;index" json:"teacher_id"`
	CourseID  uuid.UUID `gorm:"not null;index:idx_request_open,unique,where:status = 'pending' OR status = 'accepted'" json:"course_id"`
	Message   string    `gorm:"type:text" json:"message"`
	Status    string    `gorm:"size:20;not null;default:'pending'" json:"status"`

	Student User   `gorm:"foreignkey:StudentID" json:"student,omitempty"`
	Teacher User   `gorm:"foreignkey:TeacherID" json:"teacher,omitempty"`
	Course  Course `gorm:"foreignkey:CourseID" json:"course,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Decided reports whether the request has reached a terminal status.
func (r *CourseRequest) Decided() bool {
	return r.Status != RequestPending
}
