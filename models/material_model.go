package models

import (
	"time"

	"github.com/google/uuid"
)

type Material struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	SessionID  uuid.UUID `gorm:"not null;index" json:"session_id"`
	FileName   string    `gorm:"size:255;not null" json:"file_name"`
	FileURL    string    `gorm:"type:text;not null" json:"file_url"`
	UploadedAt time.Time `json:"uploaded_at"`

	Session Session `gorm:"foreignkey:SessionID" json:"-"`
}
