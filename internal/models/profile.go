package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Profile is a candidate profile. Resume skills are already extracted into a
// flat list by the ingestion side; this service never parses resume files.
type Profile struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name         string         `gorm:"type:text" json:"name"`
	Email        string         `gorm:"type:text" json:"email"`
	Title        string         `gorm:"type:text" json:"title"`
	Experience   string         `gorm:"type:text" json:"experience"`
	ResumeSkills pq.StringArray `gorm:"type:text[]" json:"resume_skills"`
	CreatedAt    time.Time      `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}
