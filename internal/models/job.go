package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type ExperienceLevel string

const (
	LevelJunior ExperienceLevel = "junior"
	LevelMid    ExperienceLevel = "mid"
	LevelSenior ExperienceLevel = "senior"
	LevelLead   ExperienceLevel = "lead"
)

type Job struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title           string          `gorm:"type:text" json:"title"`
	Description     string          `gorm:"type:text" json:"description"`
	Skills          pq.StringArray  `gorm:"type:text[]" json:"skills"`
	ExperienceLevel ExperienceLevel `gorm:"type:text;default:'mid'" json:"experience_level"`
	CreatedAt       time.Time       `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (Job) TableName() string {
	return "jobs"
}
