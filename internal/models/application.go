package models

import (
	"time"

	"github.com/google/uuid"
)

type ApplicationStatus string

const (
	ApplicationPending      ApplicationStatus = "pending"
	ApplicationInterviewing ApplicationStatus = "interviewing"
	ApplicationReview       ApplicationStatus = "review"
	ApplicationShortlisted  ApplicationStatus = "shortlisted"
	ApplicationRejected     ApplicationStatus = "rejected"
)

type Application struct {
	ID          uuid.UUID         `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	JobID       uuid.UUID         `gorm:"type:uuid;not null" json:"job_id"`
	CandidateID uuid.UUID         `gorm:"type:uuid;not null" json:"candidate_id"`
	Status      ApplicationStatus `gorm:"type:text;not null;default:'pending'" json:"status"`
	CreatedAt   time.Time         `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"type:timestamp;default:now()" json:"updated_at"`

	// Relations
	Job       Job     `gorm:"foreignKey:JobID" json:"-"`
	Candidate Profile `gorm:"foreignKey:CandidateID" json:"-"`
}

func (Application) TableName() string {
	return "applications"
}
