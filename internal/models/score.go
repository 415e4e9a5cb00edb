package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type ScoreStatus string

const (
	ScorePassed           ScoreStatus = "passed"
	ScoreUnderReview      ScoreStatus = "under_review"
	ScoreNeedsImprovement ScoreStatus = "needs_improvement"
)

// QuestionFeedback is one per question, in question order.
type QuestionFeedback struct {
	Question string `json:"question"`
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}

type ResumeDetails struct {
	MatchingSkills       []string `json:"matching_skills"`
	GapSkills            []string `json:"gap_skills"`
	SkillMatchPercentage int      `json:"skill_match_percentage"`
}

// ScoreWeights come from system settings. The pipeline divides by 100
// regardless of whether the weights sum to 100.
type ScoreWeights struct {
	Resume    int `json:"resume"`
	Interview int `json:"interview"`
}

// ScoreFeedback is the full audit payload stored next to the numeric scores.
type ScoreFeedback struct {
	QuestionFeedback []QuestionFeedback `json:"question_feedback"`
	ResumeDetails    ResumeDetails      `json:"resume_details"`
	Weights          ScoreWeights       `json:"weights"`
}

func (f ScoreFeedback) Value() (driver.Value, error) {
	return json.Marshal(f)
}

func (f *ScoreFeedback) Scan(value interface{}) error {
	if value == nil {
		*f = ScoreFeedback{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, f)
	case string:
		return json.Unmarshal([]byte(v), f)
	default:
		return fmt.Errorf("unsupported type for ScoreFeedback: %T", value)
	}
}

type Score struct {
	ID             uuid.UUID     `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	InterviewID    uuid.UUID     `gorm:"type:uuid;not null" json:"interview_id"`
	ResumeScore    int           `gorm:"not null" json:"resume_score"`
	InterviewScore int           `gorm:"not null" json:"interview_score"`
	TotalScore     int           `gorm:"not null" json:"total_score"`
	Status         ScoreStatus   `gorm:"type:text;not null" json:"status"`
	Feedback       ScoreFeedback `gorm:"type:jsonb" json:"feedback"`
	CreatedAt      time.Time     `gorm:"type:timestamp;default:now()" json:"created_at"`

	// Relations
	Interview Interview `gorm:"foreignKey:InterviewID" json:"-"`
}

func (Score) TableName() string {
	return "scores"
}
