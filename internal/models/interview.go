package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type QuestionCategory string

const (
	CategoryTechnical      QuestionCategory = "technical"
	CategoryProblemSolving QuestionCategory = "problem_solving"
	CategorySystemDesign   QuestionCategory = "system_design"
	CategoryCommunication  QuestionCategory = "communication"
	CategoryGapAssessment  QuestionCategory = "gap_assessment"
)

// Question uses the short wire keys the AI gateway is prompted to return,
// so its JSON form doubles as the stored and the API representation.
type Question struct {
	Text        string           `json:"q"`
	TimeSeconds int              `json:"time"`
	Category    QuestionCategory `json:"category"`
}

// QuestionList is stored as a jsonb column.
type QuestionList []Question

func (q QuestionList) Value() (driver.Value, error) {
	return json.Marshal(q)
}

func (q *QuestionList) Scan(value interface{}) error {
	if value == nil {
		*q = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, q)
	case string:
		return json.Unmarshal([]byte(v), q)
	default:
		return fmt.Errorf("unsupported type for QuestionList: %T", value)
	}
}

type InterviewStatus string

const (
	InterviewInProgress InterviewStatus = "in_progress"
	InterviewCompleted  InterviewStatus = "completed"
)

// Interview holds the generated questions for one evaluation attempt.
// Answers are positionally aligned with questions and stay null until the
// interview is completed.
type Interview struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ApplicationID uuid.UUID       `gorm:"type:uuid;not null" json:"application_id"`
	Questions     QuestionList    `gorm:"type:jsonb" json:"questions"`
	Answers       pq.StringArray  `gorm:"type:text[]" json:"answers,omitempty"`
	Status        InterviewStatus `gorm:"type:text;not null;default:'in_progress'" json:"status"`
	CreatedAt     time.Time       `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"type:timestamp;default:now()" json:"updated_at"`

	// Relations
	Application Application `gorm:"foreignKey:ApplicationID" json:"-"`
}

func (Interview) TableName() string {
	return "interviews"
}
