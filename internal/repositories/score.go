package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"farhanmaulana/hire-screener/internal/models"
)

type ScoreRepository interface {
	Create(score *models.Score) error
	FindLatestByInterviewID(interviewID uuid.UUID) (*models.Score, error)
}

type scoreRepository struct {
	db *gorm.DB
}

func NewScoreRepository(db *gorm.DB) ScoreRepository {
	return &scoreRepository{db: db}
}

// Create implements ScoreRepository. Every call inserts a new row; repeated
// scoring of the same interview keeps a history of attempts.
func (r *scoreRepository) Create(score *models.Score) error {
	if err := r.db.Create(score).Error; err != nil {
		return fmt.Errorf("failed to create score: %w", err)
	}
	return nil
}

// FindLatestByInterviewID implements ScoreRepository.
func (r *scoreRepository) FindLatestByInterviewID(interviewID uuid.UUID) (*models.Score, error) {
	var score models.Score
	err := r.db.
		Where("interview_id = ?", interviewID).
		Order("created_at DESC").
		First(&score).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("score for interview %s: %w", interviewID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find score: %w", err)
	}
	return &score, nil
}
