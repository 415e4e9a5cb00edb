package repositories

import (
	"strconv"

	"gorm.io/gorm"

	"farhanmaulana/hire-screener/internal/models"
)

const (
	DefaultResumeWeight    = 40
	DefaultInterviewWeight = 60
)

type SettingRepository interface {
	ScoreWeights() models.ScoreWeights
}

type settingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

// ScoreWeights reads resume_weight and interview_weight from system settings.
// Missing, unparsable, or zero values fall back to the 40/60 defaults.
func (r *settingRepository) ScoreWeights() models.ScoreWeights {
	return models.ScoreWeights{
		Resume:    r.intSetting("resume_weight", DefaultResumeWeight),
		Interview: r.intSetting("interview_weight", DefaultInterviewWeight),
	}
}

func (r *settingRepository) intSetting(key string, defaultValue int) int {
	var setting models.SystemSetting
	if err := r.db.Where("key = ?", key).First(&setting).Error; err != nil {
		return defaultValue
	}

	value, err := strconv.Atoi(setting.Value)
	if err != nil || value == 0 {
		return defaultValue
	}
	return value
}
