package models

import "time"

// SystemSetting is a key/value row of mutable operator configuration.
// The pipeline reads resume_weight and interview_weight from here.
type SystemSetting struct {
	Key       string    `gorm:"type:text;primary_key" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (SystemSetting) TableName() string {
	return "system_settings"
}
