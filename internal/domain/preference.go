package domain

import "time"

// Preference is a persisted key/value setting
type Preference struct {
	Key       string    `json:"key" gorm:"primaryKey;column:name"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Preference) TableName() string {
	return "preferences"
}
