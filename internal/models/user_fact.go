package models

import (
	"time"

	"github.com/google/uuid"
)

// UserFact is a single extracted attribute about a user.
// One row per (user_id, fact_key); a new extraction overwrites the old value.
type UserFact struct {
	UUID       uuid.UUID `gorm:"type:uuid;primaryKey;" json:"uuid"`
	UserID     string    `gorm:"not null;uniqueIndex:idx_user_fact_key" json:"user_id"`
	FactKey    string    `gorm:"not null;uniqueIndex:idx_user_fact_key" json:"fact_key"`
	FactValue  string    `gorm:"not null" json:"fact_value"`
	Confidence float64   `gorm:"default:1.0" json:"confidence"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (UserFact) TableName() string {
	return "user_facts"
}
