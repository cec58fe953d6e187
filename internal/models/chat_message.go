package models

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is one turn of conversation, isolated per (user, project, chat).
type ChatMessage struct {
	UUID      uuid.UUID `gorm:"type:uuid;primaryKey;" json:"uuid"`
	UserID    string    `gorm:"not null;index:idx_chat_scope" json:"user_id"`
	ProjectID string    `gorm:"index:idx_chat_scope" json:"project_id"`
	ChatID    string    `gorm:"index:idx_chat_scope" json:"chat_id"`
	Role      Role      `gorm:"not null" json:"role"`
	Content   string    `gorm:"not null" json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

func (ChatMessage) TableName() string {
	return "user_memory"
}
