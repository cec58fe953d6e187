package repo

import (
	"log"
	"time"

	llmHandlers "debugmate-backend/internal/llm_handlers"
	"debugmate-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// KeepLimit caps stored turns per (user, project, chat); oldest beyond
	// it are deleted on every save.
	KeepLimit = 200

	DefaultHistorySize = 15
)

type ChatRepo struct {
	db *gorm.DB
}

type ChatRepoInterface interface {
	SaveMessage(userID, projectID, chatID string, role models.Role, content string) error
	GetHistory(userID, projectID, chatID string, limit int) ([]llmHandlers.Message, error)
}

func NewChatRepository(db *gorm.DB) ChatRepoInterface {
	return &ChatRepo{db: db}
}

// SaveMessage appends one turn and trims the conversation back to KeepLimit.
func (r *ChatRepo) SaveMessage(userID, projectID, chatID string, role models.Role, content string) error {
	if projectID == "" {
		projectID = "default"
	}
	if chatID == "" {
		chatID = "default"
	}

	msg := models.ChatMessage{
		UUID:      uuid.New(),
		UserID:    userID,
		ProjectID: projectID,
		ChatID:    chatID,
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
	if err := r.db.Create(&msg).Error; err != nil {
		return err
	}

	return r.trim(userID, projectID, chatID)
}

func (r *ChatRepo) trim(userID, projectID, chatID string) error {
	var stale []uuid.UUID
	err := r.db.Model(&models.ChatMessage{}).
		Where("user_id = ? AND project_id = ? AND chat_id = ?", userID, projectID, chatID).
		Order("timestamp desc").
		Offset(KeepLimit).
		Pluck("uuid", &stale).Error
	if err != nil {
		return err
	}
	if len(stale) == 0 {
		return nil
	}

	log.Printf("🧹 trimming %d old messages for user %s", len(stale), userID)
	return r.db.Delete(&models.ChatMessage{}, "uuid IN ?", stale).Error
}

// GetHistory returns the oldest-first turns for one conversation in the
// shape the LLM layer consumes.
func (r *ChatRepo) GetHistory(userID, projectID, chatID string, limit int) ([]llmHandlers.Message, error) {
	if projectID == "" {
		projectID = "default"
	}
	if chatID == "" {
		chatID = "default"
	}
	if limit <= 0 {
		limit = DefaultHistorySize
	}

	var chats []models.ChatMessage
	err := r.db.Model(&models.ChatMessage{}).
		Select("role", "content").
		Where("user_id = ? AND project_id = ? AND chat_id = ?", userID, projectID, chatID).
		Order("timestamp ASC").
		Limit(limit).
		Find(&chats).Error
	if err != nil {
		return nil, err
	}

	history := make([]llmHandlers.Message, 0, len(chats))
	for _, chat := range chats {
		history = append(history, llmHandlers.Message{
			Role:    chat.Role,
			Content: chat.Content,
		})
	}
	return history, nil
}
