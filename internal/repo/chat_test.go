package repo

import (
	"fmt"
	"testing"

	"debugmate-backend/internal/models"
)

func TestSaveAndGetHistory(t *testing.T) {
	chats := NewChatRepository(testDB(t))

	turns := []struct {
		role    models.Role
		content string
	}{
		{models.RoleUser, "hello"},
		{models.RoleAssistant, "hi, how can I help?"},
		{models.RoleUser, "what is the status"},
	}
	for _, turn := range turns {
		if err := chats.SaveMessage("me@we3vision.com", "proj-1", "chat-1", turn.role, turn.content); err != nil {
			t.Fatalf("SaveMessage: %v", err)
		}
	}

	history, err := chats.GetHistory("me@we3vision.com", "proj-1", "chat-1", 15)
	if err != nil {
		t.Fatalf("GetHistory: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("history length = %d, want 3", len(history))
	}
	for i, turn := range turns {
		if history[i].Role != turn.role || history[i].Content != turn.content {
			t.Errorf("history[%d] = %+v, want %+v", i, history[i], turn)
		}
	}
}

func TestGetHistoryLimit(t *testing.T) {
	chats := NewChatRepository(testDB(t))

	for i := 0; i < 20; i++ {
		if err := chats.SaveMessage("me@we3vision.com", "proj-1", "chat-1", models.RoleUser, fmt.Sprintf("msg %d", i)); err != nil {
			t.Fatalf("SaveMessage: %v", err)
		}
	}

	history, err := chats.GetHistory("me@we3vision.com", "proj-1", "chat-1", 0)
	if err != nil {
		t.Fatalf("GetHistory: %v", err)
	}
	if len(history) != DefaultHistorySize {
		t.Fatalf("history length = %d, want %d", len(history), DefaultHistorySize)
	}
}

// Saving past the cap deletes the oldest turns; at most KeepLimit rows
// persist per conversation and the newest writes survive.
func TestSaveMessageTrimsToKeepLimit(t *testing.T) {
	db := testDB(t)
	chats := NewChatRepository(db)

	total := KeepLimit + 5
	for i := 0; i < total; i++ {
		if err := chats.SaveMessage("me@we3vision.com", "proj-1", "chat-1", models.RoleUser, fmt.Sprintf("msg %d", i)); err != nil {
			t.Fatalf("SaveMessage: %v", err)
		}
	}

	var count int64
	err := db.Model(&models.ChatMessage{}).
		Where("user_id = ? AND project_id = ? AND chat_id = ?", "me@we3vision.com", "proj-1", "chat-1").
		Count(&count).Error
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != int64(KeepLimit) {
		t.Fatalf("stored turns = %d, want %d", count, KeepLimit)
	}

	var oldest int64
	db.Model(&models.ChatMessage{}).Where("content = ?", "msg 0").Count(&oldest)
	if oldest != 0 {
		t.Error("oldest turn should have been trimmed")
	}

	var newest int64
	db.Model(&models.ChatMessage{}).Where("content = ?", fmt.Sprintf("msg %d", total-1)).Count(&newest)
	if newest != 1 {
		t.Error("newest turn should have survived the trim")
	}
}

// Empty project/chat ids normalize to "default" on both write and read.
func TestHistoryDefaultScope(t *testing.T) {
	chats := NewChatRepository(testDB(t))

	if err := chats.SaveMessage("me@we3vision.com", "", "", models.RoleUser, "hello"); err != nil {
		t.Fatalf("SaveMessage: %v", err)
	}

	history, err := chats.GetHistory("me@we3vision.com", "default", "default", 15)
	if err != nil {
		t.Fatalf("GetHistory: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("history length = %d, want 1", len(history))
	}
}

func TestHistoryIsolatedPerConversation(t *testing.T) {
	chats := NewChatRepository(testDB(t))

	chats.SaveMessage("me@we3vision.com", "proj-1", "chat-1", models.RoleUser, "in chat one")
	chats.SaveMessage("me@we3vision.com", "proj-1", "chat-2", models.RoleUser, "in chat two")

	history, err := chats.GetHistory("me@we3vision.com", "proj-1", "chat-1", 15)
	if err != nil {
		t.Fatalf("GetHistory: %v", err)
	}
	if len(history) != 1 || history[0].Content != "in chat one" {
		t.Fatalf("history = %+v", history)
	}
}
