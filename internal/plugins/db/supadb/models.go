package supadb

import (
	"time"

	"github.com/google/uuid"

	"github.com/pautahq/pauta/internal/chat"
)

const (
	sessionsTable = "sessions"
	messagesTable = "messages"
)

// Session represents a conversational session stored in Supabase.
type Session struct {
	ID        uuid.UUID      `json:"id"`
	UserID    *uuid.UUID     `json:"user_id"`
	Title     string         `json:"title"`
	Metadata  map[string]any `json:"metadata"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Message represents a message exchanged within a session.
type Message struct {
	ID        uuid.UUID      `json:"id"`
	SessionID uuid.UUID      `json:"session_id"`
	Role      string         `json:"role"`
	Content   string         `json:"content"`
	Metadata  map[string]any `json:"metadata"`
	CreatedAt time.Time      `json:"created_at"`
}

// ToChat converts a row into a chat message. Rows with an unknown role
// are reported with ok=false.
func (m Message) ToChat() (msg chat.Message, ok bool) {
	role, ok := chat.ParseRole(m.Role)
	if !ok {
		return chat.Message{}, false
	}
	return chat.Message{Role: role, Content: m.Content}, true
}

func messagePayload(sessionID uuid.UUID, msg chat.Message) map[string]any {
	return map[string]any{
		"session_id": sessionID.String(),
		"role":       string(msg.Role),
		"content":    msg.Content,
	}
}
