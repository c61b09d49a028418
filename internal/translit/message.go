package translit

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies who produced a message.
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// Message represents a single entry in the session log.
// Messages are immutable once created.
type Message struct {
	ID         string    `json:"id"`                    // UUIDv7, orderable by creation time
	Role       Role      `json:"role"`                  // "user" or "bot"
	Content    string    `json:"content"`               // Display text
	SourceText string    `json:"source_text,omitempty"` // Input that produced a Bot message
	IsError    bool      `json:"is_error,omitempty"`    // Bot message represents a failure
	CreatedAt  time.Time `json:"created_at"`
}

// NewUserMessage creates a User message for submitted text.
func NewUserMessage(content string) Message {
	return Message{
		ID:        newMessageID(),
		Role:      RoleUser,
		Content:   content,
		CreatedAt: time.Now(),
	}
}

// NewBotMessage creates a Bot message for a settled transliteration call.
func NewBotMessage(content, sourceText string, isError bool) Message {
	return Message{
		ID:         newMessageID(),
		Role:       RoleBot,
		Content:    content,
		SourceText: sourceText,
		IsError:    isError,
		CreatedAt:  time.Now(),
	}
}

// Correctable reports whether a correction form may be opened for the message.
func (m Message) Correctable() bool {
	return m.Role == RoleBot && !m.IsError
}

// GetShortID returns the shortened message ID (last 8 characters).
// UUIDv7 ids share their leading timestamp bits, so the tail is the distinctive part.
func (m Message) GetShortID() string {
	if len(m.ID) >= 8 {
		return m.ID[len(m.ID)-8:]
	}
	return m.ID
}

func newMessageID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails if the random source fails.
		return uuid.New().String()
	}
	return id.String()
}
