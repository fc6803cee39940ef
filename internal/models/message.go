package models

import "time"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message rows are append-only; creation time is the conversation's
// authoritative ordering. Strict user/assistant alternation is not enforced.
type Message struct {
	ID             string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ConversationID string    `gorm:"column:conversation_id;type:uuid;index" json:"conversation_id"`
	Role           string    `gorm:"column:role;type:text" json:"role"` // "user" | "assistant"
	Content        string    `gorm:"column:content;type:text" json:"content"`
	CreatedAt      time.Time `gorm:"column:created_at;type:timestamptz;index" json:"created_at"`
}

func (Message) TableName() string { return "chat_messages" }
