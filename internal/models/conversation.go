package models

import "time"

type Conversation struct {
	ID        string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID    string    `gorm:"column:user_id;type:uuid;index" json:"user_id"`
	Title     string    `gorm:"column:title;type:text" json:"title"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;index" json:"created_at"`
}

func (Conversation) TableName() string { return "chat_conversations" }

// ConversationTitle derives a conversation title from its first message.
func ConversationTitle(firstMessage string) string {
	const max = 50
	runes := []rune(firstMessage)
	if len(runes) <= max {
		return firstMessage
	}
	return string(runes[:max]) + "..."
}
