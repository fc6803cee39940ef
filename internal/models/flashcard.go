package models

import "time"

// Card is the declared output shape of one generated flashcard.
type Card struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

type Flashcard struct {
	ID        string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID    string    `gorm:"column:user_id;type:uuid;index" json:"user_id"`
	Subject   *string   `gorm:"column:subject;type:text" json:"subject,omitempty"`
	Topic     *string   `gorm:"column:topic;type:text" json:"topic,omitempty"`
	Front     string    `gorm:"column:front;type:text" json:"front"`
	Back      string    `gorm:"column:back;type:text" json:"back"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;index" json:"created_at"`
}

func (Flashcard) TableName() string { return "flashcards" }
