package models

import (
	"time"

	"gorm.io/datatypes"
)

// QuizItem is the declared shape of one generated question.
type QuizItem struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"` // exactly 4
	CorrectIndex int      `json:"correctIndex"`
	Explanation  string   `json:"explanation,omitempty"`
}

type Quiz struct {
	ID        string         `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID    string         `gorm:"column:user_id;type:uuid;index" json:"user_id"`
	Subject   string         `gorm:"column:subject;type:text" json:"subject"`
	Topic     *string        `gorm:"column:topic;type:text" json:"topic,omitempty"`
	Items     datatypes.JSON `gorm:"column:items;type:jsonb" json:"items"`
	CreatedAt time.Time      `gorm:"column:created_at;type:timestamptz;index" json:"created_at"`
}

func (Quiz) TableName() string { return "quizzes" }

// Unanswered is the sentinel used for a question the student skipped.
const Unanswered = -1

type AttemptResponse struct {
	Selected int `json:"selected"`
}

type QuizAttempt struct {
	ID         string         `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	QuizID     string         `gorm:"column:quiz_id;type:uuid;index" json:"quiz_id"`
	UserID     string         `gorm:"column:user_id;type:uuid;index" json:"user_id"`
	Responses  datatypes.JSON `gorm:"column:responses;type:jsonb" json:"responses"`
	ScoreTotal int            `gorm:"column:score_total" json:"score_total"`
	// ScoreOutOf is the item count at generation time, not submission time.
	ScoreOutOf int       `gorm:"column:score_out_of" json:"score_out_of"`
	CreatedAt  time.Time `gorm:"column:created_at;type:timestamptz;index" json:"created_at"`
}

func (QuizAttempt) TableName() string { return "quiz_attempts" }
