package models

import (
	"time"

	"gorm.io/datatypes"
)

const AssessmentTypeEssay = "essay"

type Assessment struct {
	ID             string         `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID         string         `gorm:"column:user_id;type:uuid;index" json:"user_id"`
	Subject        string         `gorm:"column:subject;type:text" json:"subject"`
	AssessmentType string         `gorm:"column:assessment_type;type:text" json:"assessment_type"`
	Question       *string        `gorm:"column:question;type:text" json:"question,omitempty"`
	Answer         string         `gorm:"column:answer;type:text" json:"answer"`
	// ScoreTotal stays NULL when the model omitted the score; "ungraded"
	// is not the same as zero.
	ScoreTotal *float64       `gorm:"column:score_total" json:"score_total"`
	ScoreOutOf int            `gorm:"column:score_out_of" json:"score_out_of"`
	Breakdown  datatypes.JSON `gorm:"column:breakdown;type:jsonb" json:"breakdown"`
	Feedback   string         `gorm:"column:feedback;type:text" json:"feedback"`
	ResultJSON datatypes.JSON `gorm:"column:result_json;type:jsonb" json:"result_json"`
	CreatedAt  time.Time      `gorm:"column:created_at;type:timestamptz;index" json:"created_at"`
}

func (Assessment) TableName() string { return "assessments" }

// GradingResult is the declared output shape of the grading task.
type GradingResult struct {
	OverallScore *float64         `json:"overallScore"`
	Breakdown    GradingBreakdown `json:"breakdown"`
	Comments     GradingComments  `json:"comments"`
	ModelAnswer  string           `json:"modelAnswer"`
}

type GradingBreakdown struct {
	Content    float64 `json:"content"`
	Structure  float64 `json:"structure"`
	Vocabulary float64 `json:"vocabulary"`
	Accuracy   float64 `json:"accuracy"`
}

type GradingComments struct {
	Strengths             []string `json:"strengths"`
	Weaknesses            []string `json:"weaknesses"`
	Improvements          []string `json:"improvements"`
	ExaminerStyleFeedback string   `json:"examinerStyleFeedback"`
}
