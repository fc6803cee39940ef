package services

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"github.com/avelyx/prepmate/internal/models"
	"github.com/avelyx/prepmate/internal/prompts"
	"github.com/avelyx/prepmate/internal/providers/llm"
	pgrepo "github.com/avelyx/prepmate/internal/repositories/postgres"
	"github.com/avelyx/prepmate/internal/tasks"
	"github.com/avelyx/prepmate/internal/utils"
)

const gradingMaxTokens = 900

const scoreOutOf = 100

type GradeInput struct {
	Subject  string
	Question string
	Answer   string
	Criteria map[string]any
}

type AssessmentService interface {
	Grade(ctx context.Context, userID string, in GradeInput) (*tasks.Result[models.GradingResult], error)
	ListRecent(ctx context.Context, userID string, limit int) ([]models.Assessment, error)
}

type assessmentService struct {
	assessments pgrepo.AssessmentRepo
	inv         llm.Provider
	log         *logrus.Logger
}

func NewAssessmentService(assessments pgrepo.AssessmentRepo, inv llm.Provider, log *logrus.Logger) AssessmentService {
	return &assessmentService{assessments: assessments, inv: inv, log: log}
}

func (s *assessmentService) Grade(ctx context.Context, userID string, in GradeInput) (*tasks.Result[models.GradingResult], error) {
	const op = "AssessmentService.Grade"

	return tasks.Run(ctx, s.inv, s.log, tasks.Descriptor[GradeInput, models.GradingResult]{
		Name: op,
		Validate: func(in GradeInput) error {
			if in.Subject == "" || in.Answer == "" {
				return utils.E(utils.CodeInvalidArgument, op, "subject and answer are required", nil)
			}
			return nil
		},
		Prompt: func(in GradeInput) []llm.Message {
			return prompts.Grade(prompts.GradePayload{
				Subject:  in.Subject,
				Question: optional(in.Question),
				Answer:   in.Answer,
				Criteria: in.Criteria,
			})
		},
		JSONOutput: true,
		MaxTokens:  gradingMaxTokens,
		Decode: func(raw string) (models.GradingResult, error) {
			var out models.GradingResult
			err := json.Unmarshal([]byte(raw), &out)
			return out, err
		},
		Persist: s.persistAssessment,
	}, userID, in)
}

func (s *assessmentService) persistAssessment(ctx context.Context, userID string, in GradeInput, out models.GradingResult) error {
	breakdown, err := json.Marshal(out.Breakdown)
	if err != nil {
		return err
	}
	resultJSON, err := json.Marshal(out)
	if err != nil {
		return err
	}

	return s.assessments.Insert(ctx, &models.Assessment{
		ID:             uuid.NewString(),
		UserID:         userID,
		Subject:        in.Subject,
		AssessmentType: models.AssessmentTypeEssay,
		Question:       optional(in.Question),
		Answer:         in.Answer,
		ScoreTotal:     finiteScore(out.OverallScore),
		ScoreOutOf:     scoreOutOf,
		Breakdown:      datatypes.JSON(breakdown),
		Feedback:       out.Comments.ExaminerStyleFeedback,
		ResultJSON:     datatypes.JSON(resultJSON),
		CreatedAt:      time.Now().UTC(),
	})
}

// finiteScore keeps a missing or non-finite overall score absent instead of
// coercing it to zero.
func finiteScore(score *float64) *float64 {
	if score == nil || math.IsNaN(*score) || math.IsInf(*score, 0) {
		return nil
	}
	return score
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (s *assessmentService) ListRecent(ctx context.Context, userID string, limit int) ([]models.Assessment, error) {
	const op = "AssessmentService.ListRecent"

	rows, err := s.assessments.ListRecent(ctx, userID, limit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list assessments", err)
	}
	return rows, nil
}
