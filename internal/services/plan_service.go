package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/avelyx/prepmate/internal/prompts"
	"github.com/avelyx/prepmate/internal/providers/llm"
	pgrepo "github.com/avelyx/prepmate/internal/repositories/postgres"
	"github.com/avelyx/prepmate/internal/tasks"
	"github.com/avelyx/prepmate/internal/utils"
)

const (
	planContextLimit = 20
	planMaxTokens    = 2000
)

type PlanService interface {
	// Generate returns a Markdown revision plan; nothing is persisted.
	Generate(ctx context.Context, userID string) (string, error)
}

type planService struct {
	assessments pgrepo.AssessmentRepo
	quizzes     pgrepo.QuizRepo
	profiles    ProfileService
	inv         llm.Provider
	log         *logrus.Logger
}

func NewPlanService(assessments pgrepo.AssessmentRepo, quizzes pgrepo.QuizRepo, profiles ProfileService, inv llm.Provider, log *logrus.Logger) PlanService {
	return &planService{assessments: assessments, quizzes: quizzes, profiles: profiles, inv: inv, log: log}
}

func (s *planService) Generate(ctx context.Context, userID string) (string, error) {
	const op = "PlanService.Generate"

	payload, err := s.buildContext(ctx, op, userID)
	if err != nil {
		return "", err
	}

	res, err := tasks.Run(ctx, s.inv, s.log, tasks.Descriptor[prompts.PlanPayload, string]{
		Name:      op,
		Prompt:    prompts.Plan,
		MaxTokens: planMaxTokens,
		Decode: func(raw string) (string, error) {
			if strings.TrimSpace(raw) == "" {
				return "", errors.New("empty model response")
			}
			return raw, nil
		},
	}, userID, *payload)
	if err != nil {
		return "", err
	}
	return res.Output, nil
}

func (s *planService) buildContext(ctx context.Context, op, userID string) (*prompts.PlanPayload, error) {
	assessments, err := s.assessments.ListRecent(ctx, userID, planContextLimit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load recent assessments", err)
	}
	attempts, err := s.quizzes.ListRecentAttempts(ctx, userID, planContextLimit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load recent quiz attempts", err)
	}

	payload := prompts.PlanPayload{
		Assessments: make([]prompts.PlanAssessment, 0, len(assessments)),
		Attempts:    make([]prompts.PlanAttempt, 0, len(attempts)),
	}
	for _, a := range assessments {
		payload.Assessments = append(payload.Assessments, prompts.PlanAssessment{
			Subject:        a.Subject,
			AssessmentType: a.AssessmentType,
			ScoreTotal:     a.ScoreTotal,
			ScoreOutOf:     a.ScoreOutOf,
			CreatedAt:      a.CreatedAt,
		})
	}
	for _, at := range attempts {
		payload.Attempts = append(payload.Attempts, prompts.PlanAttempt{
			ScoreTotal: at.ScoreTotal,
			ScoreOutOf: at.ScoreOutOf,
			CreatedAt:  at.CreatedAt,
		})
	}

	// no profile yet is fine; the plan just gets less personal
	profile, err := s.profiles.GetMe(ctx, userID)
	if err != nil && !utils.IsCode(err, utils.CodeNotFound) {
		return nil, err
	}
	if profile != nil {
		payload.Profile = prompts.PlanProfile{
			DisplayName:       profile.DisplayName,
			PreferredSubjects: profile.PreferredSubjects,
			Preferences:       json.RawMessage(profile.Preferences),
		}
	}
	return &payload, nil
}
