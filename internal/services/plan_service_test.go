package services

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/avelyx/prepmate/internal/models"
	"github.com/avelyx/prepmate/internal/prompts"
	"github.com/avelyx/prepmate/internal/providers/llm"
	"github.com/avelyx/prepmate/internal/testutil"
	"github.com/avelyx/prepmate/internal/utils"
)

func TestPlanGenerate_FeedsRecentPerformanceToModel(t *testing.T) {
	score := 62.0
	var gotAssessmentLimit, gotAttemptLimit int

	assessments := &testutil.MockAssessmentRepo{
		ListRecentFunc: func(_ context.Context, userID string, limit int) ([]models.Assessment, error) {
			gotAssessmentLimit = limit
			return []models.Assessment{
				{Subject: "Physics", AssessmentType: models.AssessmentTypeEssay, ScoreTotal: &score, ScoreOutOf: 100},
			}, nil
		},
	}
	quizzes := &testutil.MockQuizRepo{
		ListRecentAttemptsFunc: func(_ context.Context, userID string, limit int) ([]models.QuizAttempt, error) {
			gotAttemptLimit = limit
			return []models.QuizAttempt{{ScoreTotal: 3, ScoreOutOf: 5}}, nil
		},
	}
	profiles := NewProfileService(&testutil.MockProfileRepo{
		GetByUserIDFunc: func(_ context.Context, userID string) (*models.Profile, error) {
			return &models.Profile{
				UserID:            userID,
				DisplayName:       "Amira",
				PreferredSubjects: []string{"Physics", "Mathematics"},
			}, nil
		},
	}, nil)

	var prompt []llm.Message
	inv := &testutil.MockProvider{
		CompleteFunc: func(_ context.Context, req llm.Request) (string, error) {
			prompt = req.Messages
			return "# Week 1\n- Physics: electricity", nil
		},
	}

	svc := NewPlanService(assessments, quizzes, profiles, inv, logrus.New())
	plan, err := svc.Generate(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(plan, "Week 1") {
		t.Errorf("plan = %q", plan)
	}

	if gotAssessmentLimit != 20 || gotAttemptLimit != 20 {
		t.Errorf("context limits = %d/%d, want 20/20", gotAssessmentLimit, gotAttemptLimit)
	}

	if len(prompt) != 2 {
		t.Fatalf("prompt has %d messages, want 2", len(prompt))
	}
	var payload prompts.PlanPayload
	if err := json.Unmarshal([]byte(prompt[1].Content), &payload); err != nil {
		t.Fatalf("user message not a JSON payload: %v", err)
	}
	if payload.Profile.DisplayName != "Amira" {
		t.Errorf("profile name = %q", payload.Profile.DisplayName)
	}
	if len(payload.Assessments) != 1 || payload.Assessments[0].Subject != "Physics" {
		t.Errorf("assessments = %+v", payload.Assessments)
	}
	if len(payload.Attempts) != 1 || payload.Attempts[0].ScoreTotal != 3 {
		t.Errorf("attempts = %+v", payload.Attempts)
	}
}

func TestPlanGenerate_MissingProfileTolerated(t *testing.T) {
	assessments := &testutil.MockAssessmentRepo{
		ListRecentFunc: func(context.Context, string, int) ([]models.Assessment, error) { return nil, nil },
	}
	quizzes := &testutil.MockQuizRepo{
		ListRecentAttemptsFunc: func(context.Context, string, int) ([]models.QuizAttempt, error) { return nil, nil },
	}
	profiles := NewProfileService(&testutil.MockProfileRepo{
		GetByUserIDFunc: func(context.Context, string) (*models.Profile, error) {
			return nil, utils.ErrNotFound
		},
	}, nil)

	inv := &testutil.MockProvider{
		CompleteFunc: func(context.Context, llm.Request) (string, error) {
			return "# Plan", nil
		},
	}

	svc := NewPlanService(assessments, quizzes, profiles, inv, logrus.New())
	if _, err := svc.Generate(context.Background(), "user-1"); err != nil {
		t.Fatalf("a user without a profile must still get a plan, got %v", err)
	}
}

func TestPlanGenerate_ContextReadFailureIsTerminal(t *testing.T) {
	assessments := &testutil.MockAssessmentRepo{
		ListRecentFunc: func(context.Context, string, int) ([]models.Assessment, error) {
			return nil, utils.E(utils.CodeInternal, "test", "db down", nil)
		},
	}
	inv := &testutil.MockProvider{}

	svc := NewPlanService(assessments, &testutil.MockQuizRepo{}, NewProfileService(&testutil.MockProfileRepo{}, nil), inv, logrus.New())
	_, err := svc.Generate(context.Background(), "user-1")
	if !utils.IsCode(err, utils.CodeInternal) {
		t.Fatalf("expected INTERNAL, got %v", err)
	}
	if inv.CallCount != 0 {
		t.Errorf("model invoked %d times, want 0", inv.CallCount)
	}
}
