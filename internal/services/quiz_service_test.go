package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/avelyx/prepmate/internal/models"
	"github.com/avelyx/prepmate/internal/providers/llm"
	"github.com/avelyx/prepmate/internal/testutil"
	"github.com/avelyx/prepmate/internal/utils"
)

func TestScore(t *testing.T) {
	items := []models.QuizItem{
		{Question: "q1", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 1},
		{Question: "q2", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 1},
		{Question: "q3", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 2},
		{Question: "q4", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 0},
	}

	tests := []struct {
		name      string
		responses []int
		total     int
		outOf     int
	}{
		{"partial credit", []int{1, 0, 2, 3}, 2, 4},
		{"all correct", []int{1, 1, 2, 0}, 4, 4},
		{"all wrong", []int{0, 0, 0, 1}, 0, 4},
		{"short response slice", []int{1}, 1, 4},
		{"extra responses ignored", []int{1, 1, 2, 0, 3, 3}, 4, 4},
		{"unanswered never correct", []int{models.Unanswered, models.Unanswered, 2, 0}, 2, 4},
		{"empty", nil, 0, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, outOf := Score(items, tt.responses)
			if total != tt.total || outOf != tt.outOf {
				t.Errorf("Score() = %d/%d, want %d/%d", total, outOf, tt.total, tt.outOf)
			}
			// scoring is pure; a resubmission must not change the result
			again, _ := Score(items, tt.responses)
			if again != total {
				t.Errorf("rescore = %d, first score = %d", again, total)
			}
		})
	}
}

func TestGenerate_RequiresSubject(t *testing.T) {
	inv := &testutil.MockProvider{}
	svc := NewQuizService(&testutil.MockQuizRepo{}, inv, logrus.New())

	_, err := svc.Generate(context.Background(), "user-1", QuizInput{})
	if !utils.IsCode(err, utils.CodeInvalidArgument) {
		t.Fatalf("expected INVALID_ARGUMENT, got %v", err)
	}
	if inv.CallCount != 0 {
		t.Errorf("model invoked %d times, want 0", inv.CallCount)
	}
}

func TestGenerate_PersistsAndReturnsItems(t *testing.T) {
	raw := `{"items":[
		{"question":"What is 2+2?","options":["3","4","5","6"],"correctIndex":1,"explanation":"basic addition"},
		{"question":"What is 3*3?","options":["6","9","12","3"],"correctIndex":1,"explanation":"basic multiplication"}
	]}`
	inv := &testutil.MockProvider{
		CompleteFunc: func(context.Context, llm.Request) (string, error) { return raw, nil },
	}

	var stored *models.Quiz
	repo := &testutil.MockQuizRepo{
		InsertFunc: func(_ context.Context, q *models.Quiz) error {
			stored = q
			return nil
		},
	}

	svc := NewQuizService(repo, inv, logrus.New())
	gen, err := svc.Generate(context.Background(), "user-1", QuizInput{Subject: "Mathematics"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(gen.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(gen.Items))
	}
	if gen.QuizID == "" {
		t.Error("quiz id is empty")
	}
	if !inv.LastRequest.JSONObject {
		t.Error("expected a JSON-object response request")
	}

	if stored == nil {
		t.Fatal("quiz not persisted")
	}
	if stored.ID != gen.QuizID || stored.UserID != "user-1" {
		t.Errorf("stored quiz = %q owner %q", stored.ID, stored.UserID)
	}
	var roundTrip []models.QuizItem
	if err := json.Unmarshal(stored.Items, &roundTrip); err != nil {
		t.Fatalf("stored items not decodable: %v", err)
	}
	if roundTrip[0].Question != "What is 2+2?" {
		t.Errorf("stored question = %q", roundTrip[0].Question)
	}
}

func TestGenerate_MalformedOutput(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "here are your questions!"},
		{"missing items key", `{"questions":[]}`},
		{"wrong option count", `{"items":[{"question":"q","options":["a","b"],"correctIndex":0,"explanation":"e"}]}`},
		{"index out of range", `{"items":[{"question":"q","options":["a","b","c","d"],"correctIndex":4,"explanation":"e"}]}`},
		{"empty question", `{"items":[{"question":"","options":["a","b","c","d"],"correctIndex":0,"explanation":"e"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := &testutil.MockProvider{
				CompleteFunc: func(context.Context, llm.Request) (string, error) { return tt.raw, nil },
			}
			inserted := false
			repo := &testutil.MockQuizRepo{
				InsertFunc: func(context.Context, *models.Quiz) error {
					inserted = true
					return nil
				},
			}

			svc := NewQuizService(repo, inv, logrus.New())
			_, err := svc.Generate(context.Background(), "user-1", QuizInput{Subject: "Physics"})
			if !utils.IsCode(err, utils.CodeModelOutput) {
				t.Fatalf("expected MODEL_OUTPUT, got %v", err)
			}
			if inserted {
				t.Error("malformed output must not be persisted")
			}
		})
	}
}

func TestSubmitAttempt_ScoresAgainstStoredItems(t *testing.T) {
	items := []models.QuizItem{
		{Question: "q1", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 1},
		{Question: "q2", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 1},
		{Question: "q3", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 2},
		{Question: "q4", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 0},
	}
	rawItems, _ := json.Marshal(items)

	var savedAttempt *models.QuizAttempt
	repo := &testutil.MockQuizRepo{
		GetOwnedFunc: func(_ context.Context, id, userID string) (*models.Quiz, error) {
			return &models.Quiz{ID: id, UserID: userID, Items: rawItems}, nil
		},
		InsertAttemptFunc: func(_ context.Context, a *models.QuizAttempt) error {
			savedAttempt = a
			return nil
		},
	}

	svc := NewQuizService(repo, &testutil.MockProvider{}, logrus.New())
	attempt, err := svc.SubmitAttempt(context.Background(), "user-1", "quiz-1", []int{1, 0, 2})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if attempt.ScoreTotal != 2 || attempt.ScoreOutOf != 4 {
		t.Errorf("score = %d/%d, want 2/4", attempt.ScoreTotal, attempt.ScoreOutOf)
	}

	var recorded []models.AttemptResponse
	if err := json.Unmarshal(attempt.Responses, &recorded); err != nil {
		t.Fatalf("responses not decodable: %v", err)
	}
	if len(recorded) != 4 {
		t.Fatalf("got %d recorded responses, want 4", len(recorded))
	}
	if recorded[3].Selected != models.Unanswered {
		t.Errorf("missing response recorded as %d, want %d", recorded[3].Selected, models.Unanswered)
	}
	if savedAttempt == nil {
		t.Error("attempt not persisted")
	}
}

func TestSubmitAttempt_ForeignQuiz(t *testing.T) {
	repo := &testutil.MockQuizRepo{
		GetOwnedFunc: func(context.Context, string, string) (*models.Quiz, error) {
			return nil, utils.ErrNotFound
		},
	}
	svc := NewQuizService(repo, &testutil.MockProvider{}, logrus.New())

	_, err := svc.SubmitAttempt(context.Background(), "user-1", "quiz-x", []int{0})
	if !utils.IsCode(err, utils.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestSubmitAttempt_PersistFailureKeepsScore(t *testing.T) {
	items := []models.QuizItem{{Question: "q1", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 0}}
	rawItems, _ := json.Marshal(items)

	repo := &testutil.MockQuizRepo{
		GetOwnedFunc: func(_ context.Context, id, userID string) (*models.Quiz, error) {
			return &models.Quiz{ID: id, UserID: userID, Items: rawItems}, nil
		},
		InsertAttemptFunc: func(context.Context, *models.QuizAttempt) error {
			return utils.E(utils.CodeInternal, "test", "db down", nil)
		},
	}

	svc := NewQuizService(repo, &testutil.MockProvider{}, logrus.New())
	attempt, err := svc.SubmitAttempt(context.Background(), "user-1", "quiz-1", []int{0})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if attempt.ScoreTotal != 1 || attempt.ScoreOutOf != 1 {
		t.Errorf("score = %d/%d, want 1/1", attempt.ScoreTotal, attempt.ScoreOutOf)
	}
}
