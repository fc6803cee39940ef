package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
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

const (
	defaultNumQuestions = 5
	defaultDifficulty   = "mixed"
	quizMaxTokens       = 1200
	optionsPerQuestion  = 4
)

type QuizInput struct {
	Subject      string
	Topic        string
	NumQuestions int
	Difficulty   string
}

type QuizGeneration struct {
	QuizID     string
	Items      []models.QuizItem
	PersistErr error
}

type QuizService interface {
	Generate(ctx context.Context, userID string, in QuizInput) (*QuizGeneration, error)
	Get(ctx context.Context, userID, quizID string) (*models.Quiz, error)
	SubmitAttempt(ctx context.Context, userID, quizID string, responses []int) (*models.QuizAttempt, error)
}

type quizService struct {
	quizzes pgrepo.QuizRepo
	inv     llm.Provider
	log     *logrus.Logger
}

func NewQuizService(quizzes pgrepo.QuizRepo, inv llm.Provider, log *logrus.Logger) QuizService {
	return &quizService{quizzes: quizzes, inv: inv, log: log}
}

func (s *quizService) Generate(ctx context.Context, userID string, in QuizInput) (*QuizGeneration, error) {
	const op = "QuizService.Generate"

	if in.NumQuestions <= 0 {
		in.NumQuestions = defaultNumQuestions
	}
	if in.Difficulty == "" {
		in.Difficulty = defaultDifficulty
	}

	quizID := uuid.NewString()

	res, err := tasks.Run(ctx, s.inv, s.log, tasks.Descriptor[QuizInput, []models.QuizItem]{
		Name: op,
		Validate: func(in QuizInput) error {
			if in.Subject == "" {
				return utils.E(utils.CodeInvalidArgument, op, "subject is required", nil)
			}
			return nil
		},
		Prompt: func(in QuizInput) []llm.Message {
			return prompts.Quiz(prompts.QuizPayload{
				Subject:      in.Subject,
				Topic:        optional(in.Topic),
				NumQuestions: in.NumQuestions,
				Difficulty:   in.Difficulty,
			})
		},
		JSONOutput: true,
		MaxTokens:  quizMaxTokens,
		Decode:     decodeQuizItems,
		Persist: func(ctx context.Context, userID string, in QuizInput, items []models.QuizItem) error {
			raw, err := json.Marshal(items)
			if err != nil {
				return err
			}
			return s.quizzes.Insert(ctx, &models.Quiz{
				ID:        quizID,
				UserID:    userID,
				Subject:   in.Subject,
				Topic:     optional(in.Topic),
				Items:     datatypes.JSON(raw),
				CreatedAt: time.Now().UTC(),
			})
		},
	}, userID, in)
	if err != nil {
		return nil, err
	}

	return &QuizGeneration{
		QuizID:     quizID,
		Items:      res.Output,
		PersistErr: res.PersistErr,
	}, nil
}

func decodeQuizItems(raw string) ([]models.QuizItem, error) {
	var parsed struct {
		Items *[]models.QuizItem `json:"items"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, err
	}
	if parsed.Items == nil {
		return nil, errors.New(`missing "items" key`)
	}

	items := *parsed.Items
	for i, item := range items {
		if item.Question == "" {
			return nil, fmt.Errorf("item %d: empty question", i)
		}
		if len(item.Options) != optionsPerQuestion {
			return nil, fmt.Errorf("item %d: got %d options, want %d", i, len(item.Options), optionsPerQuestion)
		}
		if item.CorrectIndex < 0 || item.CorrectIndex >= optionsPerQuestion {
			return nil, fmt.Errorf("item %d: correctIndex %d out of range", i, item.CorrectIndex)
		}
	}
	return items, nil
}

func (s *quizService) Get(ctx context.Context, userID, quizID string) (*models.Quiz, error) {
	const op = "QuizService.Get"

	if quizID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "quiz_id is required", nil)
	}

	quiz, err := s.quizzes.GetOwned(ctx, quizID, userID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "quiz not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get quiz", err)
	}
	return quiz, nil
}

// Score counts exact matches against correctIndex. The denominator is the
// item count at generation time; an unanswered question is never correct.
func Score(items []models.QuizItem, responses []int) (total, outOf int) {
	outOf = len(items)
	for i, item := range items {
		if i < len(responses) && responses[i] == item.CorrectIndex {
			total++
		}
	}
	return total, outOf
}

func (s *quizService) SubmitAttempt(ctx context.Context, userID, quizID string, responses []int) (*models.QuizAttempt, error) {
	const op = "QuizService.SubmitAttempt"

	quiz, err := s.Get(ctx, userID, quizID)
	if err != nil {
		return nil, err
	}

	var items []models.QuizItem
	if err := json.Unmarshal(quiz.Items, &items); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to decode quiz items", err)
	}

	total, outOf := Score(items, responses)

	recorded := make([]models.AttemptResponse, len(items))
	for i := range items {
		recorded[i] = models.AttemptResponse{Selected: models.Unanswered}
		if i < len(responses) {
			recorded[i] = models.AttemptResponse{Selected: responses[i]}
		}
	}
	rawResponses, err := json.Marshal(recorded)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to encode responses", err)
	}

	attempt := &models.QuizAttempt{
		ID:         uuid.NewString(),
		QuizID:     quiz.ID,
		UserID:     userID,
		Responses:  datatypes.JSON(rawResponses),
		ScoreTotal: total,
		ScoreOutOf: outOf,
		CreatedAt:  time.Now().UTC(),
	}

	// best-effort: the student keeps their score even if the attempt row
	// is lost
	if err := s.quizzes.InsertAttempt(ctx, attempt); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"quiz_id": quiz.ID,
			"user_id": userID,
		}).Error("failed to save quiz attempt")
	}
	return attempt, nil
}
