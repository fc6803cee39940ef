package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/avelyx/prepmate/internal/models"
	"github.com/avelyx/prepmate/internal/prompts"
	"github.com/avelyx/prepmate/internal/providers/llm"
	pgrepo "github.com/avelyx/prepmate/internal/repositories/postgres"
	"github.com/avelyx/prepmate/internal/tasks"
	"github.com/avelyx/prepmate/internal/utils"
)

const (
	defaultNumCards    = 12
	flashcardMaxTokens = 1500
)

type FlashcardInput struct {
	Subject    string
	Topic      string
	SourceText string
	NumCards   int
}

type FlashcardService interface {
	Generate(ctx context.Context, userID string, in FlashcardInput) (*tasks.Result[[]models.Card], error)
	List(ctx context.Context, userID string, limit int) ([]models.Flashcard, error)
}

type flashcardService struct {
	flashcards pgrepo.FlashcardRepo
	inv        llm.Provider
	log        *logrus.Logger
}

func NewFlashcardService(flashcards pgrepo.FlashcardRepo, inv llm.Provider, log *logrus.Logger) FlashcardService {
	return &flashcardService{flashcards: flashcards, inv: inv, log: log}
}

func (s *flashcardService) Generate(ctx context.Context, userID string, in FlashcardInput) (*tasks.Result[[]models.Card], error) {
	const op = "FlashcardService.Generate"

	if in.NumCards <= 0 {
		in.NumCards = defaultNumCards
	}

	return tasks.Run(ctx, s.inv, s.log, tasks.Descriptor[FlashcardInput, []models.Card]{
		Name: op,
		Validate: func(in FlashcardInput) error {
			if in.Subject == "" && in.SourceText == "" {
				return utils.E(utils.CodeInvalidArgument, op, "provide subject or sourceText", nil)
			}
			return nil
		},
		Prompt: func(in FlashcardInput) []llm.Message {
			return prompts.Flashcards(prompts.FlashcardPayload{
				Subject:    optional(in.Subject),
				Topic:      optional(in.Topic),
				SourceText: optional(in.SourceText),
				NumCards:   in.NumCards,
			})
		},
		JSONOutput: true,
		MaxTokens:  flashcardMaxTokens,
		Decode:     decodeCards,
		Persist: func(ctx context.Context, userID string, in FlashcardInput, cards []models.Card) error {
			if len(cards) == 0 {
				return nil
			}
			now := time.Now().UTC()
			rows := make([]models.Flashcard, len(cards))
			for i, c := range cards {
				rows[i] = models.Flashcard{
					ID:        uuid.NewString(),
					UserID:    userID,
					Subject:   optional(in.Subject),
					Topic:     optional(in.Topic),
					Front:     c.Front,
					Back:      c.Back,
					CreatedAt: now,
				}
			}
			return s.flashcards.InsertBatch(ctx, rows)
		},
	}, userID, in)
}

func decodeCards(raw string) ([]models.Card, error) {
	var parsed struct {
		Cards *[]models.Card `json:"cards"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, err
	}
	if parsed.Cards == nil {
		return nil, errors.New(`missing "cards" key`)
	}
	return *parsed.Cards, nil
}

func (s *flashcardService) List(ctx context.Context, userID string, limit int) ([]models.Flashcard, error) {
	const op = "FlashcardService.List"

	rows, err := s.flashcards.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list flashcards", err)
	}
	return rows, nil
}
