package services

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/avelyx/prepmate/internal/models"
	"github.com/avelyx/prepmate/internal/providers/llm"
	"github.com/avelyx/prepmate/internal/testutil"
	"github.com/avelyx/prepmate/internal/utils"
)

func TestFlashcardGenerate_RequiresSubjectOrSourceText(t *testing.T) {
	inv := &testutil.MockProvider{}
	svc := NewFlashcardService(&testutil.MockFlashcardRepo{}, inv, logrus.New())

	_, err := svc.Generate(context.Background(), "user-1", FlashcardInput{Topic: "osmosis"})
	if !utils.IsCode(err, utils.CodeInvalidArgument) {
		t.Fatalf("expected INVALID_ARGUMENT, got %v", err)
	}
	if inv.CallCount != 0 {
		t.Errorf("model invoked %d times, want 0", inv.CallCount)
	}
}

func TestFlashcardGenerate_SourceTextAloneIsEnough(t *testing.T) {
	inv := &testutil.MockProvider{
		CompleteFunc: func(context.Context, llm.Request) (string, error) {
			return `{"cards":[{"front":"Osmosis","back":"Movement of water across a membrane"}]}`, nil
		},
	}
	repo := &testutil.MockFlashcardRepo{
		InsertBatchFunc: func(context.Context, []models.Flashcard) error { return nil },
	}

	svc := NewFlashcardService(repo, inv, logrus.New())
	res, err := svc.Generate(context.Background(), "user-1", FlashcardInput{SourceText: "notes about osmosis"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(res.Output) != 1 || res.Output[0].Front != "Osmosis" {
		t.Errorf("cards = %+v", res.Output)
	}
}

func TestFlashcardGenerate_PersistsMatchingRows(t *testing.T) {
	inv := &testutil.MockProvider{
		CompleteFunc: func(context.Context, llm.Request) (string, error) {
			return `{"cards":[
				{"front":"Mitosis","back":"Cell division producing identical cells"},
				{"front":"Meiosis","back":"Cell division producing gametes"}
			]}`, nil
		},
	}

	var stored []models.Flashcard
	repo := &testutil.MockFlashcardRepo{
		InsertBatchFunc: func(_ context.Context, rows []models.Flashcard) error {
			stored = rows
			return nil
		},
	}

	svc := NewFlashcardService(repo, inv, logrus.New())
	res, err := svc.Generate(context.Background(), "user-1", FlashcardInput{Subject: "Biology", Topic: "cell division"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if res.PersistErr != nil {
		t.Fatalf("unexpected persist error: %v", res.PersistErr)
	}

	if len(stored) != len(res.Output) {
		t.Fatalf("stored %d rows for %d cards", len(stored), len(res.Output))
	}
	for i, row := range stored {
		if row.Front != res.Output[i].Front || row.Back != res.Output[i].Back {
			t.Errorf("row %d = %q/%q, card = %q/%q", i, row.Front, row.Back, res.Output[i].Front, res.Output[i].Back)
		}
		if row.UserID != "user-1" {
			t.Errorf("row %d owner = %q", i, row.UserID)
		}
		if row.Subject == nil || *row.Subject != "Biology" {
			t.Errorf("row %d subject = %v", i, row.Subject)
		}
	}
}

func TestFlashcardGenerate_MissingCardsKey(t *testing.T) {
	inv := &testutil.MockProvider{
		CompleteFunc: func(context.Context, llm.Request) (string, error) {
			return `{"flashcards":[]}`, nil
		},
	}
	inserted := false
	repo := &testutil.MockFlashcardRepo{
		InsertBatchFunc: func(context.Context, []models.Flashcard) error {
			inserted = true
			return nil
		},
	}

	svc := NewFlashcardService(repo, inv, logrus.New())
	_, err := svc.Generate(context.Background(), "user-1", FlashcardInput{Subject: "Chemistry"})
	if !utils.IsCode(err, utils.CodeModelOutput) {
		t.Fatalf("expected MODEL_OUTPUT, got %v", err)
	}
	if inserted {
		t.Error("malformed output must not be persisted")
	}
}

func TestFlashcardGenerate_EmptyCardListSkipsInsert(t *testing.T) {
	inv := &testutil.MockProvider{
		CompleteFunc: func(context.Context, llm.Request) (string, error) {
			return `{"cards":[]}`, nil
		},
	}
	inserted := false
	repo := &testutil.MockFlashcardRepo{
		InsertBatchFunc: func(context.Context, []models.Flashcard) error {
			inserted = true
			return nil
		},
	}

	svc := NewFlashcardService(repo, inv, logrus.New())
	res, err := svc.Generate(context.Background(), "user-1", FlashcardInput{Subject: "Chemistry"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(res.Output) != 0 {
		t.Errorf("cards = %+v, want none", res.Output)
	}
	if inserted {
		t.Error("insert called for an empty batch")
	}
}
