package prompts

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/avelyx/prepmate/internal/providers/llm"
)

func TestChat_PrependsPersona(t *testing.T) {
	history := []llm.Message{
		{Role: llm.RoleUser, Content: "What is osmosis?"},
		{Role: llm.RoleAssistant, Content: "Movement of water..."},
		{Role: llm.RoleUser, Content: "And diffusion?"},
	}

	out := Chat(history)
	if len(out) != 4 {
		t.Fatalf("got %d messages, want 4", len(out))
	}
	if out[0].Role != llm.RoleSystem {
		t.Errorf("first role = %q, want system", out[0].Role)
	}
	if !strings.Contains(out[0].Content, "IGCSE tutor") {
		t.Error("system message is not the tutor persona")
	}
	if !reflect.DeepEqual(out[1:], history) {
		t.Error("history reordered or mutated")
	}
}

func TestChat_DoesNotMutateInput(t *testing.T) {
	history := make([]llm.Message, 0, 8)
	history = append(history, llm.Message{Role: llm.RoleUser, Content: "hi"})

	_ = Chat(history)
	if history[0].Content != "hi" || len(history) != 1 {
		t.Error("input slice mutated")
	}
}

func TestGrade_PayloadCarriedAsJSON(t *testing.T) {
	q := "Describe the water cycle."
	msgs := Grade(GradePayload{
		Subject:  "Geography",
		Question: &q,
		Answer:   "Water evaporates...",
		Criteria: map[string]any{"focus": "keywords"},
	})

	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(msgs))
	}
	if msgs[0].Role != llm.RoleSystem || !strings.Contains(msgs[0].Content, "examiner") {
		t.Error("system message is not the examiner persona")
	}
	for _, key := range []string{"overallScore", "breakdown", "comments", "modelAnswer"} {
		if !strings.Contains(msgs[0].Content, key) {
			t.Errorf("output contract missing %q", key)
		}
	}

	var payload GradePayload
	if err := json.Unmarshal([]byte(msgs[1].Content), &payload); err != nil {
		t.Fatalf("user message not JSON: %v", err)
	}
	if payload.Subject != "Geography" || payload.Question == nil || *payload.Question != q {
		t.Errorf("payload = %+v", payload)
	}
}

func TestQuiz_ContractNamesFourOptions(t *testing.T) {
	msgs := Quiz(QuizPayload{Subject: "Physics", NumQuestions: 5, Difficulty: "mixed"})

	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(msgs))
	}
	for _, want := range []string{`"items"`, "correctIndex", "exactly 4 options"} {
		if !strings.Contains(msgs[0].Content, want) {
			t.Errorf("quiz contract missing %q", want)
		}
	}

	var payload QuizPayload
	if err := json.Unmarshal([]byte(msgs[1].Content), &payload); err != nil {
		t.Fatalf("user message not JSON: %v", err)
	}
	if payload.NumQuestions != 5 || payload.Difficulty != "mixed" {
		t.Errorf("payload = %+v", payload)
	}
}

func TestFlashcards_ContractNamesCards(t *testing.T) {
	subject := "Biology"
	msgs := Flashcards(FlashcardPayload{Subject: &subject, NumCards: 12})

	for _, want := range []string{`"cards"`, `"front"`, `"back"`} {
		if !strings.Contains(msgs[0].Content, want) {
			t.Errorf("flashcard contract missing %q", want)
		}
	}
}

func TestPlan_Deterministic(t *testing.T) {
	payload := PlanPayload{
		Profile: PlanProfile{DisplayName: "Amira", PreferredSubjects: []string{"Physics"}},
	}

	first := Plan(payload)
	second := Plan(payload)
	if !reflect.DeepEqual(first, second) {
		t.Error("same payload produced different prompts")
	}
	if !strings.Contains(first[0].Content, "Markdown") {
		t.Error("plan contract does not ask for Markdown")
	}
	if !strings.Contains(first[1].Content, "Amira") {
		t.Error("payload not serialized into the user message")
	}
}
