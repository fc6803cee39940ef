// Package prompts builds the message sequences sent to the model. Builders
// are pure: the same input always yields the same sequence.
package prompts

import (
	"encoding/json"
	"time"

	"github.com/avelyx/prepmate/internal/providers/llm"
)

const tutorSystem = `You are an expert IGCSE tutor with deep knowledge across all IGCSE subjects including Mathematics, Physics, Chemistry, Biology, English Language, English Literature, History, Geography, Computer Science, and more.

Your role is to:
- Provide clear, accurate explanations tailored to IGCSE level (ages 14-16)
- Break down complex concepts into digestible parts
- Offer step-by-step solutions for problems
- Provide exam tips and study strategies
- Help with past paper questions and practice
- Encourage and motivate students
- Adapt your teaching style to individual needs

Always be encouraging, patient, and supportive. If a question is unclear, ask for clarification. For mathematical problems, show your working clearly. For essay subjects, provide structure and examples.`

const gradingSystem = `You are an expert Cambridge IGCSE examiner. Grade student responses using authentic IGCSE marking approaches.
Return a STRICT JSON object with these keys:
{
  "overallScore": number,               // 0-100
  "breakdown": {
    "content": number,                  // 0-25
    "structure": number,                // 0-25
    "vocabulary": number,               // 0-25
    "accuracy": number                  // 0-25
  },
  "comments": {
    "strengths": string[],
    "weaknesses": string[],
    "improvements": string[],
    "examinerStyleFeedback": string
  },
  "modelAnswer": string
}
Ensure the model answer is syllabus-accurate for the subject.
If a question is provided, consider it strictly. If criteria are provided, align weighting accordingly.`

const quizSystem = `You are an expert IGCSE question writer. Generate high-quality multiple-choice questions for the specified subject and topic.
Return a STRICT JSON object: { "items": Question[] } where Question = {
  "question": string,
  "options": string[],    // exactly 4 options
  "correctIndex": number, // 0..3
  "explanation": string
}
The difficulty may be "easy", "medium", "hard", or "mixed".`

const flashcardSystem = `You are an expert IGCSE tutor. Generate high-yield flashcards for revision.
Return a STRICT JSON: { "cards": { "front": string, "back": string }[] }.
Keep fronts concise (question/term), backs brief but complete, syllabus-accurate.`

const planSystem = `You are a seasoned IGCSE academic coach. Create a realistic, week-by-week 4-week revision plan tailored to the student, using their recent performance and preferences.
Output Markdown only. Include:
- Priority topics (by subject) with rationale
- Weekly schedule (per day) with time estimates
- Specific practice (past paper codes if applicable)
- Checkpoints and self-assessment criteria
- Tips for exam technique and common pitfalls`

// Chat prepends the tutor persona to the (already windowed, chronological)
// conversation history.
func Chat(history []llm.Message) []llm.Message {
	out := make([]llm.Message, 0, len(history)+1)
	out = append(out, llm.Message{Role: llm.RoleSystem, Content: tutorSystem})
	return append(out, history...)
}

type GradePayload struct {
	Subject  string         `json:"subject"`
	Question *string        `json:"question"`
	Answer   string         `json:"answer"`
	Criteria map[string]any `json:"criteria"`
}

func Grade(p GradePayload) []llm.Message {
	return withPayload(gradingSystem, p)
}

type QuizPayload struct {
	Subject      string  `json:"subject"`
	Topic        *string `json:"topic"`
	NumQuestions int     `json:"numQuestions"`
	Difficulty   string  `json:"difficulty"`
}

func Quiz(p QuizPayload) []llm.Message {
	return withPayload(quizSystem, p)
}

type FlashcardPayload struct {
	Subject    *string `json:"subject"`
	Topic      *string `json:"topic"`
	SourceText *string `json:"sourceText"`
	NumCards   int     `json:"numCards"`
}

func Flashcards(p FlashcardPayload) []llm.Message {
	return withPayload(flashcardSystem, p)
}

type PlanProfile struct {
	DisplayName       string          `json:"display_name"`
	PreferredSubjects []string        `json:"preferred_subjects"`
	Preferences       json.RawMessage `json:"preferences,omitempty"`
}

type PlanAssessment struct {
	Subject        string    `json:"subject"`
	AssessmentType string    `json:"assessment_type"`
	ScoreTotal     *float64  `json:"score_total"`
	ScoreOutOf     int       `json:"score_out_of"`
	CreatedAt      time.Time `json:"created_at"`
}

type PlanAttempt struct {
	ScoreTotal int       `json:"score_total"`
	ScoreOutOf int       `json:"score_out_of"`
	CreatedAt  time.Time `json:"created_at"`
}

type PlanPayload struct {
	Profile     PlanProfile      `json:"profile"`
	Assessments []PlanAssessment `json:"assessments"`
	Attempts    []PlanAttempt    `json:"attempts"`
}

func Plan(p PlanPayload) []llm.Message {
	return withPayload(planSystem, p)
}

func withPayload(system string, payload any) []llm.Message {
	raw, err := json.Marshal(payload)
	if err != nil {
		// all payload types above are marshalable; keep the builder total
		raw = []byte("{}")
	}
	return []llm.Message{
		{Role: llm.RoleSystem, Content: system},
		{Role: llm.RoleUser, Content: string(raw)},
	}
}
