// Package testutil provides hand-written mocks for service tests.
package testutil

import (
	"context"
	"errors"
	"time"

	"github.com/avelyx/prepmate/internal/models"
	"github.com/avelyx/prepmate/internal/providers/llm"
)

// MockProvider is a mock llm.Provider. CallCount makes "the model was never
// invoked" assertions possible.
type MockProvider struct {
	CompleteFunc func(ctx context.Context, req llm.Request) (string, error)

	CallCount   int
	LastRequest llm.Request
}

func (m *MockProvider) Complete(ctx context.Context, req llm.Request) (string, error) {
	m.CallCount++
	m.LastRequest = req
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, req)
	}
	return "", errors.New("not implemented")
}

func (m *MockProvider) Close() error { return nil }

type MockConversationRepo struct {
	InsertFunc     func(ctx context.Context, c *models.Conversation) error
	GetOwnedFunc   func(ctx context.Context, id, userID string) (*models.Conversation, error)
	ListByUserFunc func(ctx context.Context, userID string, limit int) ([]models.Conversation, error)
}

func (m *MockConversationRepo) Insert(ctx context.Context, c *models.Conversation) error {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, c)
	}
	return errors.New("not implemented")
}

func (m *MockConversationRepo) GetOwned(ctx context.Context, id, userID string) (*models.Conversation, error) {
	if m.GetOwnedFunc != nil {
		return m.GetOwnedFunc(ctx, id, userID)
	}
	return nil, errors.New("not implemented")
}

func (m *MockConversationRepo) ListByUser(ctx context.Context, userID string, limit int) ([]models.Conversation, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID, limit)
	}
	return nil, errors.New("not implemented")
}

type MockMessageRepo struct {
	InsertFunc             func(ctx context.Context, msg *models.Message) error
	ListRecentFunc         func(ctx context.Context, conversationID string, limit int) ([]models.Message, error)
	ListByConversationFunc func(ctx context.Context, conversationID string, limit int) ([]models.Message, error)
}

func (m *MockMessageRepo) Insert(ctx context.Context, msg *models.Message) error {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, msg)
	}
	return errors.New("not implemented")
}

func (m *MockMessageRepo) ListRecent(ctx context.Context, conversationID string, limit int) ([]models.Message, error) {
	if m.ListRecentFunc != nil {
		return m.ListRecentFunc(ctx, conversationID, limit)
	}
	return nil, errors.New("not implemented")
}

func (m *MockMessageRepo) ListByConversation(ctx context.Context, conversationID string, limit int) ([]models.Message, error) {
	if m.ListByConversationFunc != nil {
		return m.ListByConversationFunc(ctx, conversationID, limit)
	}
	return nil, errors.New("not implemented")
}

// InMemoryMessageRepo keeps appended messages and honors the DESC ordering
// and limit contract of the real repo.
type InMemoryMessageRepo struct {
	Messages []models.Message
}

func (m *InMemoryMessageRepo) Insert(_ context.Context, msg *models.Message) error {
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}
	m.Messages = append(m.Messages, *msg)
	return nil
}

func (m *InMemoryMessageRepo) ListRecent(_ context.Context, conversationID string, limit int) ([]models.Message, error) {
	var out []models.Message
	for i := len(m.Messages) - 1; i >= 0 && len(out) < limit; i-- {
		if m.Messages[i].ConversationID == conversationID {
			out = append(out, m.Messages[i])
		}
	}
	return out, nil
}

func (m *InMemoryMessageRepo) ListByConversation(_ context.Context, conversationID string, limit int) ([]models.Message, error) {
	var out []models.Message
	for _, msg := range m.Messages {
		if msg.ConversationID == conversationID && len(out) < limit {
			out = append(out, msg)
		}
	}
	return out, nil
}

type MockAssessmentRepo struct {
	InsertFunc     func(ctx context.Context, a *models.Assessment) error
	ListRecentFunc func(ctx context.Context, userID string, limit int) ([]models.Assessment, error)
}

func (m *MockAssessmentRepo) Insert(ctx context.Context, a *models.Assessment) error {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, a)
	}
	return errors.New("not implemented")
}

func (m *MockAssessmentRepo) ListRecent(ctx context.Context, userID string, limit int) ([]models.Assessment, error) {
	if m.ListRecentFunc != nil {
		return m.ListRecentFunc(ctx, userID, limit)
	}
	return nil, errors.New("not implemented")
}

type MockQuizRepo struct {
	InsertFunc             func(ctx context.Context, q *models.Quiz) error
	GetOwnedFunc           func(ctx context.Context, id, userID string) (*models.Quiz, error)
	InsertAttemptFunc      func(ctx context.Context, a *models.QuizAttempt) error
	ListRecentAttemptsFunc func(ctx context.Context, userID string, limit int) ([]models.QuizAttempt, error)
}

func (m *MockQuizRepo) Insert(ctx context.Context, q *models.Quiz) error {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, q)
	}
	return errors.New("not implemented")
}

func (m *MockQuizRepo) GetOwned(ctx context.Context, id, userID string) (*models.Quiz, error) {
	if m.GetOwnedFunc != nil {
		return m.GetOwnedFunc(ctx, id, userID)
	}
	return nil, errors.New("not implemented")
}

func (m *MockQuizRepo) InsertAttempt(ctx context.Context, a *models.QuizAttempt) error {
	if m.InsertAttemptFunc != nil {
		return m.InsertAttemptFunc(ctx, a)
	}
	return errors.New("not implemented")
}

func (m *MockQuizRepo) ListRecentAttempts(ctx context.Context, userID string, limit int) ([]models.QuizAttempt, error) {
	if m.ListRecentAttemptsFunc != nil {
		return m.ListRecentAttemptsFunc(ctx, userID, limit)
	}
	return nil, errors.New("not implemented")
}

type MockFlashcardRepo struct {
	InsertBatchFunc func(ctx context.Context, cards []models.Flashcard) error
	ListByUserFunc  func(ctx context.Context, userID string, limit int) ([]models.Flashcard, error)
}

func (m *MockFlashcardRepo) InsertBatch(ctx context.Context, cards []models.Flashcard) error {
	if m.InsertBatchFunc != nil {
		return m.InsertBatchFunc(ctx, cards)
	}
	return errors.New("not implemented")
}

func (m *MockFlashcardRepo) ListByUser(ctx context.Context, userID string, limit int) ([]models.Flashcard, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID, limit)
	}
	return nil, errors.New("not implemented")
}

type MockProfileRepo struct {
	GetByUserIDFunc func(ctx context.Context, userID string) (*models.Profile, error)
	UpsertFunc      func(ctx context.Context, p *models.Profile) error
}

func (m *MockProfileRepo) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	if m.GetByUserIDFunc != nil {
		return m.GetByUserIDFunc(ctx, userID)
	}
	return nil, errors.New("not implemented")
}

func (m *MockProfileRepo) Upsert(ctx context.Context, p *models.Profile) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, p)
	}
	return errors.New("not implemented")
}

type MockResourceRequestRepo struct {
	InsertFunc     func(ctx context.Context, r *models.ResourceRequest) error
	ListRecentFunc func(ctx context.Context, userID string, limit int) ([]models.ResourceRequest, error)

	Inserted []models.ResourceRequest
}

func (m *MockResourceRequestRepo) Insert(ctx context.Context, r *models.ResourceRequest) error {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, r)
	}
	m.Inserted = append(m.Inserted, *r)
	return nil
}

func (m *MockResourceRequestRepo) ListRecent(ctx context.Context, userID string, limit int) ([]models.ResourceRequest, error) {
	if m.ListRecentFunc != nil {
		return m.ListRecentFunc(ctx, userID, limit)
	}
	return nil, errors.New("not implemented")
}

// MockCache is an in-memory cache.Cache.
type MockCache struct {
	GetJSONFunc func(ctx context.Context, key string, dst any) (bool, error)
	SetJSONFunc func(ctx context.Context, key string, val any, ttl time.Duration) error
	DelFunc     func(ctx context.Context, keys ...string) error
}

func (m *MockCache) GetJSON(ctx context.Context, key string, dst any) (bool, error) {
	if m.GetJSONFunc != nil {
		return m.GetJSONFunc(ctx, key, dst)
	}
	return false, nil
}

func (m *MockCache) SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error {
	if m.SetJSONFunc != nil {
		return m.SetJSONFunc(ctx, key, val, ttl)
	}
	return nil
}

func (m *MockCache) Del(ctx context.Context, keys ...string) error {
	if m.DelFunc != nil {
		return m.DelFunc(ctx, keys...)
	}
	return nil
}
