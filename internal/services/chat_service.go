package services

import (
	"context"
	"errors"
	"strings"
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

// historyWindow caps the prompt context to the most recent messages; older
// turns are dropped, not summarized.
const historyWindow = 10

const chatMaxTokens = 1000

type ChatService interface {
	Send(ctx context.Context, userID, message, conversationID string) (*ChatResult, error)
	ListConversations(ctx context.Context, userID string, limit int) ([]models.Conversation, error)
	ListMessages(ctx context.Context, userID, conversationID string, limit int) ([]models.Message, error)
}

type ChatResult struct {
	Response       string
	ConversationID string

	// PersistErr is set when the assistant turn could not be stored; the
	// reply is still returned.
	PersistErr error
}

type chatService struct {
	convos   pgrepo.ConversationRepo
	messages pgrepo.MessageRepo
	inv      llm.Provider
	log      *logrus.Logger
}

func NewChatService(convos pgrepo.ConversationRepo, messages pgrepo.MessageRepo, inv llm.Provider, log *logrus.Logger) ChatService {
	return &chatService{convos: convos, messages: messages, inv: inv, log: log}
}

func (s *chatService) Send(ctx context.Context, userID, message, conversationID string) (*ChatResult, error) {
	const op = "ChatService.Send"

	if strings.TrimSpace(message) == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "message is required", nil)
	}

	conv, err := s.resolveConversation(ctx, op, userID, message, conversationID)
	if err != nil {
		return nil, err
	}

	// Pre-model write; a failure here is terminal since the turn would
	// otherwise vanish from its own history.
	userMsg := &models.Message{
		ID:             uuid.NewString(),
		ConversationID: conv.ID,
		Role:           models.RoleUser,
		Content:        message,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.messages.Insert(ctx, userMsg); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to save user message", err)
	}

	history, err := s.recentHistory(ctx, conv.ID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load conversation history", err)
	}

	res, err := tasks.Run(ctx, s.inv, s.log, tasks.Descriptor[[]llm.Message, string]{
		Name:      op,
		Prompt:    prompts.Chat,
		MaxTokens: chatMaxTokens,
		Decode: func(raw string) (string, error) {
			if strings.TrimSpace(raw) == "" {
				return "", errors.New("empty model response")
			}
			return raw, nil
		},
		Persist: func(ctx context.Context, userID string, _ []llm.Message, reply string) error {
			return s.messages.Insert(ctx, &models.Message{
				ID:             uuid.NewString(),
				ConversationID: conv.ID,
				Role:           models.RoleAssistant,
				Content:        reply,
				CreatedAt:      time.Now().UTC(),
			})
		},
	}, userID, history)
	if err != nil {
		return nil, err
	}

	return &ChatResult{
		Response:       res.Output,
		ConversationID: conv.ID,
		PersistErr:     res.PersistErr,
	}, nil
}

// resolveConversation loads the caller's conversation, or creates one with a
// title derived from the first message.
func (s *chatService) resolveConversation(ctx context.Context, op, userID, message, conversationID string) (*models.Conversation, error) {
	if conversationID != "" {
		conv, err := s.convos.GetOwned(ctx, conversationID, userID)
		if err != nil {
			if errors.Is(err, utils.ErrNotFound) {
				return nil, utils.E(utils.CodeNotFound, op, "conversation not found", err)
			}
			return nil, utils.E(utils.CodeInternal, op, "failed to load conversation", err)
		}
		return conv, nil
	}

	conv := &models.Conversation{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     models.ConversationTitle(message),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.convos.Insert(ctx, conv); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create conversation", err)
	}
	return conv, nil
}

// recentHistory returns the last historyWindow messages in chronological
// order, mapped to model roles.
func (s *chatService) recentHistory(ctx context.Context, conversationID string) ([]llm.Message, error) {
	rows, err := s.messages.ListRecent(ctx, conversationID, historyWindow)
	if err != nil {
		return nil, err
	}

	// repo returns DESC; the model wants oldest first
	out := make([]llm.Message, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		role := llm.RoleUser
		if rows[i].Role == models.RoleAssistant {
			role = llm.RoleAssistant
		}
		out = append(out, llm.Message{Role: role, Content: rows[i].Content})
	}
	return out, nil
}

func (s *chatService) ListConversations(ctx context.Context, userID string, limit int) ([]models.Conversation, error) {
	const op = "ChatService.ListConversations"

	rows, err := s.convos.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list conversations", err)
	}
	return rows, nil
}

func (s *chatService) ListMessages(ctx context.Context, userID, conversationID string, limit int) ([]models.Message, error) {
	const op = "ChatService.ListMessages"

	if conversationID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "conversation_id is required", nil)
	}

	if _, err := s.convos.GetOwned(ctx, conversationID, userID); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "conversation not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load conversation", err)
	}

	rows, err := s.messages.ListByConversation(ctx, conversationID, limit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list messages", err)
	}
	return rows, nil
}
