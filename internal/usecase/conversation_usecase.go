package usecase

import (
	"context"

	"estate/internal/domain/access"
	"estate/internal/domain/entity"

	"github.com/google/uuid"
)

// AppendMessageInput defines a message to add to a conversation.
type AppendMessageInput struct {
	Text    string
	FromBot bool
}

// SendMessageOutput holds the stored user message and the assistant's reply.
type SendMessageOutput struct {
	Message entity.Message
	Reply   entity.Message
}

// ConversationUsecase defines chat session operations.
type ConversationUsecase interface {
	CreateSession(ctx context.Context, actor *access.Principal) (*entity.Conversation, error)
	AppendMessage(ctx context.Context, actor *access.Principal, id uuid.UUID, input AppendMessageInput) (*entity.Message, error)

	// SendMessage appends the text as a user message and appends the assistant's reply.
	SendMessage(ctx context.Context, actor *access.Principal, id uuid.UUID, text string) (*SendMessageOutput, error)

	GetSession(ctx context.Context, actor *access.Principal, id uuid.UUID) (*entity.Conversation, error)
	ListByOwner(ctx context.Context, actor *access.Principal, ownerID uuid.UUID) ([]*entity.Conversation, error)
	DeleteSession(ctx context.Context, actor *access.Principal, id uuid.UUID) error
}
