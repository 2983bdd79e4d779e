package repository

import (
	"context"

	"estate/internal/domain/entity"

	"github.com/google/uuid"
)

// ConversationRepository defines the operations of the conversation store.
type ConversationRepository interface {
	Create(ctx context.Context, conversation *entity.Conversation) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Conversation, error)

	// ListByOwner returns the owner's conversations, most recently updated first.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Conversation, error)

	// AppendMessage adds a message to the end of the log as a single atomic write
	// and moves the conversation's UpdatedAt to the message's SentAt.
	AppendMessage(ctx context.Context, id uuid.UUID, message entity.Message) error

	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
}
