package memory

import (
	"context"
	"slices"

	"estate/internal/domain/entity"
	"estate/internal/domain/repository"
	"estate/internal/errors"

	"github.com/google/uuid"
)

type conversationRepository struct {
	store *Store
	tx    *dataset
}

func (r *conversationRepository) Create(_ context.Context, conversation *entity.Conversation) error {
	return r.store.with(r.tx, func(d *dataset) error {
		if _, exists := d.conversations[conversation.ID]; exists {
			return errors.Errorf("conversation %s already exists", conversation.ID)
		}
		d.conversations[conversation.ID] = cloneConversation(conversation)

		return nil
	})
}

func (r *conversationRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Conversation, error) {
	var found *entity.Conversation
	err := r.store.with(r.tx, func(d *dataset) error {
		c, ok := d.conversations[id]
		if !ok {
			return errors.WithStack(repository.ErrConversationNotFound)
		}
		found = cloneConversation(c)

		return nil
	})

	return found, err
}

func (r *conversationRepository) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]*entity.Conversation, error) {
	var out []*entity.Conversation
	err := r.store.with(r.tx, func(d *dataset) error {
		for _, c := range d.conversations {
			if c.OwnerID == ownerID {
				out = append(out, cloneConversation(c))
			}
		}

		return nil
	})
	slices.SortFunc(out, func(a, b *entity.Conversation) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})

	return out, err
}

func (r *conversationRepository) AppendMessage(_ context.Context, id uuid.UUID, message entity.Message) error {
	return r.store.with(r.tx, func(d *dataset) error {
		c, ok := d.conversations[id]
		if !ok {
			return errors.WithStack(repository.ErrConversationNotFound)
		}
		updated := cloneConversation(c)
		updated.Messages = append(updated.Messages, message)
		updated.UpdatedAt = message.SentAt
		d.conversations[id] = updated

		return nil
	})
}

func (r *conversationRepository) Delete(_ context.Context, id uuid.UUID) error {
	return r.store.with(r.tx, func(d *dataset) error {
		if _, ok := d.conversations[id]; !ok {
			return errors.WithStack(repository.ErrConversationNotFound)
		}
		delete(d.conversations, id)

		return nil
	})
}

func (r *conversationRepository) DeleteByOwner(_ context.Context, ownerID uuid.UUID) (int64, error) {
	var removed int64
	err := r.store.with(r.tx, func(d *dataset) error {
		for id, c := range d.conversations {
			if c.OwnerID == ownerID {
				delete(d.conversations, id)
				removed++
			}
		}

		return nil
	})

	return removed, err
}
