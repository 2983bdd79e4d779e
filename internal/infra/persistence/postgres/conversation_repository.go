package postgres

import (
	"context"

	"estate/internal/domain/entity"
	"estate/internal/domain/repository"
	"estate/internal/errors"
	"estate/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// conversationRepository implements the domain.ConversationRepository interface using GORM.
// Messages live in their own table, ordered by their position within the conversation.
type conversationRepository struct {
	db *gorm.DB
}

// NewConversationRepository is the constructor for conversationRepository.
func NewConversationRepository(db *gorm.DB) repository.ConversationRepository {
	return &conversationRepository{db: db}
}

func orderedMessages(db *gorm.DB) *gorm.DB {
	return db.Order("position")
}

func (repo *conversationRepository) Create(ctx context.Context, conversation *entity.Conversation) error {
	m := &model.ConversationModel{
		ID:              conversation.ID,
		OwnerID:         conversation.OwnerID,
		ParticipantRole: conversation.ParticipantRole.String(),
		CreatedAt:       conversation.CreatedAt,
		UpdatedAt:       conversation.UpdatedAt,
	}
	for i, msg := range conversation.Messages {
		m.Messages = append(m.Messages, toMessageModel(conversation.ID, int64(i), msg))
	}

	if err := repo.db.WithContext(ctx).Create(m).Error; err != nil {
		return errors.Wrap(err, "failed to create conversation")
	}

	return nil
}

func toMessageModel(conversationID uuid.UUID, position int64, msg entity.Message) model.MessageModel {
	return model.MessageModel{
		ID:             msg.ID,
		ConversationID: conversationID,
		Position:       position,
		Text:           msg.Text,
		FromBot:        msg.FromBot,
		SentAt:         msg.SentAt,
	}
}

func (repo *conversationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Conversation, error) {
	var m model.ConversationModel
	err := repo.db.WithContext(ctx).
		Preload("Messages", orderedMessages).
		Where("id = ?", id).
		Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrConversationNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find conversation")
	}

	return toConversationDomain(&m), nil
}

func (repo *conversationRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Conversation, error) {
	var rows []model.ConversationModel
	err := repo.db.WithContext(ctx).
		Preload("Messages", orderedMessages).
		Where("owner_id = ?", ownerID).
		Order("updated_at DESC").Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list conversations")
	}

	conversations := make([]*entity.Conversation, 0, len(rows))
	for i := range rows {
		conversations = append(conversations, toConversationDomain(&rows[i]))
	}

	return conversations, nil
}

// AppendMessage locks the conversation row, so concurrent appends get consecutive positions.
func (repo *conversationRepository) AppendMessage(ctx context.Context, id uuid.UUID, message entity.Message) error {
	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var conversation model.ConversationModel
		err := tx.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
			Where("id = ?", id).
			Take(&conversation).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return repository.ErrConversationNotFound
		}
		if err != nil {
			return errors.Wrap(err, "failed to lock conversation")
		}

		var count int64
		if err := tx.Model(&model.MessageModel{}).Where("conversation_id = ?", id).Count(&count).Error; err != nil {
			return errors.Wrap(err, "failed to count messages")
		}

		msg := toMessageModel(id, count, message)
		if err := tx.Create(&msg).Error; err != nil {
			return errors.Wrap(err, "failed to append message")
		}

		err = tx.Model(&model.ConversationModel{}).
			Where("id = ?", id).
			Update("updated_at", message.SentAt).Error

		return errors.Wrap(err, "failed to touch conversation")
	})
}

func (repo *conversationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.MessageModel{}, "conversation_id = ?", id).Error; err != nil {
			return errors.Wrap(err, "failed to delete messages")
		}

		result := tx.Delete(&model.ConversationModel{}, "id = ?", id)
		if result.Error != nil {
			return errors.Wrap(result.Error, "failed to delete conversation")
		}
		if result.RowsAffected == 0 {
			return repository.ErrConversationNotFound
		}

		return nil
	})
}

func (repo *conversationRepository) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var deleted int64
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owned := tx.Model(&model.ConversationModel{}).Select("id").Where("owner_id = ?", ownerID)
		if err := tx.Where("conversation_id IN (?)", owned).Delete(&model.MessageModel{}).Error; err != nil {
			return errors.Wrap(err, "failed to delete messages by owner")
		}

		result := tx.Delete(&model.ConversationModel{}, "owner_id = ?", ownerID)
		if result.Error != nil {
			return errors.Wrap(result.Error, "failed to delete conversations by owner")
		}
		deleted = result.RowsAffected

		return nil
	})

	return deleted, err
}
