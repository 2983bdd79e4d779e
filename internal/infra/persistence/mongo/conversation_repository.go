package mongo

import (
	"context"

	"estate/internal/domain/entity"
	"estate/internal/domain/repository"
	"estate/internal/errors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// conversationRepository implements repository.ConversationRepository on the conversations collection.
type conversationRepository struct {
	collections
}

func (repo *conversationRepository) Create(ctx context.Context, conversation *entity.Conversation) error {
	_, err := repo.coll(conversationsCollection).InsertOne(repo.scope(ctx), toConversationDocument(conversation))

	return errors.Wrap(err, "failed to create conversation")
}

func (repo *conversationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Conversation, error) {
	var doc conversationDocument
	err := repo.coll(conversationsCollection).FindOne(repo.scope(ctx), bson.D{{Key: "_id", Value: id.String()}}).Decode(&doc)
	if err != nil {
		return nil, translateFindError(err, repository.ErrConversationNotFound, "failed to find conversation")
	}

	return doc.toDomain()
}

func (repo *conversationRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Conversation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}, {Key: "_id", Value: 1}})
	cursor, err := repo.coll(conversationsCollection).Find(repo.scope(ctx), bson.D{{Key: "ownerId", Value: ownerID.String()}}, opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list conversations")
	}

	var docs []conversationDocument
	if err := cursor.All(repo.scope(ctx), &docs); err != nil {
		return nil, errors.Wrap(err, "failed to decode conversations")
	}

	return decodeAll(docs, (*conversationDocument).toDomain)
}

// AppendMessage pushes onto the embedded log. A single-document update is atomic, so
// concurrent appends never lose a message.
func (repo *conversationRepository) AppendMessage(ctx context.Context, id uuid.UUID, message entity.Message) error {
	update := bson.D{
		{Key: "$push", Value: bson.D{{Key: "messages", Value: toMessageDocument(message)}}},
		{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: message.SentAt}}},
	}

	result, err := repo.coll(conversationsCollection).UpdateByID(repo.scope(ctx), id.String(), update)
	if err != nil {
		return errors.Wrap(err, "failed to append message")
	}
	if result.MatchedCount == 0 {
		return errors.WithStack(repository.ErrConversationNotFound)
	}

	return nil
}

func (repo *conversationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := repo.coll(conversationsCollection).DeleteOne(repo.scope(ctx), bson.D{{Key: "_id", Value: id.String()}})
	if err != nil {
		return errors.Wrap(err, "failed to delete conversation")
	}
	if result.DeletedCount == 0 {
		return errors.WithStack(repository.ErrConversationNotFound)
	}

	return nil
}

func (repo *conversationRepository) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	result, err := repo.coll(conversationsCollection).DeleteMany(repo.scope(ctx), bson.D{{Key: "ownerId", Value: ownerID.String()}})
	if err != nil {
		return 0, errors.Wrap(err, "failed to delete conversations by owner")
	}

	return result.DeletedCount, nil
}
