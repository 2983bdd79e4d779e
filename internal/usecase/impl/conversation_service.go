package impl

import (
	"context"
	"log/slog"
	"strings"

	"estate/config"
	"estate/internal/domain/access"
	"estate/internal/domain/entity"
	"estate/internal/domain/repository"
	"estate/internal/domain/service"
	"estate/internal/infra/metrics"
	"estate/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// ApologyReply is stored as the assistant's message when no reply could be generated.
const ApologyReply = "Sorry, I couldn't generate a reply right now. Please try again later."

const defaultHistoryLimit = 10

// conversationService implements the ConversationUsecase interface.
type conversationService struct {
	conversationRepo repository.ConversationRepository
	completer        service.Completer
	historyLimit     int
	metrics          *metrics.Metrics
	logger           *slog.Logger
}

// ConversationServiceParams holds dependencies for ConversationService, injected by Fx.
type ConversationServiceParams struct {
	fx.In

	ConversationRepo repository.ConversationRepository
	Completer        service.Completer
	Config           *config.Config
	Metrics          *metrics.Metrics `optional:"true"`
	Logger           *slog.Logger
}

// NewConversationService is the constructor for conversationService.
func NewConversationService(params ConversationServiceParams) usecase.ConversationUsecase {
	historyLimit := defaultHistoryLimit
	if params.Config != nil && params.Config.Chat != nil && params.Config.Chat.HistoryLimit > 0 {
		historyLimit = params.Config.Chat.HistoryLimit
	}

	return &conversationService{
		conversationRepo: params.ConversationRepo,
		completer:        params.Completer,
		historyLimit:     historyLimit,
		metrics:          params.Metrics,
		logger:           params.Logger,
	}
}

// CreateSession opens an empty conversation owned by the caller.
func (srv *conversationService) CreateSession(ctx context.Context, actor *access.Principal) (*entity.Conversation, error) {
	if err := access.Authorize(actor, access.OpCreate, access.Resource{Kind: access.KindConversation}); err != nil {
		return nil, err
	}

	now := utcNow()
	conversation := &entity.Conversation{
		ID:              uuid.New(),
		OwnerID:         actor.ID,
		ParticipantRole: actor.Role,
		Messages:        []entity.Message{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := srv.conversationRepo.Create(ctx, conversation); err != nil {
		return nil, mapStoreError(err, "failed to create conversation")
	}

	logger(ctx, srv.logger).Debug("Conversation created", slog.Any("conversationID", conversation.ID))

	return conversation, nil
}

func (srv *conversationService) AppendMessage(ctx context.Context, actor *access.Principal, id uuid.UUID, input usecase.AppendMessageInput) (*entity.Message, error) {
	if _, err := srv.loadForOwner(ctx, actor, access.OpAppend, id); err != nil {
		return nil, err
	}

	message, err := srv.append(ctx, id, input.Text, input.FromBot)
	if err != nil {
		return nil, err
	}

	return message, nil
}

// SendMessage stores the caller's message, asks the assistant for a reply using the
// recent history, and stores the reply. An assistant failure is stored as an apology.
func (srv *conversationService) SendMessage(ctx context.Context, actor *access.Principal, id uuid.UUID, text string) (*usecase.SendMessageOutput, error) {
	conversation, err := srv.loadForOwner(ctx, actor, access.OpAppend, id)
	if err != nil {
		return nil, err
	}

	message, err := srv.append(ctx, id, text, false)
	if err != nil {
		return nil, err
	}

	history := append(conversation.Messages, *message)
	if len(history) > srv.historyLimit {
		history = history[len(history)-srv.historyLimit:]
	}

	replyText := srv.complete(ctx, id, history)

	reply, err := srv.append(ctx, id, replyText, true)
	if err != nil {
		return nil, err
	}

	return &usecase.SendMessageOutput{Message: *message, Reply: *reply}, nil
}

func (srv *conversationService) complete(ctx context.Context, id uuid.UUID, history []entity.Message) string {
	turns := make([]service.ChatTurn, 0, len(history))
	for _, m := range history {
		turns = append(turns, service.ChatTurn{FromBot: m.FromBot, Text: m.Text})
	}

	reply, err := srv.completer.Complete(ctx, turns)
	if err == nil && strings.TrimSpace(reply) != "" {
		srv.metrics.IncChatCompletion(metrics.OutcomeSuccess)

		return reply
	}

	srv.metrics.IncChatCompletion(metrics.OutcomeFailure)
	logger(ctx, srv.logger).Warn("Assistant reply unavailable", slog.Any("conversationID", id), slog.Any("error", err))

	return ApologyReply
}

func (srv *conversationService) append(ctx context.Context, id uuid.UUID, text string, fromBot bool) (*entity.Message, error) {
	var errs fieldErrors
	errs.required("text", text)
	if err := errs.err(); err != nil {
		return nil, err
	}

	message := entity.Message{
		ID:      uuid.New(),
		Text:    text,
		FromBot: fromBot,
		SentAt:  utcNow(),
	}
	if err := srv.conversationRepo.AppendMessage(ctx, id, message); err != nil {
		return nil, mapStoreError(err, "failed to append message")
	}

	return &message, nil
}

func (srv *conversationService) GetSession(ctx context.Context, actor *access.Principal, id uuid.UUID) (*entity.Conversation, error) {
	return srv.loadForOwner(ctx, actor, access.OpRead, id)
}

// ListByOwner returns the owner's conversations, most recently updated first.
// A zero ownerID means the caller's own conversations.
func (srv *conversationService) ListByOwner(ctx context.Context, actor *access.Principal, ownerID uuid.UUID) ([]*entity.Conversation, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if ownerID == uuid.Nil {
		ownerID = actor.ID
	}
	if err := access.Authorize(actor, access.OpList, access.Resource{Kind: access.KindConversation, OwnerID: ownerID}); err != nil {
		return nil, err
	}

	conversations, err := srv.conversationRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, mapStoreError(err, "failed to list conversations")
	}
	if conversations == nil {
		conversations = []*entity.Conversation{}
	}

	return conversations, nil
}

func (srv *conversationService) DeleteSession(ctx context.Context, actor *access.Principal, id uuid.UUID) error {
	if _, err := srv.loadForOwner(ctx, actor, access.OpDelete, id); err != nil {
		return err
	}

	if err := srv.conversationRepo.Delete(ctx, id); err != nil {
		return mapStoreError(err, "failed to delete conversation")
	}

	return nil
}

// loadForOwner fetches a conversation and checks that the actor may perform op on it.
func (srv *conversationService) loadForOwner(ctx context.Context, actor *access.Principal, op access.Operation, id uuid.UUID) (*entity.Conversation, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}

	conversation, err := srv.conversationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(err, "failed to load conversation")
	}
	if err := access.Authorize(actor, op, access.Resource{Kind: access.KindConversation, OwnerID: conversation.OwnerID}); err != nil {
		return nil, err
	}

	return conversation, nil
}
