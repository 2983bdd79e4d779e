package impl

import (
	"context"
	"testing"

	"estate/internal/domain/entity"
	domainerrors "estate/internal/domain/errors"
	"estate/internal/domain/service"
	"estate/internal/errors"
	"estate/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestConversationService_CreateSession(t *testing.T) {
	app := newTestApp()
	ctx := context.Background()
	customer := app.registerCustomer(ctx, "c@x.io")

	first, err := app.conversations.CreateSession(ctx, customer)
	require.NoError(t, err)
	second, err := app.conversations.CreateSession(ctx, customer)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.NotEqual(t, customer.ID, first.ID)
	assert.Equal(t, customer.ID, first.OwnerID)
	assert.Equal(t, entity.RoleCustomer, first.ParticipantRole)
	assert.Empty(t, first.Messages)

	_, err = app.conversations.CreateSession(ctx, nil)
	assert.True(t, errors.Is(err, domainerrors.ErrAuthenticationRequired))
}

func TestConversationService_AppendMessage_KeepsOrder(t *testing.T) {
	app := newTestApp()
	ctx := context.Background()
	customer := app.registerCustomer(ctx, "c@x.io")
	session, err := app.conversations.CreateSession(ctx, customer)
	require.NoError(t, err)

	for _, text := range []string{"one", "two", "three"} {
		_, err := app.conversations.AppendMessage(ctx, customer, session.ID, usecase.AppendMessageInput{Text: text})
		require.NoError(t, err)
	}

	got, err := app.conversations.GetSession(ctx, customer, session.ID)
	require.NoError(t, err)
	require.Len(t, got.Messages, 3)
	assert.Equal(t, "one", got.Messages[0].Text)
	assert.Equal(t, "three", got.Messages[2].Text)
	assert.Equal(t, got.Messages[2].SentAt, got.UpdatedAt)

	_, err = app.conversations.AppendMessage(ctx, customer, session.ID, usecase.AppendMessageInput{Text: "  "})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestConversationService_OnlyOwnerOrAdmin(t *testing.T) {
	app := newTestApp()
	ctx := context.Background()
	owner := app.registerCustomer(ctx, "c@x.io")
	stranger := app.registerSeller(ctx, "s@example.com", "seller")
	session, err := app.conversations.CreateSession(ctx, owner)
	require.NoError(t, err)

	_, err = app.conversations.GetSession(ctx, stranger, session.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrAuthorizationDenied))

	_, err = app.conversations.AppendMessage(ctx, stranger, session.ID, usecase.AppendMessageInput{Text: "hi"})
	assert.True(t, errors.Is(err, domainerrors.ErrAuthorizationDenied))

	_, err = app.conversations.ListByOwner(ctx, stranger, owner.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrAuthorizationDenied))

	sessions, err := app.conversations.ListByOwner(ctx, app.admin(ctx), owner.ID)
	require.NoError(t, err)
	assert.Len(t, sessions, 1)

	_, err = app.conversations.GetSession(ctx, owner, uuid.New())
	assert.True(t, errors.Is(err, domainerrors.ErrConversationNotFound))
}

func TestConversationService_ListByOwner_MostRecentlyUpdatedFirst(t *testing.T) {
	app := newTestApp()
	ctx := context.Background()
	customer := app.registerCustomer(ctx, "c@x.io")

	older, err := app.conversations.CreateSession(ctx, customer)
	require.NoError(t, err)
	newer, err := app.conversations.CreateSession(ctx, customer)
	require.NoError(t, err)

	_, err = app.conversations.AppendMessage(ctx, customer, older.ID, usecase.AppendMessageInput{Text: "bump"})
	require.NoError(t, err)

	sessions, err := app.conversations.ListByOwner(ctx, customer, uuid.Nil)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, older.ID, sessions[0].ID)
	assert.Equal(t, newer.ID, sessions[1].ID)
}

func TestConversationService_SendMessage(t *testing.T) {
	app := newTestApp()
	ctx := context.Background()
	customer := app.registerCustomer(ctx, "c@x.io")
	session, err := app.conversations.CreateSession(ctx, customer)
	require.NoError(t, err)

	for _, text := range []string{"a", "b", "c", "d"} {
		_, err := app.conversations.AppendMessage(ctx, customer, session.ID, usecase.AppendMessageInput{Text: text})
		require.NoError(t, err)
	}

	app.completer.
		On("Complete", mock.Anything, mock.MatchedBy(func(history []service.ChatTurn) bool {
			// History limit is 4 in the test config: the three latest stored messages plus the new one.
			return len(history) == 4 && history[0].Text == "b" && history[3].Text == "any flats?"
		})).
		Return("Plenty.", nil).
		Once()

	out, err := app.conversations.SendMessage(ctx, customer, session.ID, "any flats?")
	require.NoError(t, err)
	assert.Equal(t, "any flats?", out.Message.Text)
	assert.False(t, out.Message.FromBot)
	assert.Equal(t, "Plenty.", out.Reply.Text)
	assert.True(t, out.Reply.FromBot)

	got, err := app.conversations.GetSession(ctx, customer, session.ID)
	require.NoError(t, err)
	assert.Len(t, got.Messages, 6)
	app.completer.AssertExpectations(t)
}

func TestConversationService_SendMessage_CompleterFailureStoresApology(t *testing.T) {
	app := newTestApp()
	ctx := context.Background()
	customer := app.registerCustomer(ctx, "c@x.io")
	session, err := app.conversations.CreateSession(ctx, customer)
	require.NoError(t, err)

	app.completer.On("Complete", mock.Anything, mock.Anything).Return("", errors.New("upstream timeout")).Once()

	out, err := app.conversations.SendMessage(ctx, customer, session.ID, "hello")
	require.NoError(t, err)
	assert.Equal(t, ApologyReply, out.Reply.Text)
	assert.True(t, out.Reply.FromBot)
}

func TestConversationService_DeleteSession(t *testing.T) {
	app := newTestApp()
	ctx := context.Background()
	customer := app.registerCustomer(ctx, "c@x.io")
	session, err := app.conversations.CreateSession(ctx, customer)
	require.NoError(t, err)

	require.NoError(t, app.conversations.DeleteSession(ctx, customer, session.ID))

	_, err = app.conversations.GetSession(ctx, customer, session.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrConversationNotFound))
}
