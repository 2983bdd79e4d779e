package handler

import (
	"estate/internal/delivery/api/response"
	"estate/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ChatHandlerParams holds dependencies for ChatHandler, injected by Fx.
type ChatHandlerParams struct {
	fx.In

	ConversationUC usecase.ConversationUsecase
}

// ChatHandler serves chat sessions with the assistant.
type ChatHandler struct {
	conversationUC usecase.ConversationUsecase
}

// NewChatHandler is the constructor for ChatHandler
func NewChatHandler(params ChatHandlerParams) *ChatHandler {
	return &ChatHandler{conversationUC: params.ConversationUC}
}

// postMessageRequest appends a message. A user message gets an assistant reply unless
// reply is false; a bot message is stored as is.
type postMessageRequest struct {
	Text    string `json:"text" validate:"required"`
	FromBot bool   `json:"fromBot"`
	Reply   *bool  `json:"reply"`
}

func (h *ChatHandler) Create(c echo.Context) error {
	conversation, err := h.conversationUC.CreateSession(c.Request().Context(), actor(c))
	if err != nil {
		return err
	}

	return response.Created(c, "Chat session created successfully", conversation)
}

// List returns the caller's sessions, or another owner's when the caller is an admin.
func (h *ChatHandler) List(c echo.Context) error {
	q := newQueryParams(c)
	ownerID := q.UUID("ownerId")
	if err := q.err(); err != nil {
		return err
	}

	owner := uuid.Nil
	if ownerID != nil {
		owner = *ownerID
	}

	conversations, err := h.conversationUC.ListByOwner(c.Request().Context(), actor(c), owner)
	if err != nil {
		return err
	}

	return response.OK(c, "Chat sessions retrieved successfully", conversations)
}

func (h *ChatHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	conversation, err := h.conversationUC.GetSession(c.Request().Context(), actor(c), id)
	if err != nil {
		return err
	}

	return response.OK(c, "Chat session retrieved successfully", conversation)
}

func (h *ChatHandler) PostMessage(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req postMessageRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	if req.FromBot || (req.Reply != nil && !*req.Reply) {
		msg, err := h.conversationUC.AppendMessage(ctx, actor(c), id, usecase.AppendMessageInput{
			Text:    req.Text,
			FromBot: req.FromBot,
		})
		if err != nil {
			return err
		}

		return response.Created(c, "Message added successfully", msg)
	}

	out, err := h.conversationUC.SendMessage(ctx, actor(c), id, req.Text)
	if err != nil {
		return err
	}

	return response.Created(c, "Message sent successfully", map[string]any{
		"message": out.Message,
		"reply":   out.Reply,
	})
}

func (h *ChatHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.conversationUC.DeleteSession(c.Request().Context(), actor(c), id); err != nil {
		return err
	}

	return response.OK(c, "Chat session deleted successfully", nil)
}
