package chat

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"estate/config"
	"estate/internal/domain/service"
	"estate/internal/errors"

	"github.com/openai/openai-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func newChatServer(t *testing.T, status int, body string, got *recordedRequest) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got != nil {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(got))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(server.Close)

	return server
}

func TestOpenAICompleter_Complete(t *testing.T) {
	var got recordedRequest
	server := newChatServer(t, http.StatusOK, `{
		"id": "chatcmpl-1",
		"object": "chat.completion",
		"created": 0,
		"model": "test-model",
		"choices": [{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": " Two bedrooms. "}}]
	}`, &got)

	completer := NewOpenAICompleter(&config.ChatConfig{APIKey: "test-key", BaseURL: server.URL, Model: "test-model"})

	reply, err := completer.Complete(context.Background(), []service.ChatTurn{
		{Text: "How big is it?"},
		{Text: "Which one?", FromBot: true},
		{Text: "The flat"},
	})

	require.NoError(t, err)
	assert.Equal(t, "Two bedrooms.", reply)
	assert.Equal(t, "test-model", got.Model)
	require.Len(t, got.Messages, 4)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "user", got.Messages[1].Role)
	assert.Equal(t, "assistant", got.Messages[2].Role)
	assert.Equal(t, "The flat", got.Messages[3].Content)
}

func TestOpenAICompleter_UpstreamError(t *testing.T) {
	server := newChatServer(t, http.StatusInternalServerError, `{"error": {"message": "boom"}}`, nil)

	completer := NewOpenAICompleter(
		&config.ChatConfig{APIKey: "test-key", BaseURL: server.URL, Model: "test-model"},
		option.WithMaxRetries(0),
	)

	_, err := completer.Complete(context.Background(), []service.ChatTurn{{Text: "hi"}})
	assert.Error(t, err)
}

func TestOpenAICompleter_NoChoices(t *testing.T) {
	server := newChatServer(t, http.StatusOK, `{"id": "x", "object": "chat.completion", "created": 0, "model": "m", "choices": []}`, nil)

	completer := NewOpenAICompleter(&config.ChatConfig{APIKey: "test-key", BaseURL: server.URL, Model: "m"})

	_, err := completer.Complete(context.Background(), []service.ChatTurn{{Text: "hi"}})
	assert.Error(t, err)
}

func TestNewCompleter(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	completer, err := NewCompleter(&config.Config{}, logger)
	require.NoError(t, err)
	_, err = completer.Complete(context.Background(), nil)
	assert.True(t, errors.Is(err, ErrUnavailable))

	completer, err = NewCompleter(&config.Config{Chat: &config.ChatConfig{Provider: config.ChatProviderOpenAI, APIKey: "k", Model: "m"}}, logger)
	require.NoError(t, err)
	assert.IsType(t, &openAICompleter{}, completer)

	_, err = NewCompleter(&config.Config{Chat: &config.ChatConfig{Provider: "oracle"}}, logger)
	assert.Error(t, err)
}
