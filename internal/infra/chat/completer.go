// Package chat provides the assistant that answers conversation messages.
package chat

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"estate/config"
	"estate/internal/domain/service"
	"estate/internal/errors"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const systemPrompt = "You are a helpful real-estate assistant. Answer questions about buying, " +
	"selling and renting property concisely. If you do not know something, say so."

const defaultTimeout = 20 * time.Second

// ErrUnavailable is returned when no assistant provider is configured.
var ErrUnavailable = errors.New("chat assistant is not configured")

// NewCompleter returns the Completer for chat.provider.
func NewCompleter(cfg *config.Config, logger *slog.Logger) (service.Completer, error) {
	if cfg.Chat == nil || cfg.Chat.Provider == "" || cfg.Chat.Provider == config.ChatProviderNone {
		logger.Info("Chat assistant disabled, replies fall back to the apology text")

		return unavailableCompleter{}, nil
	}

	switch cfg.Chat.Provider {
	case config.ChatProviderOpenAI:
		return NewOpenAICompleter(cfg.Chat), nil
	default:
		return nil, errors.Errorf("unknown chat provider %q", cfg.Chat.Provider)
	}
}

type unavailableCompleter struct{}

func (unavailableCompleter) Complete(context.Context, []service.ChatTurn) (string, error) {
	return "", ErrUnavailable
}

// openAICompleter asks an OpenAI-compatible chat completions endpoint for the reply.
type openAICompleter struct {
	client  openai.Client
	model   string
	timeout time.Duration
}

// NewOpenAICompleter builds a completer from the chat configuration. A base URL lets it
// talk to any OpenAI-compatible server.
func NewOpenAICompleter(cfg *config.ChatConfig, opts ...option.RequestOption) service.Completer {
	requestOpts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		requestOpts = append(requestOpts, option.WithBaseURL(cfg.BaseURL))
	}
	requestOpts = append(requestOpts, opts...)

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &openAICompleter{
		client:  openai.NewClient(requestOpts...),
		model:   cfg.Model,
		timeout: timeout,
	}
}

func (c *openAICompleter) Complete(ctx context.Context, history []service.ChatTurn) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(c.model),
		Messages: buildMessages(history),
	})
	if err != nil {
		return "", errors.Wrap(err, "chat completion request failed")
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}

	reply := strings.TrimSpace(resp.Choices[0].Message.Content)
	if reply == "" {
		return "", errors.New("chat completion returned an empty reply")
	}

	return reply, nil
}

func buildMessages(history []service.ChatTurn) []openai.ChatCompletionMessageParamUnion {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+1)
	messages = append(messages, openai.SystemMessage(systemPrompt))

	for _, turn := range history {
		if turn.FromBot {
			messages = append(messages, openai.AssistantMessage(turn.Text))
		} else {
			messages = append(messages, openai.UserMessage(turn.Text))
		}
	}

	return messages
}
