package service

import "context"

// ChatTurn is one entry of the context handed to a Completer.
type ChatTurn struct {
	FromBot bool
	Text    string
}

// Completer produces an assistant reply for a conversation.
type Completer interface {
	Complete(ctx context.Context, history []ChatTurn) (string, error)
}
