package entity

import (
	"time"

	"github.com/google/uuid"
)

// Message is a single entry of a conversation log. Messages are append-only.
type Message struct {
	ID      uuid.UUID `json:"id"`
	Text    string    `json:"text"`
	FromBot bool      `json:"fromBot"`
	SentAt  time.Time `json:"sentAt"`
}

// Conversation is a chat session between a principal and the assistant.
type Conversation struct {
	ID              uuid.UUID `json:"id"`      // Random, not derived from the owner.
	OwnerID         uuid.UUID `json:"ownerId"` // References Principal.ID.
	ParticipantRole Role      `json:"participantRole"`
	Messages        []Message `json:"messages"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
