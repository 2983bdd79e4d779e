package model

import (
	"time"

	"github.com/google/uuid"
)

// ConversationModel mirrors the 'conversations' table. OwnerID references principals.id.
type ConversationModel struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey"`
	OwnerID         uuid.UUID      `gorm:"type:uuid;not null;index"`
	ParticipantRole string         `gorm:"type:varchar(16);not null"`
	CreatedAt       time.Time      `gorm:"not null"`
	UpdatedAt       time.Time      `gorm:"not null;index"`
	Messages        []MessageModel `gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (ConversationModel) TableName() string {
	return "conversations"
}

// MessageModel mirrors the 'conversation_messages' table. Position keeps the append order.
type MessageModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	ConversationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_messages_position"`
	Position       int64     `gorm:"not null;uniqueIndex:uq_messages_position"`
	Text           string    `gorm:"type:text;not null"`
	FromBot        bool      `gorm:"not null"`
	SentAt         time.Time `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (MessageModel) TableName() string {
	return "conversation_messages"
}

// All lists every model for schema migration, parents before children.
func All() []any {
	return []any{
		&PrincipalModel{},
		&SellerProfileModel{},
		&CustomerProfileModel{},
		&ListingModel{},
		&ConversationModel{},
		&MessageModel{},
	}
}
