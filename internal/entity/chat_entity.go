package entity

import (
	"time"

	"github.com/google/uuid"
)

type Chat struct {
	Id             uuid.UUID
	BotId          uuid.UUID
	WorkflowId     uuid.UUID
	ExternalUserId string
	CurrentNodeId  uuid.UUID
	// Context holds session metadata supplied at start and patched via
	// UpdateContext. Variables extracted mid-conversation live in
	// ChatVariable rows and shadow context keys during evaluation.
	Context   map[string]string
	Status    string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// Message is an append-only conversation log entry, never mutated.
type Message struct {
	Id          uuid.UUID
	ChatId      uuid.UUID
	NodeId      *uuid.UUID
	SenderType  string
	Content     string
	MessageType string
	CreatedAt   time.Time
}

type ChatVariable struct {
	Id            uuid.UUID
	ChatId        uuid.UUID
	VariableName  string
	VariableValue string
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}
