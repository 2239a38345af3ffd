// Package memory provides in-memory repository implementations backing the
// unit of work contract, used by service tests that need real persistence
// semantics without a database.
package memory

import (
	"sync"

	"chatbot-flow-be/internal/entity"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.RWMutex

	bots        map[uuid.UUID]*entity.Bot
	workflows   map[uuid.UUID]*entity.Workflow
	nodes       map[uuid.UUID]*entity.WorkflowNode
	transitions map[uuid.UUID]*entity.NodeTransition
	chats       map[uuid.UUID]*entity.Chat
	messages    []*entity.Message
	variables   map[uuid.UUID]*entity.ChatVariable
	intents     map[uuid.UUID]*entity.WorkflowIntent
	analytics   []*entity.WorkflowAnalytics
}

func NewStore() *Store {
	return &Store{
		bots:        make(map[uuid.UUID]*entity.Bot),
		workflows:   make(map[uuid.UUID]*entity.Workflow),
		nodes:       make(map[uuid.UUID]*entity.WorkflowNode),
		transitions: make(map[uuid.UUID]*entity.NodeTransition),
		chats:       make(map[uuid.UUID]*entity.Chat),
		variables:   make(map[uuid.UUID]*entity.ChatVariable),
		intents:     make(map[uuid.UUID]*entity.WorkflowIntent),
	}
}

func ensureId(id uuid.UUID) uuid.UUID {
	if id == uuid.Nil {
		return uuid.New()
	}
	return id
}
