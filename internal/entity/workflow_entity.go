package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Workflow struct {
	Id          uuid.UUID
	BotId       uuid.UUID
	Name        string
	StartNodeId uuid.UUID
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

type WorkflowNode struct {
	Id         uuid.UUID
	WorkflowId uuid.UUID
	NodeType   string
	// Config is the opaque authored payload; the engine decodes it into a
	// typed node variant on graph load.
	Config json.RawMessage
	// Position is editor canvas metadata, ignored by the engine.
	Position  json.RawMessage
	CreatedAt time.Time
	UpdatedAt *time.Time
}

type NodeTransition struct {
	Id          uuid.UUID
	FromNodeId  uuid.UUID
	ToNodeId    uuid.UUID
	TriggerType string
	// TriggerValue holds the intent name, keyword, button value or
	// condition outcome this edge matches on, depending on TriggerType.
	TriggerValue string
	Condition    string
	Priority     int
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}
