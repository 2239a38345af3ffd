package entity

import (
	"time"

	"github.com/google/uuid"
)

type WorkflowAnalytics struct {
	Id         uuid.UUID
	WorkflowId uuid.UUID
	ChatId     *uuid.UUID
	NodeId     *uuid.UUID
	EventType  string
	Metadata   map[string]interface{}
	CreatedAt  time.Time
}
