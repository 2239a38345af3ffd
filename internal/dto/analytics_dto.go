package dto

import (
	"time"

	"github.com/google/uuid"
)

// AnalyticsEventMessage is the bus payload for workflow analytics events.
type AnalyticsEventMessage struct {
	EventType  string                 `json:"event_type"`
	WorkflowId uuid.UUID              `json:"workflow_id"`
	ChatId     *uuid.UUID             `json:"chat_id,omitempty"`
	NodeId     *uuid.UUID             `json:"node_id,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	OccurredAt time.Time              `json:"occurred_at"`
}

type WorkflowStatsResponse struct {
	WorkflowId     uuid.UUID `json:"workflow_id"`
	TotalChats     int64     `json:"total_chats"`
	CompletedChats int64     `json:"completed_chats"`
	ActiveChats    int64     `json:"active_chats"`
	EventCount     int64     `json:"event_count"`
}
