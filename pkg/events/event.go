package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "workflow_started").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// AnalyticsEvent is a workflow lifecycle event emitted by the turn driver.
type AnalyticsEvent struct {
	Type       string
	WorkflowID string
	ChatID     string
	NodeID     string
	Metadata   map[string]interface{}
	OccurredAt time.Time
}

func (e AnalyticsEvent) EventType() string { return e.Type }

func (e AnalyticsEvent) Payload() map[string]interface{} {
	payload := map[string]interface{}{
		"workflow_id": e.WorkflowID,
		"chat_id":     e.ChatID,
		"event_type":  e.Type,
		"occurred_at": e.OccurredAt,
	}
	if e.NodeID != "" {
		payload["node_id"] = e.NodeID
	}
	for k, v := range e.Metadata {
		payload[k] = v
	}
	return payload
}

func (e AnalyticsEvent) Timestamp() time.Time { return e.OccurredAt }
