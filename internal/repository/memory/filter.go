package memory

import (
	"chatbot-flow-be/internal/repository/specification"

	"github.com/google/uuid"
)

// record is the field view a spec predicate is checked against. Repos fill
// in only the fields their entity has.
type record struct {
	Id             uuid.UUID
	UserId         uuid.UUID
	BotId          uuid.UUID
	WorkflowId     uuid.UUID
	ChatId         uuid.UUID
	FromNodeId     uuid.UUID
	ExternalUserId string
	Status         string
	IntentName     string
	EventType      string
	IsActive       bool
}

// matches interprets the query specifications this package understands.
// Ordering and pagination specs are handled by the callers that need them.
func matches(r record, specs ...specification.Specification) bool {
	for _, s := range specs {
		switch sp := s.(type) {
		case specification.ByID:
			if r.Id != sp.ID {
				return false
			}
		case specification.ByBotID:
			if r.BotId != sp.BotID {
				return false
			}
		case specification.ByWorkflowID:
			if r.WorkflowId != sp.WorkflowID {
				return false
			}
		case specification.ByChatID:
			if r.ChatId != sp.ChatID {
				return false
			}
		case specification.ByFromNodeID:
			if r.FromNodeId != sp.FromNodeID {
				return false
			}
		case specification.ByExternalUserID:
			if r.ExternalUserId != sp.ExternalUserID {
				return false
			}
		case specification.ByStatus:
			if r.Status != sp.Status {
				return false
			}
		case specification.ByIntentName:
			if r.IntentName != sp.IntentName {
				return false
			}
		case specification.ByEventType:
			if r.EventType != sp.EventType {
				return false
			}
		case specification.ActiveOnly:
			if !r.IsActive {
				return false
			}
		case specification.FilterBy:
			if sp.Field == "user_id" {
				id, ok := sp.Value.(uuid.UUID)
				if !ok || r.UserId != id {
					return false
				}
			}
		}
	}
	return true
}
