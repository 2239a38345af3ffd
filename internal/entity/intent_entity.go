package entity

import (
	"time"

	"github.com/google/uuid"
)

// WorkflowIntent is a custom intent trained for one workflow. Examples are
// stored normalized (lowercased, trimmed).
type WorkflowIntent struct {
	Id         uuid.UUID
	WorkflowId uuid.UUID
	IntentName string
	Examples   []string
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}
