package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type WorkflowIntent struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	WorkflowId uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_workflow_intent_name"`
	IntentName string         `gorm:"type:text;not null;uniqueIndex:idx_workflow_intent_name"`
	Examples   datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime"`
}

func (WorkflowIntent) TableName() string {
	return "workflow_intents"
}
