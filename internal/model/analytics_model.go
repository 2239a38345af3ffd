package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type WorkflowAnalytics struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	WorkflowId uuid.UUID      `gorm:"type:uuid;not null;index"`
	ChatId     *uuid.UUID     `gorm:"type:uuid;index"`
	NodeId     *uuid.UUID     `gorm:"type:uuid"`
	EventType  string         `gorm:"type:text;not null;index"`
	Metadata   datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt  time.Time      `gorm:"autoCreateTime;index"`
}

func (WorkflowAnalytics) TableName() string {
	return "workflow_analytics"
}
