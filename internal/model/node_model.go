package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type WorkflowNode struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	WorkflowId uuid.UUID      `gorm:"type:uuid;not null;index"`
	NodeType   string         `gorm:"type:text;not null"`
	Config     datatypes.JSON `gorm:"type:jsonb"`
	Position   datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime"`
}

func (WorkflowNode) TableName() string {
	return "workflow_nodes"
}
