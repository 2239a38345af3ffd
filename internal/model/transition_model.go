package model

import (
	"time"

	"github.com/google/uuid"
)

type NodeTransition struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FromNodeId   uuid.UUID `gorm:"type:uuid;not null;index"`
	ToNodeId     uuid.UUID `gorm:"type:uuid;not null"`
	TriggerType  string    `gorm:"type:text;not null"`
	TriggerValue *string   `gorm:"type:text"`
	Condition    *string   `gorm:"type:text"`
	Priority     int       `gorm:"not null;default:0"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (NodeTransition) TableName() string {
	return "node_transitions"
}
