package model

import (
	"time"

	"github.com/google/uuid"
)

type Workflow struct {
	Id          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BotId       uuid.UUID  `gorm:"type:uuid;not null;index"`
	Name        string     `gorm:"type:text;not null"`
	StartNodeId *uuid.UUID `gorm:"type:uuid"`
	IsActive    bool       `gorm:"not null;default:false;index"`
	CreatedAt   time.Time  `gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime"`
}

func (Workflow) TableName() string {
	return "workflows"
}
