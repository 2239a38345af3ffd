package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Chat struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BotId          uuid.UUID      `gorm:"type:uuid;not null;index"`
	WorkflowId     uuid.UUID      `gorm:"type:uuid;not null;index"`
	ExternalUserId string         `gorm:"type:text;not null;index"`
	CurrentNodeId  *uuid.UUID     `gorm:"type:uuid"`
	Context        datatypes.JSON `gorm:"type:jsonb"`
	Status         string         `gorm:"type:text;not null;default:'active';index"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
}

func (Chat) TableName() string {
	return "chats"
}

type Message struct {
	Id          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChatId      uuid.UUID  `gorm:"type:uuid;not null;index"`
	NodeId      *uuid.UUID `gorm:"type:uuid"`
	SenderType  string     `gorm:"type:text;not null"`
	Content     string     `gorm:"type:text;not null"`
	MessageType string     `gorm:"type:text;not null;default:'text'"`
	CreatedAt   time.Time  `gorm:"autoCreateTime;index"`
}

func (Message) TableName() string {
	return "messages"
}

type ChatVariable struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ChatId        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_chat_variable_name"`
	VariableName  string    `gorm:"type:text;not null;uniqueIndex:idx_chat_variable_name"`
	VariableValue string    `gorm:"type:text;not null"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (ChatVariable) TableName() string {
	return "chat_variables"
}
