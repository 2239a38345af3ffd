package dto

import (
	"time"

	"github.com/google/uuid"
)

type StartChatRequest struct {
	BotId          uuid.UUID         `json:"bot_id" validate:"required"`
	ExternalUserId string            `json:"external_user_id" validate:"required,max=255"`
	Context        map[string]string `json:"context"`
}

type ButtonDTO struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type BotReplyDTO struct {
	Message string      `json:"message"`
	Buttons []ButtonDTO `json:"buttons,omitempty"`
	NodeId  *uuid.UUID  `json:"node_id,omitempty"`
	Ended   bool        `json:"ended"`
}

type StartChatResponse struct {
	ChatId uuid.UUID    `json:"chat_id"`
	Reply  *BotReplyDTO `json:"reply"`
}

type SendMessageRequest struct {
	ChatId  uuid.UUID
	Message string `json:"message" validate:"required"`
}

type SendMessageResponse struct {
	ChatId uuid.UUID    `json:"chat_id"`
	Reply  *BotReplyDTO `json:"reply"`
}

type ChatHistoryMessage struct {
	Id          uuid.UUID  `json:"id"`
	SenderType  string     `json:"sender_type"`
	Content     string     `json:"content"`
	MessageType string     `json:"message_type"`
	NodeId      *uuid.UUID `json:"node_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type ChatHistoryResponse struct {
	ChatId   uuid.UUID             `json:"chat_id"`
	Messages []*ChatHistoryMessage `json:"messages"`
}

type ChatDetailResponse struct {
	Id             uuid.UUID         `json:"id"`
	BotId          uuid.UUID         `json:"bot_id"`
	WorkflowId     uuid.UUID         `json:"workflow_id"`
	ExternalUserId string            `json:"external_user_id"`
	CurrentNodeId  *uuid.UUID        `json:"current_node_id,omitempty"`
	Status         string            `json:"status"`
	Context        map[string]string `json:"context"`
	Variables      map[string]string `json:"variables"`
	CreatedAt      time.Time         `json:"created_at"`
}

type UpdateContextRequest struct {
	ChatId  uuid.UUID
	Context map[string]string `json:"context" validate:"required"`
}

type UpdateContextResponse struct {
	ChatId  uuid.UUID         `json:"chat_id"`
	Context map[string]string `json:"context"`
}

type EndChatResponse struct {
	ChatId uuid.UUID `json:"chat_id"`
	Status string    `json:"status"`
}
