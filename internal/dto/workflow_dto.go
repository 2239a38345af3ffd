package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type CreateWorkflowRequest struct {
	BotId uuid.UUID `json:"bot_id" validate:"required"`
	Name  string    `json:"name" validate:"required,max=255"`
}

type CreateWorkflowResponse struct {
	Id uuid.UUID `json:"id"`
}

type WorkflowResponse struct {
	Id          uuid.UUID  `json:"id"`
	BotId       uuid.UUID  `json:"bot_id"`
	Name        string     `json:"name"`
	StartNodeId *uuid.UUID `json:"start_node_id,omitempty"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

type AddNodeRequest struct {
	WorkflowId uuid.UUID
	NodeType   string          `json:"node_type" validate:"required,oneof=message question action condition end"`
	Config     json.RawMessage `json:"config" validate:"required"`
	Position   json.RawMessage `json:"position"`
	IsStart    bool            `json:"is_start"`
}

type AddNodeResponse struct {
	Id uuid.UUID `json:"id"`
}

type NodeResponse struct {
	Id       uuid.UUID       `json:"id"`
	NodeType string          `json:"node_type"`
	Config   json.RawMessage `json:"config"`
	Position json.RawMessage `json:"position,omitempty"`
	IsStart  bool            `json:"is_start"`
}

type AddTransitionRequest struct {
	FromNodeId   uuid.UUID `json:"from_node_id" validate:"required"`
	ToNodeId     uuid.UUID `json:"to_node_id" validate:"required"`
	TriggerType  string    `json:"trigger_type" validate:"required,oneof=intent keyword condition button_click auto"`
	TriggerValue string    `json:"trigger_value"`
	Condition    string    `json:"condition"`
	Priority     int       `json:"priority"`
}

type AddTransitionResponse struct {
	Id uuid.UUID `json:"id"`
}

type TransitionResponse struct {
	Id           uuid.UUID `json:"id"`
	FromNodeId   uuid.UUID `json:"from_node_id"`
	ToNodeId     uuid.UUID `json:"to_node_id"`
	TriggerType  string    `json:"trigger_type"`
	TriggerValue string    `json:"trigger_value,omitempty"`
	Condition    string    `json:"condition,omitempty"`
	Priority     int       `json:"priority"`
}

type WorkflowDetailResponse struct {
	Workflow    *WorkflowResponse     `json:"workflow"`
	Nodes       []*NodeResponse       `json:"nodes"`
	Transitions []*TransitionResponse `json:"transitions"`
}

type PublishWorkflowResponse struct {
	Id       uuid.UUID `json:"id"`
	IsActive bool      `json:"is_active"`
}
