package mapper

import (
	"encoding/json"
	"time"

	"chatbot-flow-be/internal/entity"
	"chatbot-flow-be/internal/model"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type WorkflowMapper struct{}

func NewWorkflowMapper() *WorkflowMapper {
	return &WorkflowMapper{}
}

func (m *WorkflowMapper) ToEntity(w *model.Workflow) *entity.Workflow {
	if w == nil {
		return nil
	}

	var startNodeId uuid.UUID
	if w.StartNodeId != nil {
		startNodeId = *w.StartNodeId
	}

	var updatedAt *time.Time
	if !w.UpdatedAt.IsZero() {
		t := w.UpdatedAt
		updatedAt = &t
	}

	return &entity.Workflow{
		Id:          w.Id,
		BotId:       w.BotId,
		Name:        w.Name,
		StartNodeId: startNodeId,
		IsActive:    w.IsActive,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}

func (m *WorkflowMapper) ToModel(w *entity.Workflow) *model.Workflow {
	if w == nil {
		return nil
	}

	var startNodeId *uuid.UUID
	if w.StartNodeId != uuid.Nil {
		id := w.StartNodeId
		startNodeId = &id
	}

	var updatedAt time.Time
	if w.UpdatedAt != nil {
		updatedAt = *w.UpdatedAt
	}

	return &model.Workflow{
		Id:          w.Id,
		BotId:       w.BotId,
		Name:        w.Name,
		StartNodeId: startNodeId,
		IsActive:    w.IsActive,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}

func (m *WorkflowMapper) ToEntities(workflows []*model.Workflow) []*entity.Workflow {
	entities := make([]*entity.Workflow, len(workflows))
	for i, w := range workflows {
		entities[i] = m.ToEntity(w)
	}
	return entities
}

func (m *WorkflowMapper) NodeToEntity(n *model.WorkflowNode) *entity.WorkflowNode {
	if n == nil {
		return nil
	}

	var updatedAt *time.Time
	if !n.UpdatedAt.IsZero() {
		t := n.UpdatedAt
		updatedAt = &t
	}

	return &entity.WorkflowNode{
		Id:         n.Id,
		WorkflowId: n.WorkflowId,
		NodeType:   n.NodeType,
		Config:     json.RawMessage(n.Config),
		Position:   json.RawMessage(n.Position),
		CreatedAt:  n.CreatedAt,
		UpdatedAt:  updatedAt,
	}
}

func (m *WorkflowMapper) NodeToModel(n *entity.WorkflowNode) *model.WorkflowNode {
	if n == nil {
		return nil
	}

	var updatedAt time.Time
	if n.UpdatedAt != nil {
		updatedAt = *n.UpdatedAt
	}

	return &model.WorkflowNode{
		Id:         n.Id,
		WorkflowId: n.WorkflowId,
		NodeType:   n.NodeType,
		Config:     datatypes.JSON(n.Config),
		Position:   datatypes.JSON(n.Position),
		CreatedAt:  n.CreatedAt,
		UpdatedAt:  updatedAt,
	}
}

func (m *WorkflowMapper) NodesToEntities(nodes []*model.WorkflowNode) []*entity.WorkflowNode {
	entities := make([]*entity.WorkflowNode, len(nodes))
	for i, n := range nodes {
		entities[i] = m.NodeToEntity(n)
	}
	return entities
}

func (m *WorkflowMapper) TransitionToEntity(t *model.NodeTransition) *entity.NodeTransition {
	if t == nil {
		return nil
	}

	var triggerValue, condition string
	if t.TriggerValue != nil {
		triggerValue = *t.TriggerValue
	}
	if t.Condition != nil {
		condition = *t.Condition
	}

	var updatedAt *time.Time
	if !t.UpdatedAt.IsZero() {
		u := t.UpdatedAt
		updatedAt = &u
	}

	return &entity.NodeTransition{
		Id:           t.Id,
		FromNodeId:   t.FromNodeId,
		ToNodeId:     t.ToNodeId,
		TriggerType:  t.TriggerType,
		TriggerValue: triggerValue,
		Condition:    condition,
		Priority:     t.Priority,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}

func (m *WorkflowMapper) TransitionToModel(t *entity.NodeTransition) *model.NodeTransition {
	if t == nil {
		return nil
	}

	var triggerValue, condition *string
	if t.TriggerValue != "" {
		v := t.TriggerValue
		triggerValue = &v
	}
	if t.Condition != "" {
		c := t.Condition
		condition = &c
	}

	var updatedAt time.Time
	if t.UpdatedAt != nil {
		updatedAt = *t.UpdatedAt
	}

	return &model.NodeTransition{
		Id:           t.Id,
		FromNodeId:   t.FromNodeId,
		ToNodeId:     t.ToNodeId,
		TriggerType:  t.TriggerType,
		TriggerValue: triggerValue,
		Condition:    condition,
		Priority:     t.Priority,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}

func (m *WorkflowMapper) TransitionsToEntities(transitions []*model.NodeTransition) []*entity.NodeTransition {
	entities := make([]*entity.NodeTransition, len(transitions))
	for i, t := range transitions {
		entities[i] = m.TransitionToEntity(t)
	}
	return entities
}
