package mapper

import (
	"encoding/json"
	"time"

	"chatbot-flow-be/internal/entity"
	"chatbot-flow-be/internal/model"

	"gorm.io/datatypes"
)

type IntentMapper struct{}

func NewIntentMapper() *IntentMapper {
	return &IntentMapper{}
}

func (m *IntentMapper) ToEntity(i *model.WorkflowIntent) *entity.WorkflowIntent {
	if i == nil {
		return nil
	}

	var examples []string
	if len(i.Examples) > 0 {
		_ = json.Unmarshal(i.Examples, &examples)
	}

	var updatedAt *time.Time
	if !i.UpdatedAt.IsZero() {
		t := i.UpdatedAt
		updatedAt = &t
	}

	return &entity.WorkflowIntent{
		Id:         i.Id,
		WorkflowId: i.WorkflowId,
		IntentName: i.IntentName,
		Examples:   examples,
		CreatedAt:  i.CreatedAt,
		UpdatedAt:  updatedAt,
	}
}

func (m *IntentMapper) ToModel(i *entity.WorkflowIntent) *model.WorkflowIntent {
	if i == nil {
		return nil
	}

	examples := i.Examples
	if examples == nil {
		examples = []string{}
	}
	raw, _ := json.Marshal(examples)

	var updatedAt time.Time
	if i.UpdatedAt != nil {
		updatedAt = *i.UpdatedAt
	}

	return &model.WorkflowIntent{
		Id:         i.Id,
		WorkflowId: i.WorkflowId,
		IntentName: i.IntentName,
		Examples:   datatypes.JSON(raw),
		CreatedAt:  i.CreatedAt,
		UpdatedAt:  updatedAt,
	}
}

func (m *IntentMapper) ToEntities(intents []*model.WorkflowIntent) []*entity.WorkflowIntent {
	entities := make([]*entity.WorkflowIntent, len(intents))
	for i, intent := range intents {
		entities[i] = m.ToEntity(intent)
	}
	return entities
}
