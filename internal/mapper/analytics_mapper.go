package mapper

import (
	"encoding/json"

	"chatbot-flow-be/internal/entity"
	"chatbot-flow-be/internal/model"

	"gorm.io/datatypes"
)

type AnalyticsMapper struct{}

func NewAnalyticsMapper() *AnalyticsMapper {
	return &AnalyticsMapper{}
}

func (m *AnalyticsMapper) ToEntity(a *model.WorkflowAnalytics) *entity.WorkflowAnalytics {
	if a == nil {
		return nil
	}

	metadata := map[string]interface{}{}
	if len(a.Metadata) > 0 {
		_ = json.Unmarshal(a.Metadata, &metadata)
	}

	return &entity.WorkflowAnalytics{
		Id:         a.Id,
		WorkflowId: a.WorkflowId,
		ChatId:     a.ChatId,
		NodeId:     a.NodeId,
		EventType:  a.EventType,
		Metadata:   metadata,
		CreatedAt:  a.CreatedAt,
	}
}

func (m *AnalyticsMapper) ToModel(a *entity.WorkflowAnalytics) *model.WorkflowAnalytics {
	if a == nil {
		return nil
	}

	metadata := a.Metadata
	if metadata == nil {
		metadata = map[string]interface{}{}
	}
	raw, _ := json.Marshal(metadata)

	return &model.WorkflowAnalytics{
		Id:         a.Id,
		WorkflowId: a.WorkflowId,
		ChatId:     a.ChatId,
		NodeId:     a.NodeId,
		EventType:  a.EventType,
		Metadata:   datatypes.JSON(raw),
		CreatedAt:  a.CreatedAt,
	}
}

func (m *AnalyticsMapper) ToEntities(rows []*model.WorkflowAnalytics) []*entity.WorkflowAnalytics {
	entities := make([]*entity.WorkflowAnalytics, len(rows))
	for i, a := range rows {
		entities[i] = m.ToEntity(a)
	}
	return entities
}
