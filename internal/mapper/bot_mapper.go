package mapper

import (
	"time"

	"chatbot-flow-be/internal/entity"
	"chatbot-flow-be/internal/model"
)

type BotMapper struct{}

func NewBotMapper() *BotMapper {
	return &BotMapper{}
}

func (m *BotMapper) ToEntity(b *model.Bot) *entity.Bot {
	if b == nil {
		return nil
	}

	var updatedAt *time.Time
	if !b.UpdatedAt.IsZero() {
		t := b.UpdatedAt
		updatedAt = &t
	}

	return &entity.Bot{
		Id:        b.Id,
		UserId:    b.UserId,
		Name:      b.Name,
		IsActive:  b.IsActive,
		CreatedAt: b.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *BotMapper) ToModel(b *entity.Bot) *model.Bot {
	if b == nil {
		return nil
	}

	var updatedAt time.Time
	if b.UpdatedAt != nil {
		updatedAt = *b.UpdatedAt
	}

	return &model.Bot{
		Id:        b.Id,
		UserId:    b.UserId,
		Name:      b.Name,
		IsActive:  b.IsActive,
		CreatedAt: b.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *BotMapper) ToEntities(bots []*model.Bot) []*entity.Bot {
	entities := make([]*entity.Bot, len(bots))
	for i, b := range bots {
		entities[i] = m.ToEntity(b)
	}
	return entities
}
