package mapper

import (
	"encoding/json"
	"time"

	"chatbot-flow-be/internal/entity"
	"chatbot-flow-be/internal/model"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

func (m *ChatMapper) ToEntity(c *model.Chat) *entity.Chat {
	if c == nil {
		return nil
	}

	var currentNodeId uuid.UUID
	if c.CurrentNodeId != nil {
		currentNodeId = *c.CurrentNodeId
	}

	chatContext := map[string]string{}
	if len(c.Context) > 0 {
		// Malformed context rows degrade to an empty map rather than failing
		// the whole chat load.
		_ = json.Unmarshal(c.Context, &chatContext)
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	return &entity.Chat{
		Id:             c.Id,
		BotId:          c.BotId,
		WorkflowId:     c.WorkflowId,
		ExternalUserId: c.ExternalUserId,
		CurrentNodeId:  currentNodeId,
		Context:        chatContext,
		Status:         c.Status,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *ChatMapper) ToModel(c *entity.Chat) *model.Chat {
	if c == nil {
		return nil
	}

	var currentNodeId *uuid.UUID
	if c.CurrentNodeId != uuid.Nil {
		id := c.CurrentNodeId
		currentNodeId = &id
	}

	chatContext := c.Context
	if chatContext == nil {
		chatContext = map[string]string{}
	}
	raw, _ := json.Marshal(chatContext)

	var updatedAt time.Time
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}

	return &model.Chat{
		Id:             c.Id,
		BotId:          c.BotId,
		WorkflowId:     c.WorkflowId,
		ExternalUserId: c.ExternalUserId,
		CurrentNodeId:  currentNodeId,
		Context:        datatypes.JSON(raw),
		Status:         c.Status,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *ChatMapper) ToEntities(chats []*model.Chat) []*entity.Chat {
	entities := make([]*entity.Chat, len(chats))
	for i, c := range chats {
		entities[i] = m.ToEntity(c)
	}
	return entities
}

func (m *ChatMapper) MessageToEntity(msg *model.Message) *entity.Message {
	if msg == nil {
		return nil
	}

	return &entity.Message{
		Id:          msg.Id,
		ChatId:      msg.ChatId,
		NodeId:      msg.NodeId,
		SenderType:  msg.SenderType,
		Content:     msg.Content,
		MessageType: msg.MessageType,
		CreatedAt:   msg.CreatedAt,
	}
}

func (m *ChatMapper) MessageToModel(msg *entity.Message) *model.Message {
	if msg == nil {
		return nil
	}

	return &model.Message{
		Id:          msg.Id,
		ChatId:      msg.ChatId,
		NodeId:      msg.NodeId,
		SenderType:  msg.SenderType,
		Content:     msg.Content,
		MessageType: msg.MessageType,
		CreatedAt:   msg.CreatedAt,
	}
}

func (m *ChatMapper) MessagesToEntities(msgs []*model.Message) []*entity.Message {
	entities := make([]*entity.Message, len(msgs))
	for i, msg := range msgs {
		entities[i] = m.MessageToEntity(msg)
	}
	return entities
}

func (m *ChatMapper) VariableToEntity(v *model.ChatVariable) *entity.ChatVariable {
	if v == nil {
		return nil
	}

	var updatedAt *time.Time
	if !v.UpdatedAt.IsZero() {
		t := v.UpdatedAt
		updatedAt = &t
	}

	return &entity.ChatVariable{
		Id:            v.Id,
		ChatId:        v.ChatId,
		VariableName:  v.VariableName,
		VariableValue: v.VariableValue,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     updatedAt,
	}
}

func (m *ChatMapper) VariableToModel(v *entity.ChatVariable) *model.ChatVariable {
	if v == nil {
		return nil
	}

	var updatedAt time.Time
	if v.UpdatedAt != nil {
		updatedAt = *v.UpdatedAt
	}

	return &model.ChatVariable{
		Id:            v.Id,
		ChatId:        v.ChatId,
		VariableName:  v.VariableName,
		VariableValue: v.VariableValue,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     updatedAt,
	}
}

func (m *ChatMapper) VariablesToEntities(vars []*model.ChatVariable) []*entity.ChatVariable {
	entities := make([]*entity.ChatVariable, len(vars))
	for i, v := range vars {
		entities[i] = m.VariableToEntity(v)
	}
	return entities
}
