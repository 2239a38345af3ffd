package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByChatID struct {
	ChatID uuid.UUID
}

func (s ByChatID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chat_id = ?", s.ChatID)
}

type ByBotID struct {
	BotID uuid.UUID
}

func (s ByBotID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("bot_id = ?", s.BotID)
}

type ByWorkflowID struct {
	WorkflowID uuid.UUID
}

func (s ByWorkflowID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("workflow_id = ?", s.WorkflowID)
}

type ByExternalUserID struct {
	ExternalUserID string
}

func (s ByExternalUserID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("external_user_id = ?", s.ExternalUserID)
}

type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

type ActiveOnly struct{}

func (s ActiveOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}
