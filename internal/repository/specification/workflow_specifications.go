package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByFromNodeID struct {
	FromNodeID uuid.UUID
}

func (s ByFromNodeID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("from_node_id = ?", s.FromNodeID)
}

type ByIntentName struct {
	IntentName string
}

func (s ByIntentName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("intent_name = ?", s.IntentName)
}

type ByEventType struct {
	EventType string
}

func (s ByEventType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("event_type = ?", s.EventType)
}
