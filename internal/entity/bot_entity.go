package entity

import (
	"time"

	"github.com/google/uuid"
)

type Bot struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Name      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt *time.Time
}
