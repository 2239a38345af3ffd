package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateBotRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

type CreateBotResponse struct {
	Id uuid.UUID `json:"id"`
}

type UpdateBotRequest struct {
	Id       uuid.UUID
	Name     string `json:"name" validate:"required,max=255"`
	IsActive *bool  `json:"is_active"`
}

type UpdateBotResponse struct {
	Id uuid.UUID `json:"id"`
}

type BotResponse struct {
	Id        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}
