package dto

import (
	"time"

	"github.com/google/uuid"
)

type TrainIntentRequest struct {
	WorkflowId uuid.UUID
	IntentName string   `json:"intent_name" validate:"required,max=100"`
	Examples   []string `json:"examples" validate:"required,min=1,dive,required"`
}

type TrainIntentResponse struct {
	Id         uuid.UUID `json:"id"`
	IntentName string    `json:"intent_name"`
	Examples   int       `json:"examples"`
}

type IntentResponse struct {
	Id         uuid.UUID  `json:"id"`
	IntentName string     `json:"intent_name"`
	Examples   []string   `json:"examples"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at"`
}
