package contract

import (
	"context"

	"chatbot-flow-be/internal/entity"
	"chatbot-flow-be/internal/repository/specification"

	"github.com/google/uuid"
)

type WorkflowIntentRepository interface {
	Upsert(ctx context.Context, intent *entity.WorkflowIntent) error
	DeleteByWorkflow(ctx context.Context, workflowId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.WorkflowIntent, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.WorkflowIntent, error)
}
