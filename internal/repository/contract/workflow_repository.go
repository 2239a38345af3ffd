package contract

import (
	"context"

	"chatbot-flow-be/internal/entity"
	"chatbot-flow-be/internal/repository/specification"

	"github.com/google/uuid"
)

type WorkflowRepository interface {
	Create(ctx context.Context, workflow *entity.Workflow) error
	Update(ctx context.Context, workflow *entity.Workflow) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Workflow, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Workflow, error)
}

type NodeRepository interface {
	Create(ctx context.Context, node *entity.WorkflowNode) error
	Update(ctx context.Context, node *entity.WorkflowNode) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.WorkflowNode, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.WorkflowNode, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type TransitionRepository interface {
	Create(ctx context.Context, transition *entity.NodeTransition) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.NodeTransition, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.NodeTransition, error)
	// FindAllByWorkflow joins through workflow_nodes since transitions only
	// reference their endpoints.
	FindAllByWorkflow(ctx context.Context, workflowId uuid.UUID) ([]*entity.NodeTransition, error)
}
