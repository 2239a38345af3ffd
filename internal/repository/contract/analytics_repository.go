package contract

import (
	"context"

	"chatbot-flow-be/internal/entity"
	"chatbot-flow-be/internal/repository/specification"
)

type AnalyticsRepository interface {
	Create(ctx context.Context, event *entity.WorkflowAnalytics) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.WorkflowAnalytics, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
