package service

import (
	"context"
	"strings"
	"time"

	"chatbot-flow-be/internal/dto"
	"chatbot-flow-be/internal/entity"
	"chatbot-flow-be/internal/pkg/logger"
	"chatbot-flow-be/internal/repository/specification"
	"chatbot-flow-be/internal/repository/unitofwork"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

type IIntentService interface {
	// Examples implements the classifier registry: trained phrases per
	// intent name for one workflow.
	Examples(ctx context.Context, workflowID uuid.UUID) (map[string][]string, error)

	TrainIntent(ctx context.Context, req *dto.TrainIntentRequest) (*dto.TrainIntentResponse, error)
	GetIntents(ctx context.Context, workflowId uuid.UUID) ([]*dto.IntentResponse, error)
	ClearIntents(ctx context.Context, workflowId uuid.UUID) error
}

type intentService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *cache.Cache
	logger     logger.ILogger
}

func NewIntentService(uowFactory unitofwork.RepositoryFactory, ttl time.Duration, log logger.ILogger) IIntentService {
	return &intentService{
		uowFactory: uowFactory,
		cache:      cache.New(ttl, 2*ttl),
		logger:     log,
	}
}

func (s *intentService) Examples(ctx context.Context, workflowID uuid.UUID) (map[string][]string, error) {
	key := workflowID.String()
	if cached, found := s.cache.Get(key); found {
		return cached.(map[string][]string), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	intents, err := uow.WorkflowIntentRepository().FindAll(ctx, specification.ByWorkflowID{WorkflowID: workflowID})
	if err != nil {
		return nil, err
	}

	examples := make(map[string][]string, len(intents))
	for _, intent := range intents {
		examples[intent.IntentName] = intent.Examples
	}

	s.cache.Set(key, examples, cache.DefaultExpiration)
	return examples, nil
}

func (s *intentService) TrainIntent(ctx context.Context, req *dto.TrainIntentRequest) (*dto.TrainIntentResponse, error) {
	normalized := make([]string, 0, len(req.Examples))
	for _, ex := range req.Examples {
		ex = strings.ToLower(strings.TrimSpace(ex))
		if ex != "" {
			normalized = append(normalized, ex)
		}
	}
	if len(normalized) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "examples must contain at least one non-empty phrase")
	}

	intent := &entity.WorkflowIntent{
		WorkflowId: req.WorkflowId,
		IntentName: strings.ToLower(strings.TrimSpace(req.IntentName)),
		Examples:   normalized,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.WorkflowIntentRepository().Upsert(ctx, intent); err != nil {
		return nil, err
	}

	s.cache.Delete(req.WorkflowId.String())
	s.logger.Info("intent", "Trained workflow intent", map[string]interface{}{
		"workflow_id": req.WorkflowId.String(),
		"intent":      intent.IntentName,
		"examples":    len(normalized),
	})

	return &dto.TrainIntentResponse{
		Id:         intent.Id,
		IntentName: intent.IntentName,
		Examples:   len(normalized),
	}, nil
}

func (s *intentService) GetIntents(ctx context.Context, workflowId uuid.UUID) ([]*dto.IntentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	intents, err := uow.WorkflowIntentRepository().FindAll(ctx, specification.ByWorkflowID{WorkflowID: workflowId})
	if err != nil {
		return nil, err
	}

	result := make([]*dto.IntentResponse, 0, len(intents))
	for _, intent := range intents {
		result = append(result, &dto.IntentResponse{
			Id:         intent.Id,
			IntentName: intent.IntentName,
			Examples:   intent.Examples,
			CreatedAt:  intent.CreatedAt,
			UpdatedAt:  intent.UpdatedAt,
		})
	}
	return result, nil
}

func (s *intentService) ClearIntents(ctx context.Context, workflowId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.WorkflowIntentRepository().DeleteByWorkflow(ctx, workflowId); err != nil {
		return err
	}
	s.cache.Delete(workflowId.String())
	return nil
}
