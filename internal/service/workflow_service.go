package service

import (
	"context"
	"fmt"

	"chatbot-flow-be/internal/dto"
	"chatbot-flow-be/internal/entity"
	"chatbot-flow-be/internal/pkg/logger"
	"chatbot-flow-be/internal/repository/specification"
	"chatbot-flow-be/internal/repository/unitofwork"
	"chatbot-flow-be/pkg/engine"
	"chatbot-flow-be/pkg/engine/graph"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type IWorkflowService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateWorkflowRequest) (*dto.CreateWorkflowResponse, error)
	GetAll(ctx context.Context, userId, botId uuid.UUID) ([]*dto.WorkflowResponse, error)
	Show(ctx context.Context, userId, id uuid.UUID) (*dto.WorkflowDetailResponse, error)
	Delete(ctx context.Context, userId, id uuid.UUID) error

	AddNode(ctx context.Context, userId uuid.UUID, req *dto.AddNodeRequest) (*dto.AddNodeResponse, error)
	DeleteNode(ctx context.Context, userId, workflowId, nodeId uuid.UUID) error
	AddTransition(ctx context.Context, userId, workflowId uuid.UUID, req *dto.AddTransitionRequest) (*dto.AddTransitionResponse, error)
	DeleteTransition(ctx context.Context, userId, workflowId, transitionId uuid.UUID) error

	Publish(ctx context.Context, userId, id uuid.UUID) (*dto.PublishWorkflowResponse, error)
}

type workflowService struct {
	uowFactory unitofwork.RepositoryFactory
	loader     *graph.Loader
	rdb        *redis.Client
	logger     logger.ILogger
}

func NewWorkflowService(
	uowFactory unitofwork.RepositoryFactory,
	loader *graph.Loader,
	rdb *redis.Client,
	log logger.ILogger,
) IWorkflowService {
	return &workflowService{
		uowFactory: uowFactory,
		loader:     loader,
		rdb:        rdb,
		logger:     log,
	}
}

func (s *workflowService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateWorkflowRequest) (*dto.CreateWorkflowResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	bot, err := uow.BotRepository().FindOne(ctx,
		specification.ByID{ID: req.BotId},
		specification.Filter("user_id", userId),
	)
	if err != nil {
		return nil, err
	}
	if bot == nil {
		return nil, fmt.Errorf("%w: bot %s", engine.ErrNotFound, req.BotId)
	}

	workflow := &entity.Workflow{
		BotId: req.BotId,
		Name:  req.Name,
		// Workflows are drafts until published.
		IsActive: false,
	}
	if err := uow.WorkflowRepository().Create(ctx, workflow); err != nil {
		return nil, err
	}
	return &dto.CreateWorkflowResponse{Id: workflow.Id}, nil
}

func (s *workflowService) GetAll(ctx context.Context, userId, botId uuid.UUID) ([]*dto.WorkflowResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	bot, err := uow.BotRepository().FindOne(ctx,
		specification.ByID{ID: botId},
		specification.Filter("user_id", userId),
	)
	if err != nil {
		return nil, err
	}
	if bot == nil {
		return nil, fmt.Errorf("%w: bot %s", engine.ErrNotFound, botId)
	}

	workflows, err := uow.WorkflowRepository().FindAll(ctx, specification.ByBotID{BotID: botId})
	if err != nil {
		return nil, err
	}

	result := make([]*dto.WorkflowResponse, 0, len(workflows))
	for _, w := range workflows {
		result = append(result, toWorkflowResponse(w))
	}
	return result, nil
}

func (s *workflowService) Show(ctx context.Context, userId, id uuid.UUID) (*dto.WorkflowDetailResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	workflow, err := s.findOwned(ctx, uow, userId, id)
	if err != nil {
		return nil, err
	}

	nodes, err := uow.NodeRepository().FindAll(ctx, specification.ByWorkflowID{WorkflowID: id})
	if err != nil {
		return nil, err
	}
	transitions, err := uow.TransitionRepository().FindAllByWorkflow(ctx, id)
	if err != nil {
		return nil, err
	}

	nodeDTOs := make([]*dto.NodeResponse, 0, len(nodes))
	for _, n := range nodes {
		nodeDTOs = append(nodeDTOs, &dto.NodeResponse{
			Id:       n.Id,
			NodeType: n.NodeType,
			Config:   n.Config,
			Position: n.Position,
			IsStart:  n.Id == workflow.StartNodeId,
		})
	}

	transitionDTOs := make([]*dto.TransitionResponse, 0, len(transitions))
	for _, t := range transitions {
		transitionDTOs = append(transitionDTOs, &dto.TransitionResponse{
			Id:           t.Id,
			FromNodeId:   t.FromNodeId,
			ToNodeId:     t.ToNodeId,
			TriggerType:  t.TriggerType,
			TriggerValue: t.TriggerValue,
			Condition:    t.Condition,
			Priority:     t.Priority,
		})
	}

	return &dto.WorkflowDetailResponse{
		Workflow:    toWorkflowResponse(workflow),
		Nodes:       nodeDTOs,
		Transitions: transitionDTOs,
	}, nil
}

func (s *workflowService) Delete(ctx context.Context, userId, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := s.findOwned(ctx, uow, userId, id); err != nil {
		return err
	}
	if err := uow.WorkflowRepository().Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *workflowService) AddNode(ctx context.Context, userId uuid.UUID, req *dto.AddNodeRequest) (*dto.AddNodeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	workflow, err := s.findOwned(ctx, uow, userId, req.WorkflowId)
	if err != nil {
		return nil, err
	}

	// Reject configs the engine cannot decode instead of persisting a graph
	// that fails at load time.
	if _, err := engine.ParseNode(uuid.New(), req.WorkflowId, req.NodeType, req.Config); err != nil {
		return nil, err
	}

	node := &entity.WorkflowNode{
		WorkflowId: req.WorkflowId,
		NodeType:   req.NodeType,
		Config:     req.Config,
		Position:   req.Position,
	}
	if err := uow.NodeRepository().Create(ctx, node); err != nil {
		return nil, err
	}

	if req.IsStart || workflow.StartNodeId == uuid.Nil {
		workflow.StartNodeId = node.Id
		if err := uow.WorkflowRepository().Update(ctx, workflow); err != nil {
			return nil, err
		}
	}

	s.invalidate(ctx, req.WorkflowId)
	return &dto.AddNodeResponse{Id: node.Id}, nil
}

func (s *workflowService) DeleteNode(ctx context.Context, userId, workflowId, nodeId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	workflow, err := s.findOwned(ctx, uow, userId, workflowId)
	if err != nil {
		return err
	}

	node, err := uow.NodeRepository().FindOne(ctx,
		specification.ByID{ID: nodeId},
		specification.ByWorkflowID{WorkflowID: workflowId},
	)
	if err != nil {
		return err
	}
	if node == nil {
		return fmt.Errorf("%w: node %s", engine.ErrNotFound, nodeId)
	}

	if err := uow.NodeRepository().Delete(ctx, nodeId); err != nil {
		return err
	}

	if workflow.StartNodeId == nodeId {
		workflow.StartNodeId = uuid.Nil
		if err := uow.WorkflowRepository().Update(ctx, workflow); err != nil {
			return err
		}
	}

	s.invalidate(ctx, workflowId)
	return nil
}

func (s *workflowService) AddTransition(ctx context.Context, userId, workflowId uuid.UUID, req *dto.AddTransitionRequest) (*dto.AddTransitionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.findOwned(ctx, uow, userId, workflowId); err != nil {
		return nil, err
	}

	// Both endpoints must exist and belong to the same workflow; edges may
	// not cross workflow boundaries.
	from, err := uow.NodeRepository().FindOne(ctx,
		specification.ByID{ID: req.FromNodeId},
		specification.ByWorkflowID{WorkflowID: workflowId},
	)
	if err != nil {
		return nil, err
	}
	to, err := uow.NodeRepository().FindOne(ctx,
		specification.ByID{ID: req.ToNodeId},
		specification.ByWorkflowID{WorkflowID: workflowId},
	)
	if err != nil {
		return nil, err
	}
	if from == nil || to == nil {
		return nil, fmt.Errorf("%w: transition endpoints must belong to workflow %s", engine.ErrInvalidState, workflowId)
	}

	transition := &entity.NodeTransition{
		FromNodeId:   req.FromNodeId,
		ToNodeId:     req.ToNodeId,
		TriggerType:  req.TriggerType,
		TriggerValue: req.TriggerValue,
		Condition:    req.Condition,
		Priority:     req.Priority,
	}
	if err := uow.TransitionRepository().Create(ctx, transition); err != nil {
		return nil, err
	}

	s.invalidate(ctx, workflowId)
	return &dto.AddTransitionResponse{Id: transition.Id}, nil
}

func (s *workflowService) DeleteTransition(ctx context.Context, userId, workflowId, transitionId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.findOwned(ctx, uow, userId, workflowId); err != nil {
		return err
	}
	if err := uow.TransitionRepository().Delete(ctx, transitionId); err != nil {
		return err
	}

	s.invalidate(ctx, workflowId)
	return nil
}

// Publish validates the draft and flips it to the bot's single active
// workflow. Any previously active workflow of the bot is deactivated in
// the same transaction.
func (s *workflowService) Publish(ctx context.Context, userId, id uuid.UUID) (*dto.PublishWorkflowResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	workflow, err := s.findOwned(ctx, uow, userId, id)
	if err != nil {
		return nil, err
	}

	nodeCount, err := uow.NodeRepository().Count(ctx, specification.ByWorkflowID{WorkflowID: id})
	if err != nil {
		return nil, err
	}
	if nodeCount == 0 {
		return nil, fmt.Errorf("%w: workflow %s", engine.ErrEmptyWorkflow, id)
	}

	if workflow.StartNodeId == uuid.Nil {
		return nil, fmt.Errorf("%w: workflow %s", engine.ErrStartNodeMissing, id)
	}
	start, err := uow.NodeRepository().FindOne(ctx,
		specification.ByID{ID: workflow.StartNodeId},
		specification.ByWorkflowID{WorkflowID: id},
	)
	if err != nil {
		return nil, err
	}
	if start == nil {
		return nil, fmt.Errorf("%w: workflow %s", engine.ErrStartNodeMissing, id)
	}

	siblings, err := uow.WorkflowRepository().FindAll(ctx,
		specification.ByBotID{BotID: workflow.BotId},
		specification.ActiveOnly{},
	)
	if err != nil {
		return nil, err
	}
	for _, sibling := range siblings {
		if sibling.Id == id {
			continue
		}
		sibling.IsActive = false
		if err := uow.WorkflowRepository().Update(ctx, sibling); err != nil {
			return nil, err
		}
		s.invalidate(ctx, sibling.Id)
	}

	workflow.IsActive = true
	if err := uow.WorkflowRepository().Update(ctx, workflow); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	s.logger.Info("workflow", "Published workflow", map[string]interface{}{
		"workflow_id": id.String(),
		"bot_id":      workflow.BotId.String(),
	})

	return &dto.PublishWorkflowResponse{Id: id, IsActive: true}, nil
}

// invalidate evicts the local snapshot and broadcasts to other instances.
func (s *workflowService) invalidate(ctx context.Context, workflowId uuid.UUID) {
	if s.loader != nil {
		s.loader.Invalidate(workflowId)
	}
	graph.PublishInvalidation(ctx, s.rdb, workflowId, s.logger)
}

func (s *workflowService) findOwned(ctx context.Context, uow unitofwork.UnitOfWork, userId, id uuid.UUID) (*entity.Workflow, error) {
	workflow, err := uow.WorkflowRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if workflow == nil {
		return nil, fmt.Errorf("%w: workflow %s", engine.ErrNotFound, id)
	}

	bot, err := uow.BotRepository().FindOne(ctx,
		specification.ByID{ID: workflow.BotId},
		specification.Filter("user_id", userId),
	)
	if err != nil {
		return nil, err
	}
	if bot == nil {
		return nil, fmt.Errorf("%w: workflow %s", engine.ErrNotFound, id)
	}
	return workflow, nil
}

func toWorkflowResponse(w *entity.Workflow) *dto.WorkflowResponse {
	resp := &dto.WorkflowResponse{
		Id:        w.Id,
		BotId:     w.BotId,
		Name:      w.Name,
		IsActive:  w.IsActive,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
	if w.StartNodeId != uuid.Nil {
		id := w.StartNodeId
		resp.StartNodeId = &id
	}
	return resp
}
