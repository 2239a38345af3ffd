package service

import (
	"context"
	"fmt"

	"chatbot-flow-be/internal/entity"
	"chatbot-flow-be/internal/repository/specification"
	"chatbot-flow-be/internal/repository/unitofwork"
	"chatbot-flow-be/pkg/engine"
	"chatbot-flow-be/pkg/engine/graph"

	"github.com/google/uuid"
)

// graphStore adapts the repository layer to the read-only view the graph
// loader consumes. Authored rows are decoded into typed engine values here,
// so a malformed node config surfaces at load time, not mid-turn.
type graphStore struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewGraphStore(uowFactory unitofwork.RepositoryFactory) graph.Store {
	return &graphStore{uowFactory: uowFactory}
}

func (s *graphStore) FindActiveWorkflow(ctx context.Context, botID uuid.UUID) (*engine.Workflow, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	workflow, err := uow.WorkflowRepository().FindOne(ctx,
		specification.ByBotID{BotID: botID},
		specification.ActiveOnly{},
	)
	if err != nil {
		return nil, err
	}
	return toEngineWorkflow(workflow), nil
}

func (s *graphStore) FindWorkflow(ctx context.Context, workflowID uuid.UUID) (*engine.Workflow, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	workflow, err := uow.WorkflowRepository().FindOne(ctx, specification.ByID{ID: workflowID})
	if err != nil {
		return nil, err
	}
	return toEngineWorkflow(workflow), nil
}

func (s *graphStore) ListNodes(ctx context.Context, workflowID uuid.UUID) ([]engine.Node, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	rows, err := uow.NodeRepository().FindAll(ctx, specification.ByWorkflowID{WorkflowID: workflowID})
	if err != nil {
		return nil, err
	}

	nodes := make([]engine.Node, 0, len(rows))
	for _, row := range rows {
		node, err := engine.ParseNode(row.Id, row.WorkflowId, row.NodeType, row.Config)
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", row.Id, err)
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

func (s *graphStore) ListTransitions(ctx context.Context, workflowID uuid.UUID) ([]engine.Transition, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	rows, err := uow.TransitionRepository().FindAllByWorkflow(ctx, workflowID)
	if err != nil {
		return nil, err
	}

	transitions := make([]engine.Transition, 0, len(rows))
	for _, row := range rows {
		transitions = append(transitions, toEngineTransition(row))
	}
	return transitions, nil
}

func toEngineWorkflow(w *entity.Workflow) *engine.Workflow {
	if w == nil {
		return nil
	}
	return &engine.Workflow{
		ID:          w.Id,
		BotID:       w.BotId,
		Name:        w.Name,
		StartNodeID: w.StartNodeId,
		Active:      w.IsActive,
	}
}

func toEngineTransition(t *entity.NodeTransition) engine.Transition {
	return engine.Transition{
		ID:         t.Id,
		FromNodeID: t.FromNodeId,
		ToNodeID:   t.ToNodeId,
		Trigger:    engine.TriggerType(t.TriggerType),
		Value:      t.TriggerValue,
		Condition:  t.Condition,
		Priority:   t.Priority,
	}
}
