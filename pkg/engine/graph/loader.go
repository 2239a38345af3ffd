// Package graph loads authored workflow graphs and serves them as cached,
// read-only snapshots for the duration of a turn.
package graph

import (
	"context"
	"fmt"
	"time"

	"chatbot-flow-be/internal/pkg/logger"
	"chatbot-flow-be/pkg/engine"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// Store is the persistence collaborator the loader reads from. All reads
// are point-in-time; the loader never writes.
type Store interface {
	FindActiveWorkflow(ctx context.Context, botID uuid.UUID) (*engine.Workflow, error)
	FindWorkflow(ctx context.Context, workflowID uuid.UUID) (*engine.Workflow, error)
	ListNodes(ctx context.Context, workflowID uuid.UUID) ([]engine.Node, error)
	ListTransitions(ctx context.Context, workflowID uuid.UUID) ([]engine.Transition, error)
}

// Loader resolves a bot's active graph, caching built snapshots per
// workflow id. Cached entries are evicted on authoring publish/update
// events (see Subscriber) and expire on their own as a safety net.
type Loader struct {
	store  Store
	cache  *cache.Cache
	logger logger.ILogger
}

func NewLoader(store Store, ttl time.Duration, log logger.ILogger) *Loader {
	return &Loader{
		store:  store,
		cache:  cache.New(ttl, 2*ttl),
		logger: log,
	}
}

// LoadActiveGraph returns the bot's active workflow as a graph snapshot.
// Fails with GraphNotFound when the bot has no active workflow and
// StartNodeMissing when the active workflow's start node is unresolvable.
func (l *Loader) LoadActiveGraph(ctx context.Context, botID uuid.UUID) (*engine.Graph, error) {
	workflow, err := l.store.FindActiveWorkflow(ctx, botID)
	if err != nil {
		return nil, err
	}
	if workflow == nil || !workflow.Active {
		return nil, fmt.Errorf("%w: bot %s", engine.ErrGraphNotFound, botID)
	}
	return l.build(ctx, workflow)
}

// LoadGraph returns the graph snapshot for a specific workflow id. Sessions
// stay pinned to the workflow they started on, even if the bot has since
// published a different one.
func (l *Loader) LoadGraph(ctx context.Context, workflowID uuid.UUID) (*engine.Graph, error) {
	if cached, found := l.cache.Get(workflowID.String()); found {
		return cached.(*engine.Graph), nil
	}
	workflow, err := l.store.FindWorkflow(ctx, workflowID)
	if err != nil {
		return nil, err
	}
	if workflow == nil {
		return nil, fmt.Errorf("%w: workflow %s", engine.ErrNotFound, workflowID)
	}
	return l.build(ctx, workflow)
}

// Invalidate drops the cached snapshot for a workflow. Called on authoring
// publish/update events.
func (l *Loader) Invalidate(workflowID uuid.UUID) {
	l.cache.Delete(workflowID.String())
}

func (l *Loader) build(ctx context.Context, workflow *engine.Workflow) (*engine.Graph, error) {
	if cached, found := l.cache.Get(workflow.ID.String()); found {
		return cached.(*engine.Graph), nil
	}

	nodes, err := l.store.ListNodes(ctx, workflow.ID)
	if err != nil {
		return nil, err
	}
	transitions, err := l.store.ListTransitions(ctx, workflow.ID)
	if err != nil {
		return nil, err
	}

	g := engine.NewGraph(*workflow, nodes, transitions)
	if _, ok := g.StartNode(); !ok {
		return nil, fmt.Errorf("%w: workflow %s", engine.ErrStartNodeMissing, workflow.ID)
	}

	l.cache.Set(workflow.ID.String(), g, cache.DefaultExpiration)
	l.logger.Debug("graph", "Built workflow graph snapshot", map[string]interface{}{
		"workflow_id": workflow.ID.String(),
		"nodes":       g.NodeCount(),
	})
	return g, nil
}
