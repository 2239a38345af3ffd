package memory

import (
	"context"
	"sort"

	"chatbot-flow-be/internal/entity"
	"chatbot-flow-be/internal/repository/contract"
	"chatbot-flow-be/internal/repository/specification"

	"github.com/google/uuid"
)

type workflowRepository struct {
	store *Store
}

func NewWorkflowRepository(store *Store) contract.WorkflowRepository {
	return &workflowRepository{store: store}
}

func (r *workflowRepository) Create(ctx context.Context, workflow *entity.Workflow) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	workflow.Id = ensureId(workflow.Id)
	cp := *workflow
	r.store.workflows[workflow.Id] = &cp
	return nil
}

func (r *workflowRepository) Update(ctx context.Context, workflow *entity.Workflow) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	cp := *workflow
	r.store.workflows[workflow.Id] = &cp
	return nil
}

func (r *workflowRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	delete(r.store.workflows, id)
	return nil
}

func (r *workflowRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Workflow, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *workflowRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Workflow, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []*entity.Workflow
	for _, w := range r.store.workflows {
		if matches(record{Id: w.Id, BotId: w.BotId, IsActive: w.IsActive}, specs...) {
			cp := *w
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Id.String() < out[j].Id.String() })
	return out, nil
}

type nodeRepository struct {
	store *Store
}

func NewNodeRepository(store *Store) contract.NodeRepository {
	return &nodeRepository{store: store}
}

func (r *nodeRepository) Create(ctx context.Context, node *entity.WorkflowNode) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	node.Id = ensureId(node.Id)
	cp := *node
	r.store.nodes[node.Id] = &cp
	return nil
}

func (r *nodeRepository) Update(ctx context.Context, node *entity.WorkflowNode) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	cp := *node
	r.store.nodes[node.Id] = &cp
	return nil
}

func (r *nodeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	delete(r.store.nodes, id)
	return nil
}

func (r *nodeRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.WorkflowNode, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *nodeRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.WorkflowNode, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []*entity.WorkflowNode
	for _, n := range r.store.nodes {
		if matches(record{Id: n.Id, WorkflowId: n.WorkflowId}, specs...) {
			cp := *n
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Id.String() < out[j].Id.String() })
	return out, nil
}

func (r *nodeRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil {
		return 0, err
	}
	return int64(len(all)), nil
}

type transitionRepository struct {
	store *Store
}

func NewTransitionRepository(store *Store) contract.TransitionRepository {
	return &transitionRepository{store: store}
}

func (r *transitionRepository) Create(ctx context.Context, transition *entity.NodeTransition) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	transition.Id = ensureId(transition.Id)
	cp := *transition
	r.store.transitions[transition.Id] = &cp
	return nil
}

func (r *transitionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	delete(r.store.transitions, id)
	return nil
}

func (r *transitionRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.NodeTransition, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *transitionRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.NodeTransition, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []*entity.NodeTransition
	for _, t := range r.store.transitions {
		if matches(record{Id: t.Id, FromNodeId: t.FromNodeId}, specs...) {
			cp := *t
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Id.String() < out[j].Id.String() })
	return out, nil
}

func (r *transitionRepository) FindAllByWorkflow(ctx context.Context, workflowId uuid.UUID) ([]*entity.NodeTransition, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	nodeIds := make(map[uuid.UUID]bool)
	for _, n := range r.store.nodes {
		if n.WorkflowId == workflowId {
			nodeIds[n.Id] = true
		}
	}

	var out []*entity.NodeTransition
	for _, t := range r.store.transitions {
		if nodeIds[t.FromNodeId] {
			cp := *t
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Id.String() < out[j].Id.String() })
	return out, nil
}
