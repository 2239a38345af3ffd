package memory

import (
	"context"
	"sort"

	"chatbot-flow-be/internal/entity"
	"chatbot-flow-be/internal/repository/contract"
	"chatbot-flow-be/internal/repository/specification"

	"github.com/google/uuid"
)

type workflowIntentRepository struct {
	store *Store
}

func NewWorkflowIntentRepository(store *Store) contract.WorkflowIntentRepository {
	return &workflowIntentRepository{store: store}
}

func (r *workflowIntentRepository) Upsert(ctx context.Context, intent *entity.WorkflowIntent) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, i := range r.store.intents {
		if i.WorkflowId == intent.WorkflowId && i.IntentName == intent.IntentName {
			i.Examples = append([]string(nil), intent.Examples...)
			*intent = *i
			return nil
		}
	}

	intent.Id = ensureId(intent.Id)
	cp := *intent
	cp.Examples = append([]string(nil), intent.Examples...)
	r.store.intents[intent.Id] = &cp
	return nil
}

func (r *workflowIntentRepository) DeleteByWorkflow(ctx context.Context, workflowId uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for id, i := range r.store.intents {
		if i.WorkflowId == workflowId {
			delete(r.store.intents, id)
		}
	}
	return nil
}

func (r *workflowIntentRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.WorkflowIntent, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *workflowIntentRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.WorkflowIntent, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []*entity.WorkflowIntent
	for _, i := range r.store.intents {
		if matches(record{Id: i.Id, WorkflowId: i.WorkflowId, IntentName: i.IntentName}, specs...) {
			cp := *i
			cp.Examples = append([]string(nil), i.Examples...)
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].IntentName < out[j].IntentName })
	return out, nil
}
