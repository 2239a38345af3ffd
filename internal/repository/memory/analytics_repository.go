package memory

import (
	"context"

	"chatbot-flow-be/internal/entity"
	"chatbot-flow-be/internal/repository/contract"
	"chatbot-flow-be/internal/repository/specification"
)

type analyticsRepository struct {
	store *Store
}

func NewAnalyticsRepository(store *Store) contract.AnalyticsRepository {
	return &analyticsRepository{store: store}
}

func (r *analyticsRepository) Create(ctx context.Context, event *entity.WorkflowAnalytics) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	event.Id = ensureId(event.Id)
	cp := *event
	r.store.analytics = append(r.store.analytics, &cp)
	return nil
}

func (r *analyticsRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.WorkflowAnalytics, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []*entity.WorkflowAnalytics
	for _, a := range r.store.analytics {
		rec := record{Id: a.Id, WorkflowId: a.WorkflowId, EventType: a.EventType}
		if a.ChatId != nil {
			rec.ChatId = *a.ChatId
		}
		if matches(rec, specs...) {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *analyticsRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil {
		return 0, err
	}
	return int64(len(all)), nil
}
