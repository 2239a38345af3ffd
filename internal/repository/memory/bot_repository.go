package memory

import (
	"context"
	"sort"

	"chatbot-flow-be/internal/entity"
	"chatbot-flow-be/internal/repository/contract"
	"chatbot-flow-be/internal/repository/specification"

	"github.com/google/uuid"
)

type botRepository struct {
	store *Store
}

func NewBotRepository(store *Store) contract.BotRepository {
	return &botRepository{store: store}
}

func (r *botRepository) Create(ctx context.Context, bot *entity.Bot) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	bot.Id = ensureId(bot.Id)
	cp := *bot
	r.store.bots[bot.Id] = &cp
	return nil
}

func (r *botRepository) Update(ctx context.Context, bot *entity.Bot) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	cp := *bot
	r.store.bots[bot.Id] = &cp
	return nil
}

func (r *botRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	delete(r.store.bots, id)
	return nil
}

func (r *botRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Bot, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *botRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Bot, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []*entity.Bot
	for _, b := range r.store.bots {
		if matches(record{Id: b.Id, UserId: b.UserId, IsActive: b.IsActive}, specs...) {
			cp := *b
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Id.String() < out[j].Id.String() })
	return out, nil
}
