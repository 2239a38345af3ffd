package memory

import (
	"context"
	"sort"

	"chatbot-flow-be/internal/entity"
	"chatbot-flow-be/internal/repository/contract"
	"chatbot-flow-be/internal/repository/specification"
)

type chatRepository struct {
	store *Store
}

func NewChatRepository(store *Store) contract.ChatRepository {
	return &chatRepository{store: store}
}

func cloneChat(c *entity.Chat) *entity.Chat {
	cp := *c
	cp.Context = make(map[string]string, len(c.Context))
	for k, v := range c.Context {
		cp.Context[k] = v
	}
	return &cp
}

func (r *chatRepository) Create(ctx context.Context, chat *entity.Chat) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	chat.Id = ensureId(chat.Id)
	r.store.chats[chat.Id] = cloneChat(chat)
	return nil
}

func (r *chatRepository) Update(ctx context.Context, chat *entity.Chat) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.chats[chat.Id] = cloneChat(chat)
	return nil
}

func (r *chatRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Chat, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *chatRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Chat, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []*entity.Chat
	for _, c := range r.store.chats {
		rec := record{
			Id:             c.Id,
			BotId:          c.BotId,
			WorkflowId:     c.WorkflowId,
			ExternalUserId: c.ExternalUserId,
			Status:         c.Status,
		}
		if matches(rec, specs...) {
			out = append(out, cloneChat(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Id.String() < out[j].Id.String() })
	return out, nil
}

func (r *chatRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil {
		return 0, err
	}
	return int64(len(all)), nil
}

type messageRepository struct {
	store *Store
}

func NewMessageRepository(store *Store) contract.MessageRepository {
	return &messageRepository{store: store}
}

func (r *messageRepository) Create(ctx context.Context, message *entity.Message) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	message.Id = ensureId(message.Id)
	cp := *message
	r.store.messages = append(r.store.messages, &cp)
	return nil
}

func (r *messageRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	// Insertion order doubles as chronological order here.
	var out []*entity.Message
	for _, m := range r.store.messages {
		if matches(record{Id: m.Id, ChatId: m.ChatId}, specs...) {
			cp := *m
			out = append(out, &cp)
		}
	}
	return paginate(out, specs...), nil
}

func paginate(messages []*entity.Message, specs ...specification.Specification) []*entity.Message {
	for _, s := range specs {
		p, ok := s.(specification.Pagination)
		if !ok {
			continue
		}
		if p.Offset >= len(messages) {
			return nil
		}
		messages = messages[p.Offset:]
		if p.Limit > 0 && p.Limit < len(messages) {
			messages = messages[:p.Limit]
		}
	}
	return messages
}

func (r *messageRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil {
		return 0, err
	}
	return int64(len(all)), nil
}

type chatVariableRepository struct {
	store *Store
}

func NewChatVariableRepository(store *Store) contract.ChatVariableRepository {
	return &chatVariableRepository{store: store}
}

func (r *chatVariableRepository) Upsert(ctx context.Context, variable *entity.ChatVariable) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, v := range r.store.variables {
		if v.ChatId == variable.ChatId && v.VariableName == variable.VariableName {
			v.VariableValue = variable.VariableValue
			*variable = *v
			return nil
		}
	}

	variable.Id = ensureId(variable.Id)
	cp := *variable
	r.store.variables[variable.Id] = &cp
	return nil
}

func (r *chatVariableRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatVariable, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *chatVariableRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatVariable, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []*entity.ChatVariable
	for _, v := range r.store.variables {
		if matches(record{Id: v.Id, ChatId: v.ChatId}, specs...) {
			cp := *v
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VariableName < out[j].VariableName })
	return out, nil
}
