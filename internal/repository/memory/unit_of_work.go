package memory

import (
	"context"

	"chatbot-flow-be/internal/repository/contract"
	"chatbot-flow-be/internal/repository/unitofwork"
)

// UnitOfWork satisfies the transactional contract without transactional
// semantics: Begin, Commit and Rollback are no-ops over the shared store.
type UnitOfWork struct {
	store *Store
}

func NewUnitOfWork(store *Store) *UnitOfWork {
	return &UnitOfWork{store: store}
}

func (u *UnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *UnitOfWork) Commit() error                   { return nil }
func (u *UnitOfWork) Rollback() error                 { return nil }

func (u *UnitOfWork) BotRepository() contract.BotRepository {
	return NewBotRepository(u.store)
}

func (u *UnitOfWork) WorkflowRepository() contract.WorkflowRepository {
	return NewWorkflowRepository(u.store)
}

func (u *UnitOfWork) NodeRepository() contract.NodeRepository {
	return NewNodeRepository(u.store)
}

func (u *UnitOfWork) TransitionRepository() contract.TransitionRepository {
	return NewTransitionRepository(u.store)
}

func (u *UnitOfWork) ChatRepository() contract.ChatRepository {
	return NewChatRepository(u.store)
}

func (u *UnitOfWork) MessageRepository() contract.MessageRepository {
	return NewMessageRepository(u.store)
}

func (u *UnitOfWork) ChatVariableRepository() contract.ChatVariableRepository {
	return NewChatVariableRepository(u.store)
}

func (u *UnitOfWork) WorkflowIntentRepository() contract.WorkflowIntentRepository {
	return NewWorkflowIntentRepository(u.store)
}

func (u *UnitOfWork) AnalyticsRepository() contract.AnalyticsRepository {
	return NewAnalyticsRepository(u.store)
}

// Factory hands out unit of work instances over one shared store.
type Factory struct {
	store *Store
}

func NewFactory(store *Store) unitofwork.RepositoryFactory {
	return &Factory{store: store}
}

func (f *Factory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return NewUnitOfWork(f.store)
}
