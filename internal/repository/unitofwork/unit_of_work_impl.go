package unitofwork

import (
	"context"
	"fmt"

	"chatbot-flow-be/internal/repository/contract"
	"chatbot-flow-be/internal/repository/implementation"

	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	u.tx = u.db.WithContext(ctx).Begin()
	return u.tx.Error
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// Repository Accessors

func (u *UnitOfWorkImpl) BotRepository() contract.BotRepository {
	return implementation.NewBotRepository(u.getDB())
}

func (u *UnitOfWorkImpl) WorkflowRepository() contract.WorkflowRepository {
	return implementation.NewWorkflowRepository(u.getDB())
}

func (u *UnitOfWorkImpl) NodeRepository() contract.NodeRepository {
	return implementation.NewNodeRepository(u.getDB())
}

func (u *UnitOfWorkImpl) TransitionRepository() contract.TransitionRepository {
	return implementation.NewTransitionRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ChatRepository() contract.ChatRepository {
	return implementation.NewChatRepository(u.getDB())
}

func (u *UnitOfWorkImpl) MessageRepository() contract.MessageRepository {
	return implementation.NewMessageRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ChatVariableRepository() contract.ChatVariableRepository {
	return implementation.NewChatVariableRepository(u.getDB())
}

func (u *UnitOfWorkImpl) WorkflowIntentRepository() contract.WorkflowIntentRepository {
	return implementation.NewWorkflowIntentRepository(u.getDB())
}

func (u *UnitOfWorkImpl) AnalyticsRepository() contract.AnalyticsRepository {
	return implementation.NewAnalyticsRepository(u.getDB())
}
