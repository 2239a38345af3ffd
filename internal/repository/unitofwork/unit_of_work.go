package unitofwork

import (
	"context"

	"chatbot-flow-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	BotRepository() contract.BotRepository
	WorkflowRepository() contract.WorkflowRepository
	NodeRepository() contract.NodeRepository
	TransitionRepository() contract.TransitionRepository

	ChatRepository() contract.ChatRepository
	MessageRepository() contract.MessageRepository
	ChatVariableRepository() contract.ChatVariableRepository
	WorkflowIntentRepository() contract.WorkflowIntentRepository
	AnalyticsRepository() contract.AnalyticsRepository
}
