package contract

import (
	"context"

	"chatbot-flow-be/internal/entity"
	"chatbot-flow-be/internal/repository/specification"
)

type ChatRepository interface {
	Create(ctx context.Context, chat *entity.Chat) error
	Update(ctx context.Context, chat *entity.Chat) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Chat, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Chat, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type ChatVariableRepository interface {
	// Upsert inserts the variable or overwrites the value when the
	// chat_id + variable_name pair already exists.
	Upsert(ctx context.Context, variable *entity.ChatVariable) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatVariable, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatVariable, error)
}
