package implementation

import (
	"context"
	"errors"

	"chatbot-flow-be/internal/entity"
	"chatbot-flow-be/internal/mapper"
	"chatbot-flow-be/internal/model"
	"chatbot-flow-be/internal/repository/contract"
	"chatbot-flow-be/internal/repository/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ChatVariableRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewChatVariableRepository(db *gorm.DB) contract.ChatVariableRepository {
	return &ChatVariableRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *ChatVariableRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ChatVariableRepositoryImpl) Upsert(ctx context.Context, variable *entity.ChatVariable) error {
	m := r.mapper.VariableToModel(variable)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "chat_id"}, {Name: "variable_name"}},
		DoUpdates: clause.AssignmentColumns([]string{"variable_value", "updated_at"}),
	}).Create(m).Error
	if err != nil {
		return err
	}
	*variable = *r.mapper.VariableToEntity(m)
	return nil
}

func (r *ChatVariableRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatVariable, error) {
	var m model.ChatVariable
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.VariableToEntity(&m), nil
}

func (r *ChatVariableRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatVariable, error) {
	var models []*model.ChatVariable
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.VariablesToEntities(models), nil
}
