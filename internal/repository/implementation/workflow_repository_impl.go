package implementation

import (
	"context"
	"errors"

	"chatbot-flow-be/internal/entity"
	"chatbot-flow-be/internal/mapper"
	"chatbot-flow-be/internal/model"
	"chatbot-flow-be/internal/repository/contract"
	"chatbot-flow-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WorkflowRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.WorkflowMapper
}

func NewWorkflowRepository(db *gorm.DB) contract.WorkflowRepository {
	return &WorkflowRepositoryImpl{
		db:     db,
		mapper: mapper.NewWorkflowMapper(),
	}
}

func (r *WorkflowRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *WorkflowRepositoryImpl) Create(ctx context.Context, workflow *entity.Workflow) error {
	m := r.mapper.ToModel(workflow)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*workflow = *r.mapper.ToEntity(m)
	return nil
}

func (r *WorkflowRepositoryImpl) Update(ctx context.Context, workflow *entity.Workflow) error {
	m := r.mapper.ToModel(workflow)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*workflow = *r.mapper.ToEntity(m)
	return nil
}

func (r *WorkflowRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Workflow{}, id).Error
}

func (r *WorkflowRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Workflow, error) {
	var m model.Workflow
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *WorkflowRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Workflow, error) {
	var models []*model.Workflow
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
