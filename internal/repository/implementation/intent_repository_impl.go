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
	"gorm.io/gorm/clause"
)

type WorkflowIntentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.IntentMapper
}

func NewWorkflowIntentRepository(db *gorm.DB) contract.WorkflowIntentRepository {
	return &WorkflowIntentRepositoryImpl{
		db:     db,
		mapper: mapper.NewIntentMapper(),
	}
}

func (r *WorkflowIntentRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *WorkflowIntentRepositoryImpl) Upsert(ctx context.Context, intent *entity.WorkflowIntent) error {
	m := r.mapper.ToModel(intent)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "workflow_id"}, {Name: "intent_name"}},
		DoUpdates: clause.AssignmentColumns([]string{"examples", "updated_at"}),
	}).Create(m).Error
	if err != nil {
		return err
	}
	*intent = *r.mapper.ToEntity(m)
	return nil
}

func (r *WorkflowIntentRepositoryImpl) DeleteByWorkflow(ctx context.Context, workflowId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("workflow_id = ?", workflowId).Delete(&model.WorkflowIntent{}).Error
}

func (r *WorkflowIntentRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.WorkflowIntent, error) {
	var m model.WorkflowIntent
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *WorkflowIntentRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.WorkflowIntent, error) {
	var models []*model.WorkflowIntent
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
