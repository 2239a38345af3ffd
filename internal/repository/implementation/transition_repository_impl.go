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

type TransitionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.WorkflowMapper
}

func NewTransitionRepository(db *gorm.DB) contract.TransitionRepository {
	return &TransitionRepositoryImpl{
		db:     db,
		mapper: mapper.NewWorkflowMapper(),
	}
}

func (r *TransitionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *TransitionRepositoryImpl) Create(ctx context.Context, transition *entity.NodeTransition) error {
	m := r.mapper.TransitionToModel(transition)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*transition = *r.mapper.TransitionToEntity(m)
	return nil
}

func (r *TransitionRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.NodeTransition{}, id).Error
}

func (r *TransitionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.NodeTransition, error) {
	var m model.NodeTransition
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.TransitionToEntity(&m), nil
}

func (r *TransitionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.NodeTransition, error) {
	var models []*model.NodeTransition
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.TransitionsToEntities(models), nil
}

func (r *TransitionRepositoryImpl) FindAllByWorkflow(ctx context.Context, workflowId uuid.UUID) ([]*entity.NodeTransition, error) {
	var models []*model.NodeTransition
	err := r.db.WithContext(ctx).
		Joins("JOIN workflow_nodes ON workflow_nodes.id = node_transitions.from_node_id").
		Where("workflow_nodes.workflow_id = ?", workflowId).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.TransitionsToEntities(models), nil
}
