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

type NodeRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.WorkflowMapper
}

func NewNodeRepository(db *gorm.DB) contract.NodeRepository {
	return &NodeRepositoryImpl{
		db:     db,
		mapper: mapper.NewWorkflowMapper(),
	}
}

func (r *NodeRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *NodeRepositoryImpl) Create(ctx context.Context, node *entity.WorkflowNode) error {
	m := r.mapper.NodeToModel(node)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*node = *r.mapper.NodeToEntity(m)
	return nil
}

func (r *NodeRepositoryImpl) Update(ctx context.Context, node *entity.WorkflowNode) error {
	m := r.mapper.NodeToModel(node)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*node = *r.mapper.NodeToEntity(m)
	return nil
}

func (r *NodeRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.WorkflowNode{}, id).Error
}

func (r *NodeRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.WorkflowNode, error) {
	var m model.WorkflowNode
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.NodeToEntity(&m), nil
}

func (r *NodeRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.WorkflowNode, error) {
	var models []*model.WorkflowNode
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.NodesToEntities(models), nil
}

func (r *NodeRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.WorkflowNode{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
