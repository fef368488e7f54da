package repository

import (
	"context"

	"gorm.io/gorm"

	"gdms/backend/internal/model"
)

// OrgFilter 组织列表过滤条件
type OrgFilter struct {
	Keyword  string
	Type     string
	ParentID *int64
}

// OrgRepository 组织架构数据访问接口
type OrgRepository interface {
	Create(ctx context.Context, org *model.Org) error
	GetByID(ctx context.Context, id int64) (*model.Org, error)
	List(ctx context.Context) ([]model.Org, error)
	Find(ctx context.Context, filter OrgFilter, page, pageSize int) ([]model.Org, int64, error)
	HasChildren(ctx context.Context, id int64) (bool, error)
	Update(ctx context.Context, org *model.Org) error
	Delete(ctx context.Context, id int64) error
	DeleteBatch(ctx context.Context, ids []int64) error
}

type orgRepo struct {
	db *gorm.DB
}

// NewOrgRepo 创建 OrgRepository 实例
func NewOrgRepo(db *gorm.DB) OrgRepository {
	return &orgRepo{db: db}
}

func (r *orgRepo) Create(ctx context.Context, org *model.Org) error {
	return r.db.WithContext(ctx).Create(org).Error
}

func (r *orgRepo) GetByID(ctx context.Context, id int64) (*model.Org, error) {
	var org model.Org
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&org).Error
	if err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *orgRepo) List(ctx context.Context) ([]model.Org, error) {
	var orgs []model.Org
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&orgs).Error
	return orgs, err
}

func (r *orgRepo) Find(ctx context.Context, filter OrgFilter, page, pageSize int) ([]model.Org, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Org{})

	if filter.Keyword != "" {
		q = q.Where("name LIKE ?", "%"+filter.Keyword+"%")
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.ParentID != nil {
		q = q.Where("parent_id = ?", *filter.ParentID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orgs []model.Org
	err := q.Order("id ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&orgs).Error
	return orgs, total, err
}

func (r *orgRepo) HasChildren(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Org{}).
		Where("parent_id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *orgRepo) Update(ctx context.Context, org *model.Org) error {
	return r.db.WithContext(ctx).Save(org).Error
}

func (r *orgRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Org{}, id).Error
}

func (r *orgRepo) DeleteBatch(ctx context.Context, ids []int64) error {
	return r.db.WithContext(ctx).Delete(&model.Org{}, ids).Error
}
