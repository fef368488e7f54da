package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gdms/backend/internal/model"
)

// TopicFilter 课题列表过滤条件
type TopicFilter struct {
	Keyword   string // 模糊匹配 title/description
	Status    model.TopicStatus
	CreatorID *int64
}

// TopicRepository 课题数据访问接口
type TopicRepository interface {
	Create(ctx context.Context, topic *model.Topic) error
	GetByID(ctx context.Context, id int64) (*model.Topic, error)
	// GetByIDForUpdate 行级锁读取，用于容量校验 + 写入的串行化
	// 必须在事务连接上调用（通过 Repository.WithTx 注入）
	GetByIDForUpdate(ctx context.Context, id int64) (*model.Topic, error)
	List(ctx context.Context) ([]model.Topic, error)
	ListByCreator(ctx context.Context, creatorID int64) ([]model.Topic, error)
	Find(ctx context.Context, filter TopicFilter, page, pageSize int) ([]model.Topic, int64, error)
	Update(ctx context.Context, topic *model.Topic) error
	Delete(ctx context.Context, id int64) error
}

type topicRepo struct {
	db *gorm.DB
}

// NewTopicRepo 创建 TopicRepository 实例
func NewTopicRepo(db *gorm.DB) TopicRepository {
	return &topicRepo{db: db}
}

func (r *topicRepo) Create(ctx context.Context, topic *model.Topic) error {
	return r.db.WithContext(ctx).Create(topic).Error
}

func (r *topicRepo) GetByID(ctx context.Context, id int64) (*model.Topic, error) {
	var topic model.Topic
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&topic).Error
	if err != nil {
		return nil, err
	}
	return &topic, nil
}

func (r *topicRepo) GetByIDForUpdate(ctx context.Context, id int64) (*model.Topic, error) {
	var topic model.Topic
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&topic).Error
	if err != nil {
		return nil, err
	}
	return &topic, nil
}

func (r *topicRepo) List(ctx context.Context) ([]model.Topic, error) {
	var topics []model.Topic
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&topics).Error
	return topics, err
}

func (r *topicRepo) ListByCreator(ctx context.Context, creatorID int64) ([]model.Topic, error) {
	var topics []model.Topic
	err := r.db.WithContext(ctx).
		Where("creator_id = ?", creatorID).
		Order("id ASC").
		Find(&topics).Error
	return topics, err
}

func (r *topicRepo) Find(ctx context.Context, filter TopicFilter, page, pageSize int) ([]model.Topic, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Topic{})

	if filter.Keyword != "" {
		pattern := "%" + filter.Keyword + "%"
		q = q.Where("title LIKE ? OR description LIKE ?", pattern, pattern)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.CreatorID != nil {
		q = q.Where("creator_id = ?", *filter.CreatorID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var topics []model.Topic
	err := q.Order("id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&topics).Error
	return topics, total, err
}

func (r *topicRepo) Update(ctx context.Context, topic *model.Topic) error {
	return r.db.WithContext(ctx).Save(topic).Error
}

func (r *topicRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Topic{}, id).Error
}

// TopicApprovalRepository 课题审批记录数据访问接口
type TopicApprovalRepository interface {
	Create(ctx context.Context, approval *model.TopicApproval) error
	ListByTopic(ctx context.Context, topicID int64) ([]model.TopicApproval, error)
	List(ctx context.Context) ([]model.TopicApproval, error)
}

type topicApprovalRepo struct {
	db *gorm.DB
}

// NewTopicApprovalRepo 创建 TopicApprovalRepository 实例
func NewTopicApprovalRepo(db *gorm.DB) TopicApprovalRepository {
	return &topicApprovalRepo{db: db}
}

func (r *topicApprovalRepo) Create(ctx context.Context, approval *model.TopicApproval) error {
	return r.db.WithContext(ctx).Create(approval).Error
}

func (r *topicApprovalRepo) ListByTopic(ctx context.Context, topicID int64) ([]model.TopicApproval, error) {
	var approvals []model.TopicApproval
	err := r.db.WithContext(ctx).
		Where("topic_id = ?", topicID).
		Order("created_at ASC").
		Find(&approvals).Error
	return approvals, err
}

func (r *topicApprovalRepo) List(ctx context.Context) ([]model.TopicApproval, error) {
	var approvals []model.TopicApproval
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&approvals).Error
	return approvals, err
}
