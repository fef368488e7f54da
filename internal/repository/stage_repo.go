package repository

import (
	"context"

	"gorm.io/gorm"

	"gdms/backend/internal/model"
)

// StageConfigRepository 阶段配置数据访问接口
type StageConfigRepository interface {
	Create(ctx context.Context, cfg *model.StageConfig) error
	GetByID(ctx context.Context, id int64) (*model.StageConfig, error)
	// FindPrev 返回 orderIndex 严格小于 orderIndex 的最大阶段；不存在时返回 gorm.ErrRecordNotFound
	FindPrev(ctx context.Context, orderIndex int) (*model.StageConfig, error)
	ListActive(ctx context.Context) ([]model.StageConfig, error)
	List(ctx context.Context) ([]model.StageConfig, error)
	Update(ctx context.Context, cfg *model.StageConfig) error
	Delete(ctx context.Context, id int64) error
}

type stageConfigRepo struct {
	db *gorm.DB
}

// NewStageConfigRepo 创建 StageConfigRepository 实例
func NewStageConfigRepo(db *gorm.DB) StageConfigRepository {
	return &stageConfigRepo{db: db}
}

func (r *stageConfigRepo) Create(ctx context.Context, cfg *model.StageConfig) error {
	return r.db.WithContext(ctx).Create(cfg).Error
}

func (r *stageConfigRepo) GetByID(ctx context.Context, id int64) (*model.StageConfig, error) {
	var cfg model.StageConfig
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&cfg).Error
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *stageConfigRepo) FindPrev(ctx context.Context, orderIndex int) (*model.StageConfig, error) {
	var cfg model.StageConfig
	err := r.db.WithContext(ctx).
		Where("order_index < ?", orderIndex).
		Order("order_index DESC").
		First(&cfg).Error
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *stageConfigRepo) ListActive(ctx context.Context) ([]model.StageConfig, error) {
	var configs []model.StageConfig
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("order_index ASC").
		Find(&configs).Error
	return configs, err
}

func (r *stageConfigRepo) List(ctx context.Context) ([]model.StageConfig, error) {
	var configs []model.StageConfig
	err := r.db.WithContext(ctx).
		Order("order_index ASC").
		Find(&configs).Error
	return configs, err
}

func (r *stageConfigRepo) Update(ctx context.Context, cfg *model.StageConfig) error {
	return r.db.WithContext(ctx).Save(cfg).Error
}

func (r *stageConfigRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.StageConfig{}, id).Error
}

// StageTaskRepository 阶段任务数据访问接口
type StageTaskRepository interface {
	Create(ctx context.Context, task *model.StageTask) error
	GetByID(ctx context.Context, id int64) (*model.StageTask, error)
	// GetLatestByStudentAndStage 返回学生在某阶段的最新任务；不存在时返回 gorm.ErrRecordNotFound
	GetLatestByStudentAndStage(ctx context.Context, studentID, stageID int64) (*model.StageTask, error)
	ListByStudent(ctx context.Context, studentID int64) ([]model.StageTask, error)
	List(ctx context.Context) ([]model.StageTask, error)
	Update(ctx context.Context, task *model.StageTask) error
}

type stageTaskRepo struct {
	db *gorm.DB
}

// NewStageTaskRepo 创建 StageTaskRepository 实例
func NewStageTaskRepo(db *gorm.DB) StageTaskRepository {
	return &stageTaskRepo{db: db}
}

func (r *stageTaskRepo) Create(ctx context.Context, task *model.StageTask) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *stageTaskRepo) GetByID(ctx context.Context, id int64) (*model.StageTask, error) {
	var task model.StageTask
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *stageTaskRepo) GetLatestByStudentAndStage(ctx context.Context, studentID, stageID int64) (*model.StageTask, error) {
	var task model.StageTask
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND stage_id = ?", studentID, stageID).
		Order("id DESC").
		First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *stageTaskRepo) ListByStudent(ctx context.Context, studentID int64) ([]model.StageTask, error) {
	var tasks []model.StageTask
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("id ASC").
		Find(&tasks).Error
	return tasks, err
}

func (r *stageTaskRepo) List(ctx context.Context) ([]model.StageTask, error) {
	var tasks []model.StageTask
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&tasks).Error
	return tasks, err
}

func (r *stageTaskRepo) Update(ctx context.Context, task *model.StageTask) error {
	return r.db.WithContext(ctx).Save(task).Error
}

// StageReviewRepository 阶段评审记录数据访问接口
type StageReviewRepository interface {
	Create(ctx context.Context, review *model.StageReview) error
	ListByTask(ctx context.Context, taskID int64) ([]model.StageReview, error)
	List(ctx context.Context) ([]model.StageReview, error)
}

type stageReviewRepo struct {
	db *gorm.DB
}

// NewStageReviewRepo 创建 StageReviewRepository 实例
func NewStageReviewRepo(db *gorm.DB) StageReviewRepository {
	return &stageReviewRepo{db: db}
}

func (r *stageReviewRepo) Create(ctx context.Context, review *model.StageReview) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *stageReviewRepo) ListByTask(ctx context.Context, taskID int64) ([]model.StageReview, error) {
	var reviews []model.StageReview
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("created_at ASC").
		Find(&reviews).Error
	return reviews, err
}

func (r *stageReviewRepo) List(ctx context.Context) ([]model.StageReview, error) {
	var reviews []model.StageReview
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&reviews).Error
	return reviews, err
}
