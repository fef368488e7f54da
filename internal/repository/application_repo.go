package repository

import (
	"context"

	"gorm.io/gorm"

	"gdms/backend/internal/model"
)

// ApplicationFilter 申请列表过滤条件
type ApplicationFilter struct {
	Keyword   string // 模糊匹配 payload
	Type      string
	Status    model.ApplicationStatus
	StudentID *int64
}

// ApplicationRepository 学生申请数据访问接口
type ApplicationRepository interface {
	Create(ctx context.Context, app *model.Application) error
	GetByID(ctx context.Context, id int64) (*model.Application, error)
	Find(ctx context.Context, filter ApplicationFilter, page, pageSize int) ([]model.Application, int64, error)
	Update(ctx context.Context, app *model.Application) error
}

type applicationRepo struct {
	db *gorm.DB
}

// NewApplicationRepo 创建 ApplicationRepository 实例
func NewApplicationRepo(db *gorm.DB) ApplicationRepository {
	return &applicationRepo{db: db}
}

func (r *applicationRepo) Create(ctx context.Context, app *model.Application) error {
	return r.db.WithContext(ctx).Create(app).Error
}

func (r *applicationRepo) GetByID(ctx context.Context, id int64) (*model.Application, error) {
	var app model.Application
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&app).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepo) Find(ctx context.Context, filter ApplicationFilter, page, pageSize int) ([]model.Application, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Application{})

	if filter.Keyword != "" {
		q = q.Where("payload LIKE ?", "%"+filter.Keyword+"%")
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.StudentID != nil {
		q = q.Where("student_id = ?", *filter.StudentID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var apps []model.Application
	err := q.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&apps).Error
	return apps, total, err
}

func (r *applicationRepo) Update(ctx context.Context, app *model.Application) error {
	return r.db.WithContext(ctx).Save(app).Error
}

// ApplicationLogRepository 申请操作日志数据访问接口
type ApplicationLogRepository interface {
	Create(ctx context.Context, log *model.ApplicationLog) error
	ListByApplication(ctx context.Context, applicationID int64) ([]model.ApplicationLog, error)
}

type applicationLogRepo struct {
	db *gorm.DB
}

// NewApplicationLogRepo 创建 ApplicationLogRepository 实例
func NewApplicationLogRepo(db *gorm.DB) ApplicationLogRepository {
	return &applicationLogRepo{db: db}
}

func (r *applicationLogRepo) Create(ctx context.Context, log *model.ApplicationLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *applicationLogRepo) ListByApplication(ctx context.Context, applicationID int64) ([]model.ApplicationLog, error) {
	var logs []model.ApplicationLog
	err := r.db.WithContext(ctx).
		Where("application_id = ?", applicationID).
		Order("created_at ASC").
		Find(&logs).Error
	return logs, err
}
