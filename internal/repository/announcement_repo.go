package repository

import (
	"context"

	"gorm.io/gorm"

	"gdms/backend/internal/model"
)

// AnnouncementFilter 公告列表过滤条件
type AnnouncementFilter struct {
	Keyword   string // 模糊匹配 title/content
	Status    string
	CreatedBy *int64
}

// AnnouncementRepository 公告数据访问接口
type AnnouncementRepository interface {
	Create(ctx context.Context, ann *model.Announcement) error
	GetByID(ctx context.Context, id int64) (*model.Announcement, error)
	ListByStatus(ctx context.Context, status string) ([]model.Announcement, error)
	Find(ctx context.Context, filter AnnouncementFilter, page, pageSize int) ([]model.Announcement, int64, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	Update(ctx context.Context, ann *model.Announcement) error
	Delete(ctx context.Context, id int64) error
}

type announcementRepo struct {
	db *gorm.DB
}

// NewAnnouncementRepo 创建 AnnouncementRepository 实例
func NewAnnouncementRepo(db *gorm.DB) AnnouncementRepository {
	return &announcementRepo{db: db}
}

func (r *announcementRepo) Create(ctx context.Context, ann *model.Announcement) error {
	return r.db.WithContext(ctx).Create(ann).Error
}

func (r *announcementRepo) GetByID(ctx context.Context, id int64) (*model.Announcement, error) {
	var ann model.Announcement
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&ann).Error
	if err != nil {
		return nil, err
	}
	return &ann, nil
}

func (r *announcementRepo) ListByStatus(ctx context.Context, status string) ([]model.Announcement, error) {
	var anns []model.Announcement
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&anns).Error
	return anns, err
}

func (r *announcementRepo) Find(ctx context.Context, filter AnnouncementFilter, page, pageSize int) ([]model.Announcement, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Announcement{})

	if filter.Keyword != "" {
		pattern := "%" + filter.Keyword + "%"
		q = q.Where("title LIKE ? OR content LIKE ?", pattern, pattern)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.CreatedBy != nil {
		q = q.Where("created_by = ?", *filter.CreatedBy)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var anns []model.Announcement
	err := q.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&anns).Error
	return anns, total, err
}

func (r *announcementRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Announcement{}).Count(&count).Error
	return count, err
}

func (r *announcementRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Announcement{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

func (r *announcementRepo) Update(ctx context.Context, ann *model.Announcement) error {
	return r.db.WithContext(ctx).Save(ann).Error
}

func (r *announcementRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Announcement{}, id).Error
}

// AnnouncementReadRepository 公告阅读记录数据访问接口
type AnnouncementReadRepository interface {
	Create(ctx context.Context, read *model.AnnouncementRead) error
	Exists(ctx context.Context, announcementID, userID int64) (bool, error)
	CountByAnnouncement(ctx context.Context, announcementID int64) (int64, error)
	Count(ctx context.Context) (int64, error)
	DeleteByAnnouncement(ctx context.Context, announcementID int64) error
}

type announcementReadRepo struct {
	db *gorm.DB
}

// NewAnnouncementReadRepo 创建 AnnouncementReadRepository 实例
func NewAnnouncementReadRepo(db *gorm.DB) AnnouncementReadRepository {
	return &announcementReadRepo{db: db}
}

func (r *announcementReadRepo) Create(ctx context.Context, read *model.AnnouncementRead) error {
	return r.db.WithContext(ctx).Create(read).Error
}

func (r *announcementReadRepo) Exists(ctx context.Context, announcementID, userID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.AnnouncementRead{}).
		Where("announcement_id = ? AND user_id = ?", announcementID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *announcementReadRepo) CountByAnnouncement(ctx context.Context, announcementID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.AnnouncementRead{}).
		Where("announcement_id = ?", announcementID).
		Count(&count).Error
	return count, err
}

func (r *announcementReadRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.AnnouncementRead{}).Count(&count).Error
	return count, err
}

func (r *announcementReadRepo) DeleteByAnnouncement(ctx context.Context, announcementID int64) error {
	return r.db.WithContext(ctx).
		Where("announcement_id = ?", announcementID).
		Delete(&model.AnnouncementRead{}).Error
}
