package repository

import (
	"context"

	"gorm.io/gorm"

	"gdms/backend/internal/model"
)

// SelectionRepository 学生选题数据访问接口
type SelectionRepository interface {
	Create(ctx context.Context, selection *model.StudentSelection) error
	GetByID(ctx context.Context, id int64) (*model.StudentSelection, error)
	GetByStudentAndStatus(ctx context.Context, studentID int64, status model.SelectionStatus) (*model.StudentSelection, error)
	ExistsByStudentAndStatus(ctx context.Context, studentID int64, status model.SelectionStatus) (bool, error)
	ListByTopic(ctx context.Context, topicID int64) ([]model.StudentSelection, error)
	ListByStudent(ctx context.Context, studentID int64) ([]model.StudentSelection, error)
	// ListActive 返回全部 SELECTED/LOCKED 选题，按创建时间升序（自动分组的分配输入）
	ListActive(ctx context.Context) ([]model.StudentSelection, error)
	// CountActiveByTopic 统计课题下占用容量的选题数（SELECTED + LOCKED）
	CountActiveByTopic(ctx context.Context, topicID int64) (int64, error)
	Update(ctx context.Context, selection *model.StudentSelection) error
}

type selectionRepo struct {
	db *gorm.DB
}

// NewSelectionRepo 创建 SelectionRepository 实例
func NewSelectionRepo(db *gorm.DB) SelectionRepository {
	return &selectionRepo{db: db}
}

func (r *selectionRepo) Create(ctx context.Context, selection *model.StudentSelection) error {
	return r.db.WithContext(ctx).Create(selection).Error
}

func (r *selectionRepo) GetByID(ctx context.Context, id int64) (*model.StudentSelection, error) {
	var selection model.StudentSelection
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&selection).Error
	if err != nil {
		return nil, err
	}
	return &selection, nil
}

func (r *selectionRepo) GetByStudentAndStatus(ctx context.Context, studentID int64, status model.SelectionStatus) (*model.StudentSelection, error) {
	var selection model.StudentSelection
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND status = ?", studentID, status).
		First(&selection).Error
	if err != nil {
		return nil, err
	}
	return &selection, nil
}

func (r *selectionRepo) ExistsByStudentAndStatus(ctx context.Context, studentID int64, status model.SelectionStatus) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.StudentSelection{}).
		Where("student_id = ? AND status = ?", studentID, status).
		Count(&count).Error
	return count > 0, err
}

func (r *selectionRepo) ListByTopic(ctx context.Context, topicID int64) ([]model.StudentSelection, error) {
	var selections []model.StudentSelection
	err := r.db.WithContext(ctx).
		Where("topic_id = ?", topicID).
		Order("created_at ASC").
		Find(&selections).Error
	return selections, err
}

func (r *selectionRepo) ListByStudent(ctx context.Context, studentID int64) ([]model.StudentSelection, error) {
	var selections []model.StudentSelection
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&selections).Error
	return selections, err
}

func (r *selectionRepo) ListActive(ctx context.Context) ([]model.StudentSelection, error) {
	var selections []model.StudentSelection
	err := r.db.WithContext(ctx).
		Where("status IN ?", []model.SelectionStatus{model.SelectionSelected, model.SelectionLocked}).
		Order("created_at ASC, id ASC").
		Find(&selections).Error
	return selections, err
}

func (r *selectionRepo) CountActiveByTopic(ctx context.Context, topicID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.StudentSelection{}).
		Where("topic_id = ? AND status IN ?", topicID,
			[]model.SelectionStatus{model.SelectionSelected, model.SelectionLocked}).
		Count(&count).Error
	return count, err
}

func (r *selectionRepo) Update(ctx context.Context, selection *model.StudentSelection) error {
	return r.db.WithContext(ctx).Save(selection).Error
}
