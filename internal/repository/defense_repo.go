package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gdms/backend/internal/model"
)

// GroupFilter 答辩分组列表过滤条件
type GroupFilter struct {
	Keyword string
	Type    string
}

// DefenseGroupRepository 答辩分组数据访问接口
type DefenseGroupRepository interface {
	Create(ctx context.Context, group *model.DefenseGroup) error
	GetByID(ctx context.Context, id int64) (*model.DefenseGroup, error)
	// GetByIDForUpdate 行级锁读取，用于分组容量校验 + 成员写入的串行化
	// 必须在事务连接上调用（通过 Repository.WithTx 注入）
	GetByIDForUpdate(ctx context.Context, id int64) (*model.DefenseGroup, error)
	List(ctx context.Context) ([]model.DefenseGroup, error)
	Find(ctx context.Context, filter GroupFilter, page, pageSize int) ([]model.DefenseGroup, int64, error)
	Update(ctx context.Context, group *model.DefenseGroup) error
	Delete(ctx context.Context, id int64) error
}

type defenseGroupRepo struct {
	db *gorm.DB
}

// NewDefenseGroupRepo 创建 DefenseGroupRepository 实例
func NewDefenseGroupRepo(db *gorm.DB) DefenseGroupRepository {
	return &defenseGroupRepo{db: db}
}

func (r *defenseGroupRepo) Create(ctx context.Context, group *model.DefenseGroup) error {
	return r.db.WithContext(ctx).Create(group).Error
}

func (r *defenseGroupRepo) GetByID(ctx context.Context, id int64) (*model.DefenseGroup, error) {
	var group model.DefenseGroup
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&group).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *defenseGroupRepo) GetByIDForUpdate(ctx context.Context, id int64) (*model.DefenseGroup, error) {
	var group model.DefenseGroup
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&group).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *defenseGroupRepo) List(ctx context.Context) ([]model.DefenseGroup, error) {
	var groups []model.DefenseGroup
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&groups).Error
	return groups, err
}

func (r *defenseGroupRepo) Find(ctx context.Context, filter GroupFilter, page, pageSize int) ([]model.DefenseGroup, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.DefenseGroup{})

	if filter.Keyword != "" {
		q = q.Where("name LIKE ?", "%"+filter.Keyword+"%")
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var groups []model.DefenseGroup
	err := q.Order("id ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&groups).Error
	return groups, total, err
}

func (r *defenseGroupRepo) Update(ctx context.Context, group *model.DefenseGroup) error {
	return r.db.WithContext(ctx).Save(group).Error
}

func (r *defenseGroupRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.DefenseGroup{}, id).Error
}

// GroupMemberRepository 分组成员数据访问接口
type GroupMemberRepository interface {
	Create(ctx context.Context, member *model.GroupMember) error
	GetByID(ctx context.Context, id int64) (*model.GroupMember, error)
	ListByGroup(ctx context.Context, groupID int64) ([]model.GroupMember, error)
	ListByStudent(ctx context.Context, studentID int64) ([]model.GroupMember, error)
	CountByGroup(ctx context.Context, groupID int64) (int64, error)
	ExistsByStudent(ctx context.Context, studentID int64) (bool, error)
	Delete(ctx context.Context, id int64) error
}

type groupMemberRepo struct {
	db *gorm.DB
}

// NewGroupMemberRepo 创建 GroupMemberRepository 实例
func NewGroupMemberRepo(db *gorm.DB) GroupMemberRepository {
	return &groupMemberRepo{db: db}
}

func (r *groupMemberRepo) Create(ctx context.Context, member *model.GroupMember) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *groupMemberRepo) GetByID(ctx context.Context, id int64) (*model.GroupMember, error) {
	var member model.GroupMember
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *groupMemberRepo) ListByGroup(ctx context.Context, groupID int64) ([]model.GroupMember, error) {
	var members []model.GroupMember
	err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("id ASC").
		Find(&members).Error
	return members, err
}

func (r *groupMemberRepo) ListByStudent(ctx context.Context, studentID int64) ([]model.GroupMember, error) {
	var members []model.GroupMember
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Find(&members).Error
	return members, err
}

func (r *groupMemberRepo) CountByGroup(ctx context.Context, groupID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.GroupMember{}).
		Where("group_id = ?", groupID).
		Count(&count).Error
	return count, err
}

func (r *groupMemberRepo) ExistsByStudent(ctx context.Context, studentID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.GroupMember{}).
		Where("student_id = ?", studentID).
		Count(&count).Error
	return count > 0, err
}

func (r *groupMemberRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.GroupMember{}, id).Error
}

// ReviewFilter 评阅任务列表过滤条件
type ReviewFilter struct {
	ReviewerID *int64
	Status     string
	Type       string
}

// ReviewAssignmentRepository 评阅任务数据访问接口
type ReviewAssignmentRepository interface {
	Create(ctx context.Context, assignment *model.ReviewAssignment) error
	GetByID(ctx context.Context, id int64) (*model.ReviewAssignment, error)
	Exists(ctx context.Context, reviewerID, studentID int64, reviewType string) (bool, error)
	ListByReviewer(ctx context.Context, reviewerID int64) ([]model.ReviewAssignment, error)
	ListByStudent(ctx context.Context, studentID int64) ([]model.ReviewAssignment, error)
	Find(ctx context.Context, filter ReviewFilter, page, pageSize int) ([]model.ReviewAssignment, int64, error)
	Update(ctx context.Context, assignment *model.ReviewAssignment) error
}

type reviewAssignmentRepo struct {
	db *gorm.DB
}

// NewReviewAssignmentRepo 创建 ReviewAssignmentRepository 实例
func NewReviewAssignmentRepo(db *gorm.DB) ReviewAssignmentRepository {
	return &reviewAssignmentRepo{db: db}
}

func (r *reviewAssignmentRepo) Create(ctx context.Context, assignment *model.ReviewAssignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *reviewAssignmentRepo) GetByID(ctx context.Context, id int64) (*model.ReviewAssignment, error) {
	var assignment model.ReviewAssignment
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *reviewAssignmentRepo) Exists(ctx context.Context, reviewerID, studentID int64, reviewType string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ReviewAssignment{}).
		Where("reviewer_id = ? AND student_id = ? AND type = ?", reviewerID, studentID, reviewType).
		Count(&count).Error
	return count > 0, err
}

func (r *reviewAssignmentRepo) ListByReviewer(ctx context.Context, reviewerID int64) ([]model.ReviewAssignment, error) {
	var assignments []model.ReviewAssignment
	err := r.db.WithContext(ctx).
		Where("reviewer_id = ?", reviewerID).
		Order("id ASC").
		Find(&assignments).Error
	return assignments, err
}

func (r *reviewAssignmentRepo) ListByStudent(ctx context.Context, studentID int64) ([]model.ReviewAssignment, error) {
	var assignments []model.ReviewAssignment
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("id ASC").
		Find(&assignments).Error
	return assignments, err
}

func (r *reviewAssignmentRepo) Find(ctx context.Context, filter ReviewFilter, page, pageSize int) ([]model.ReviewAssignment, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.ReviewAssignment{})

	if filter.ReviewerID != nil {
		q = q.Where("reviewer_id = ?", *filter.ReviewerID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var assignments []model.ReviewAssignment
	err := q.Order("id ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&assignments).Error
	return assignments, total, err
}

func (r *reviewAssignmentRepo) Update(ctx context.Context, assignment *model.ReviewAssignment) error {
	return r.db.WithContext(ctx).Save(assignment).Error
}

// DefenseScoreRepository 答辩成绩数据访问接口
type DefenseScoreRepository interface {
	Create(ctx context.Context, score *model.DefenseScore) error
	ListByGroup(ctx context.Context, groupID int64) ([]model.DefenseScore, error)
	ListByStudent(ctx context.Context, studentID int64) ([]model.DefenseScore, error)
	List(ctx context.Context) ([]model.DefenseScore, error)
}

type defenseScoreRepo struct {
	db *gorm.DB
}

// NewDefenseScoreRepo 创建 DefenseScoreRepository 实例
func NewDefenseScoreRepo(db *gorm.DB) DefenseScoreRepository {
	return &defenseScoreRepo{db: db}
}

func (r *defenseScoreRepo) Create(ctx context.Context, score *model.DefenseScore) error {
	return r.db.WithContext(ctx).Create(score).Error
}

func (r *defenseScoreRepo) ListByGroup(ctx context.Context, groupID int64) ([]model.DefenseScore, error) {
	var scores []model.DefenseScore
	err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("id ASC").
		Find(&scores).Error
	return scores, err
}

func (r *defenseScoreRepo) ListByStudent(ctx context.Context, studentID int64) ([]model.DefenseScore, error) {
	var scores []model.DefenseScore
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("id ASC").
		Find(&scores).Error
	return scores, err
}

func (r *defenseScoreRepo) List(ctx context.Context) ([]model.DefenseScore, error) {
	var scores []model.DefenseScore
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&scores).Error
	return scores, err
}
