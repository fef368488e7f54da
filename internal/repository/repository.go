package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db *gorm.DB

	User             UserRepository
	Org              OrgRepository
	Menu             MenuRepository
	Topic            TopicRepository
	TopicApproval    TopicApprovalRepository
	Selection        SelectionRepository
	StageConfig      StageConfigRepository
	StageTask        StageTaskRepository
	StageReview      StageReviewRepository
	DefenseGroup     DefenseGroupRepository
	GroupMember      GroupMemberRepository
	ReviewAssignment ReviewAssignmentRepository
	DefenseScore     DefenseScoreRepository
	Announcement     AnnouncementRepository
	AnnouncementRead AnnouncementReadRepository
	Application      ApplicationRepository
	ApplicationLog   ApplicationLogRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:               db,
		User:             NewUserRepo(db),
		Org:              NewOrgRepo(db),
		Menu:             NewMenuRepo(db),
		Topic:            NewTopicRepo(db),
		TopicApproval:    NewTopicApprovalRepo(db),
		Selection:        NewSelectionRepo(db),
		StageConfig:      NewStageConfigRepo(db),
		StageTask:        NewStageTaskRepo(db),
		StageReview:      NewStageReviewRepo(db),
		DefenseGroup:     NewDefenseGroupRepo(db),
		GroupMember:      NewGroupMemberRepo(db),
		ReviewAssignment: NewReviewAssignmentRepo(db),
		DefenseScore:     NewDefenseScoreRepo(db),
		Announcement:     NewAnnouncementRepo(db),
		AnnouncementRead: NewAnnouncementReadRepo(db),
		Application:      NewApplicationRepo(db),
		ApplicationLog:   NewApplicationLogRepo(db),
	}
}

// BeginTx 开启数据库事务；无底层连接时返回 nil 事务
func (r *Repository) BeginTx(ctx context.Context) (*gorm.DB, error) {
	if r.db == nil {
		return nil, nil
	}
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return tx, nil
}

// WithTx 返回绑定到事务连接的 Repository 副本
// 容量校验 + 写入必须在同一事务内完成，调用方负责 Commit/Rollback
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return NewRepository(tx)
}

// Transaction 在单个事务内执行 fn；fn 返回错误时整体回滚
// autoAssign / autoCrossReview 等批量写入依赖该全有或全无语义
func (r *Repository) Transaction(ctx context.Context, fn func(txRepo *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
