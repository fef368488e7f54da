package model

import "time"

// StageConfig 阶段配置表（开题/中期/答辩前等，orderIndex 定义全序） — 对应 stage_configs
type StageConfig struct {
	ID         int64      `gorm:"primaryKey"                 json:"id"`
	Name       string     `gorm:"type:varchar(100);not null" json:"name"`
	OrderIndex int        `gorm:"not null"                   json:"order_index"`
	Active     bool       `gorm:"not null;default:true"      json:"active"`
	StartAt    *time.Time `json:"start_at,omitempty"`
	EndAt      *time.Time `json:"end_at,omitempty"`
}

// TableName 指定表名
func (StageConfig) TableName() string { return "stage_configs" }

// ── 阶段任务状态 ──

// TaskStatus 阶段任务状态
type TaskStatus string

const (
	TaskPending   TaskStatus = "PENDING"
	TaskSubmitted TaskStatus = "SUBMITTED"
	TaskApproved  TaskStatus = "APPROVED"
	TaskRejected  TaskStatus = "REJECTED"
)

// Decision 评审决定只能是 APPROVED 或 REJECTED
func (s TaskStatus) Decision() bool {
	return s == TaskApproved || s == TaskRejected
}

// StageTask 阶段任务提交 — 对应 stage_tasks
type StageTask struct {
	ID        int64      `gorm:"primaryKey"                                json:"id"`
	StageID   int64      `gorm:"not null;index:idx_stage_tasks_student_stage,priority:2" json:"stage_id"`
	StudentID int64      `gorm:"not null;index:idx_stage_tasks_student_stage,priority:1" json:"student_id"`
	TopicID   *int64     `json:"topic_id,omitempty"`
	Status    TaskStatus `gorm:"type:varchar(20);not null;default:PENDING" json:"status"`
	Content   string     `gorm:"type:text"                                 json:"content"`
	UpdatedAt time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"        json:"updated_at"`
}

// TableName 指定表名
func (StageTask) TableName() string { return "stage_tasks" }

// StageReview 阶段评审记录（追加式审计） — 对应 stage_reviews
type StageReview struct {
	ID         int64      `gorm:"primaryKey"                         json:"id"`
	TaskID     int64      `gorm:"not null;index"                     json:"task_id"`
	ReviewerID int64      `gorm:"not null"                           json:"reviewer_id"`
	Decision   TaskStatus `gorm:"type:varchar(20);not null"          json:"decision"`
	Comment    string     `gorm:"type:text"                          json:"comment"`
	CreatedAt  time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName 指定表名
func (StageReview) TableName() string { return "stage_reviews" }
