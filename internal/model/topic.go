package model

import "time"

// ── 课题状态 ──

// TopicStatus 课题生命周期状态
type TopicStatus string

const (
	TopicDraft     TopicStatus = "DRAFT"
	TopicSubmitted TopicStatus = "SUBMITTED"
	TopicApproved  TopicStatus = "APPROVED"
	TopicRejected  TopicStatus = "REJECTED"
)

// Valid 校验状态取值
func (s TopicStatus) Valid() bool {
	switch s {
	case TopicDraft, TopicSubmitted, TopicApproved, TopicRejected:
		return true
	}
	return false
}

// Decision 审批决定只能是 APPROVED 或 REJECTED
func (s TopicStatus) Decision() bool {
	return s == TopicApproved || s == TopicRejected
}

// Editable 仅草稿状态允许编辑
func (s TopicStatus) Editable() bool { return s == TopicDraft }

// Topic 课题表 — 对应 topics
type Topic struct {
	ID          int64       `gorm:"primaryKey"                             json:"id"`
	Title       string      `gorm:"type:varchar(200);not null"             json:"title"`
	Description string      `gorm:"type:text"                              json:"description"`
	CreatorID   int64       `gorm:"not null;index"                         json:"creator_id"`
	Capacity    int         `gorm:"not null;default:1"                     json:"capacity"`
	Status      TopicStatus `gorm:"type:varchar(20);not null;default:DRAFT;index" json:"status"`
	CreatedAt   time.Time   `gorm:"not null;default:CURRENT_TIMESTAMP"     json:"created_at"`
}

// TableName 指定表名
func (Topic) TableName() string { return "topics" }

// TopicApproval 课题审批记录（追加式审计） — 对应 topic_approvals
type TopicApproval struct {
	ID         int64       `gorm:"primaryKey"                         json:"id"`
	TopicID    int64       `gorm:"not null;index"                     json:"topic_id"`
	ReviewerID int64       `gorm:"not null"                           json:"reviewer_id"`
	Decision   TopicStatus `gorm:"type:varchar(20);not null"          json:"decision"`
	Comment    string      `gorm:"type:text"                          json:"comment"`
	CreatedAt  time.Time   `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName 指定表名
func (TopicApproval) TableName() string { return "topic_approvals" }

// ── 选题状态 ──

// SelectionStatus 学生选题状态
type SelectionStatus string

const (
	SelectionSelected  SelectionStatus = "SELECTED"
	SelectionLocked    SelectionStatus = "LOCKED"
	SelectionCancelled SelectionStatus = "CANCELLED"
)

// Active SELECTED 与 LOCKED 均占用课题容量
func (s SelectionStatus) Active() bool {
	return s == SelectionSelected || s == SelectionLocked
}

// CanTransition 选题状态机：SELECTED → {LOCKED, CANCELLED}；LOCKED → CANCELLED；CANCELLED 终态
func (s SelectionStatus) CanTransition(to SelectionStatus) bool {
	switch s {
	case SelectionSelected:
		return to == SelectionLocked || to == SelectionCancelled
	case SelectionLocked:
		return to == SelectionCancelled
	}
	return false
}

// StudentSelection 学生选题记录 — 对应 student_selections
type StudentSelection struct {
	ID        int64           `gorm:"primaryKey"                                json:"id"`
	StudentID int64           `gorm:"not null;index"                            json:"student_id"`
	TopicID   int64           `gorm:"not null;index"                            json:"topic_id"`
	Status    SelectionStatus `gorm:"type:varchar(20);not null;default:SELECTED" json:"status"`
	CreatedAt time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP"        json:"created_at"`
}

// TableName 指定表名
func (StudentSelection) TableName() string { return "student_selections" }
