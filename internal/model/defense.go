package model

import "time"

// ── 答辩分组类型 ──

const (
	GroupTypeOpening = "OPENING"
	GroupTypeFinal   = "FINAL"
)

// ValidGroupType 校验分组类型
func ValidGroupType(t string) bool {
	return t == GroupTypeOpening || t == GroupTypeFinal
}

// ── 评阅任务 ──

const (
	ReviewTypeCross   = "CROSS"
	ReviewTypeAdvisor = "ADVISOR"

	ReviewPending = "PENDING"
	ReviewDone    = "DONE"
)

// ValidReviewType 校验评阅类型
func ValidReviewType(t string) bool {
	return t == ReviewTypeCross || t == ReviewTypeAdvisor
}

// DefenseGroup 答辩分组表 — 对应 defense_groups
type DefenseGroup struct {
	ID          int64      `gorm:"primaryKey"                 json:"id"`
	Name        string     `gorm:"type:varchar(100);not null" json:"name"`
	Type        string     `gorm:"type:varchar(20);not null"  json:"type"` // OPENING | FINAL
	Capacity    int        `gorm:"not null;default:8"         json:"capacity"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	Location    string     `gorm:"type:varchar(200)"          json:"location,omitempty"`
	CreatedAt   time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName 指定表名
func (DefenseGroup) TableName() string { return "defense_groups" }

// GroupMember 分组成员表；student_id 全局唯一（一个学生至多属于一个分组） — 对应 group_members
type GroupMember struct {
	ID        int64  `gorm:"primaryKey"               json:"id"`
	GroupID   int64  `gorm:"not null;index"           json:"group_id"`
	StudentID int64  `gorm:"not null;uniqueIndex"     json:"student_id"`
	TopicID   *int64 `json:"topic_id,omitempty"`
}

// TableName 指定表名
func (GroupMember) TableName() string { return "group_members" }

// ReviewAssignment 评阅任务表；(reviewer_id, student_id, type) 唯一 — 对应 review_assignments
type ReviewAssignment struct {
	ID         int64     `gorm:"primaryKey"                                                    json:"id"`
	ReviewerID int64     `gorm:"not null;uniqueIndex:uq_review_assignment,priority:1"          json:"reviewer_id"`
	StudentID  int64     `gorm:"not null;uniqueIndex:uq_review_assignment,priority:2"          json:"student_id"`
	TopicID    *int64    `json:"topic_id,omitempty"`
	Type       string    `gorm:"type:varchar(20);not null;uniqueIndex:uq_review_assignment,priority:3" json:"type"` // CROSS | ADVISOR
	Status     string    `gorm:"type:varchar(20);not null;default:PENDING"                     json:"status"`       // PENDING | DONE
	Comment    string    `gorm:"type:text"                                                     json:"comment,omitempty"`
	Score      *float64  `json:"score,omitempty"`
	CreatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"                            json:"created_at"`
}

// TableName 指定表名
func (ReviewAssignment) TableName() string { return "review_assignments" }

// DefenseScore 答辩成绩表 — 对应 defense_scores
type DefenseScore struct {
	ID        int64   `gorm:"primaryKey"     json:"id"`
	GroupID   int64   `gorm:"not null;index" json:"group_id"`
	StudentID int64   `gorm:"not null;index" json:"student_id"`
	Score     float64 `gorm:"not null"       json:"score"`
	Comment   string  `gorm:"type:text"      json:"comment,omitempty"`
}

// TableName 指定表名
func (DefenseScore) TableName() string { return "defense_scores" }
