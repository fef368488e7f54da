package model

import "time"

// ── 申请状态 ──

// ApplicationStatus 学生申请状态
type ApplicationStatus string

const (
	ApplicationSubmitted ApplicationStatus = "SUBMITTED"
	ApplicationApproved  ApplicationStatus = "APPROVED"
	ApplicationRejected  ApplicationStatus = "REJECTED"
)

// Decision 审批决定只能是 APPROVED 或 REJECTED
func (s ApplicationStatus) Decision() bool {
	return s == ApplicationApproved || s == ApplicationRejected
}

// Application 学生申请表（换题/延期等通用申请） — 对应 applications
type Application struct {
	ID        int64             `gorm:"primaryKey"                                  json:"id"`
	Type      string            `gorm:"type:varchar(30);not null"                   json:"type"`
	StudentID int64             `gorm:"not null;index"                              json:"student_id"`
	TopicID   *int64            `json:"topic_id,omitempty"`
	Status    ApplicationStatus `gorm:"type:varchar(20);not null;default:SUBMITTED" json:"status"`
	Payload   string            `gorm:"type:text"                                   json:"payload,omitempty"`
	CreatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP"          json:"created_at"`
}

// TableName 指定表名
func (Application) TableName() string { return "applications" }

// ApplicationLog 申请操作日志（追加式审计） — 对应 application_logs
type ApplicationLog struct {
	ID            int64     `gorm:"primaryKey"                         json:"id"`
	ApplicationID int64     `gorm:"not null;index"                     json:"application_id"`
	ActorID       *int64    `json:"actor_id,omitempty"`
	Action        string    `gorm:"type:varchar(30);not null"          json:"action"`
	Comment       string    `gorm:"type:text"                          json:"comment,omitempty"`
	CreatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName 指定表名
func (ApplicationLog) TableName() string { return "application_logs" }
