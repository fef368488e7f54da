package model

import "time"

// ── 公告状态 ──

const (
	AnnouncementDraft     = "DRAFT"
	AnnouncementPublished = "PUBLISHED"
)

// ValidAnnouncementStatus 校验公告状态取值
func ValidAnnouncementStatus(s string) bool {
	return s == AnnouncementDraft || s == AnnouncementPublished
}

// Announcement 公告表 — 对应 announcements
type Announcement struct {
	ID          int64      `gorm:"primaryKey"                              json:"id"`
	Title       string     `gorm:"type:varchar(200);not null"              json:"title"`
	Content     string     `gorm:"type:text;not null"                      json:"content"`
	CreatedBy   *int64     `json:"created_by,omitempty"`
	Status      string     `gorm:"type:varchar(20);not null;default:DRAFT" json:"status"`
	CreatedAt   time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"      json:"created_at"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

// TableName 指定表名
func (Announcement) TableName() string { return "announcements" }

// AnnouncementRead 公告阅读记录；(announcement_id, user_id) 唯一 — 对应 announcement_reads
type AnnouncementRead struct {
	ID             int64     `gorm:"primaryKey"                                           json:"id"`
	AnnouncementID int64     `gorm:"not null;uniqueIndex:uq_announcement_read,priority:1" json:"announcement_id"`
	UserID         int64     `gorm:"not null;uniqueIndex:uq_announcement_read,priority:2" json:"user_id"`
	CreatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"                   json:"created_at"`
}

// TableName 指定表名
func (AnnouncementRead) TableName() string { return "announcement_reads" }
