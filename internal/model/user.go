package model

import "time"

// ── 角色常量 ──

const (
	RoleAdmin   = "ADMIN"
	RoleTeacher = "TEACHER"
	RoleStudent = "STUDENT"
	RoleStaff   = "STAFF"
)

// ValidRole 校验角色取值
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleTeacher, RoleStudent, RoleStaff:
		return true
	}
	return false
}

// User 用户表 — 对应 users
type User struct {
	ID           int64     `gorm:"primaryKey"                                json:"id"`
	Username     string    `gorm:"type:varchar(64);not null;uniqueIndex"     json:"username"`
	PasswordHash string    `gorm:"type:varchar(255);not null"                json:"-"`
	FullName     string    `gorm:"type:varchar(100)"                         json:"full_name"`
	Role         string    `gorm:"type:varchar(20);not null;default:STUDENT" json:"role"`
	OrgID        *int64    `json:"org_id,omitempty"`
	Enabled      bool      `gorm:"not null;default:true"                     json:"enabled"`
	Phone        string    `gorm:"type:varchar(32)"                          json:"phone,omitempty"`
	SignatureURL string    `gorm:"type:varchar(255)"                         json:"signature_url,omitempty"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"        json:"created_at"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }
