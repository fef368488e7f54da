package model

// Org 组织架构表（学院/系） — 对应 orgs
type Org struct {
	ID       int64  `gorm:"primaryKey"        json:"id"`
	Name     string `gorm:"type:varchar(100);not null" json:"name"`
	ParentID *int64 `json:"parent_id,omitempty"`
	Type     string `gorm:"type:varchar(20)"  json:"type"` // COLLEGE | DEPT
}

// TableName 指定表名
func (Org) TableName() string { return "orgs" }
