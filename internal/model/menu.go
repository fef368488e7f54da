package model

// Menu 角色菜单表 — 对应 menus
type Menu struct {
	ID         int64  `gorm:"primaryKey"                 json:"id"`
	Name       string `gorm:"type:varchar(100);not null" json:"name"`
	Path       string `gorm:"type:varchar(255);not null" json:"path"`
	Role       string `gorm:"type:varchar(20);not null"  json:"role"`
	OrderIndex int    `gorm:"not null;default:0"         json:"order_index"`
}

// TableName 指定表名
func (Menu) TableName() string { return "menus" }
