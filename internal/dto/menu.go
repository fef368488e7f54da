package dto

// ── 菜单模块 DTO ──

// CreateMenuRequest 创建菜单请求
type CreateMenuRequest struct {
	Name       string `json:"name"        binding:"required,max=100"`
	Path       string `json:"path"        binding:"required,max=255"`
	Role       string `json:"role"        binding:"required,oneof=ADMIN TEACHER STUDENT STAFF"`
	OrderIndex int    `json:"order_index"`
}

// UpdateMenuRequest 更新菜单请求
type UpdateMenuRequest struct {
	Name       *string `json:"name"        binding:"omitempty,max=100"`
	Path       *string `json:"path"        binding:"omitempty,max=255"`
	Role       *string `json:"role"        binding:"omitempty,oneof=ADMIN TEACHER STUDENT STAFF"`
	OrderIndex *int    `json:"order_index"`
}

// ReorderMenusRequest 菜单重排请求：按列表顺序重写 orderIndex
type ReorderMenusRequest struct {
	IDs []int64 `json:"ids" binding:"required,min=1"`
}
