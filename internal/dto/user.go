package dto

// ── 用户模块 DTO ──

// UserResponse 用户信息响应（不含密码）
type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	OrgID    *int64 `json:"org_id,omitempty"`
	Enabled  bool   `json:"enabled"`
	Phone    string `json:"phone,omitempty"`
}

// CreateUserRequest 管理员创建用户请求
type CreateUserRequest struct {
	Username     string `json:"username"      binding:"required,min=3,max=64"`
	Password     string `json:"password"      binding:"required,min=6,max=64"`
	FullName     string `json:"full_name"     binding:"max=100"`
	Role         string `json:"role"          binding:"required,oneof=ADMIN TEACHER STUDENT STAFF"`
	OrgID        *int64 `json:"org_id"`
	Phone        string `json:"phone"         binding:"max=32"`
	SignatureURL string `json:"signature_url" binding:"max=255"`
	Enabled      *bool  `json:"enabled"`
}

// UpdateUserRequest 更新用户请求（支持部分字段）
type UpdateUserRequest struct {
	FullName     *string `json:"full_name"`
	Phone        *string `json:"phone"`
	SignatureURL *string `json:"signature_url"`
	Role         *string `json:"role" binding:"omitempty,oneof=ADMIN TEACHER STUDENT STAFF"`
	OrgID        *int64  `json:"org_id"`
	Enabled      *bool   `json:"enabled"`
}

// ResetPasswordRequest 管理员重置密码请求
type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=6,max=64"`
}

// BatchRoleRequest 批量更新角色请求
type BatchRoleRequest struct {
	IDs  []int64 `json:"ids"  binding:"required,min=1"`
	Role string  `json:"role" binding:"required,oneof=ADMIN TEACHER STUDENT STAFF"`
}

// UserListQuery 用户列表查询参数
type UserListQuery struct {
	PageQuery
	Keyword string `form:"keyword"`
	Role    string `form:"role"    binding:"omitempty,oneof=ADMIN TEACHER STUDENT STAFF"`
	OrgID   *int64 `form:"org_id"`
	Enabled *bool  `form:"enabled"`
}
