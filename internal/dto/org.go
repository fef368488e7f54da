package dto

// ── 组织模块 DTO ──

// CreateOrgRequest 创建组织请求
type CreateOrgRequest struct {
	Name     string `json:"name"      binding:"required,max=100"`
	ParentID *int64 `json:"parent_id"`
	Type     string `json:"type"      binding:"omitempty,oneof=COLLEGE DEPT"`
}

// UpdateOrgRequest 更新组织请求
type UpdateOrgRequest struct {
	Name     *string `json:"name"      binding:"omitempty,max=100"`
	ParentID *int64  `json:"parent_id"`
	Type     *string `json:"type"      binding:"omitempty,oneof=COLLEGE DEPT"`
}

// OrgListQuery 组织列表查询参数
type OrgListQuery struct {
	PageQuery
	Keyword  string `form:"keyword"`
	Type     string `form:"type" binding:"omitempty,oneof=COLLEGE DEPT"`
	ParentID *int64 `form:"parent_id"`
}
