package dto

// PageQuery 通用分页查询参数
type PageQuery struct {
	Page     int `form:"page,default=1"       binding:"omitempty,min=1"`
	PageSize int `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}

// Normalize 回填默认分页参数
func (q *PageQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 || q.PageSize > 100 {
		q.PageSize = 20
	}
}

// IDListRequest 批量操作的 ID 列表
type IDListRequest struct {
	IDs []int64 `json:"ids" binding:"required,min=1"`
}

// BatchCountResponse 尽力而为批量操作的成功计数
type BatchCountResponse struct {
	Count int `json:"count"`
}
