package dto

// ── 公告模块 DTO ──

// CreateAnnouncementRequest 创建公告请求
type CreateAnnouncementRequest struct {
	Title   string `json:"title"   binding:"required,max=200"`
	Content string `json:"content" binding:"required,max=10000"`
	Status  string `json:"status"  binding:"omitempty,oneof=DRAFT PUBLISHED"`
}

// UpdateAnnouncementRequest 更新公告请求
type UpdateAnnouncementRequest struct {
	Title   *string `json:"title"   binding:"omitempty,max=200"`
	Content *string `json:"content" binding:"omitempty,max=10000"`
	Status  *string `json:"status"  binding:"omitempty,oneof=DRAFT PUBLISHED"`
}

// AnnouncementListQuery 公告列表查询参数
type AnnouncementListQuery struct {
	PageQuery
	Keyword   string `form:"keyword"`
	Status    string `form:"status" binding:"omitempty,oneof=DRAFT PUBLISHED"`
	CreatedBy *int64 `form:"created_by"`
}

// ReadStatsResponse 公告阅读统计
type ReadStatsResponse struct {
	AnnouncementID int64  `json:"announcement_id"`
	Title          string `json:"title"`
	TotalRead      int64  `json:"total_read"`
}

// AnnouncementStatsResponse 公告总体统计
type AnnouncementStatsResponse struct {
	TotalCount     int64 `json:"total_count"`
	PublishedCount int64 `json:"published_count"`
	DraftCount     int64 `json:"draft_count"`
	TotalReadCount int64 `json:"total_read_count"`
}
