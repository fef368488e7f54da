package dto

// ── 阶段模块 DTO ──

// CreateStageRequest 创建阶段请求
type CreateStageRequest struct {
	Name       string  `json:"name"        binding:"required,max=100"`
	OrderIndex int     `json:"order_index" binding:"required"`
	Active     *bool   `json:"active"`
	StartAt    *string `json:"start_at"` // RFC3339
	EndAt      *string `json:"end_at"`   // RFC3339
}

// UpdateStageRequest 更新阶段请求
type UpdateStageRequest struct {
	Name       *string `json:"name"        binding:"omitempty,max=100"`
	OrderIndex *int    `json:"order_index"`
	Active     *bool   `json:"active"`
	StartAt    *string `json:"start_at"`
	EndAt      *string `json:"end_at"`
}

// SubmitTaskRequest 提交阶段任务请求
type SubmitTaskRequest struct {
	StageID int64  `json:"stage_id" binding:"required"`
	TopicID *int64 `json:"topic_id"`
	Content string `json:"content"`
}

// ReviewTaskRequest 评审阶段任务请求
type ReviewTaskRequest struct {
	Decision string `json:"decision" binding:"required,oneof=APPROVED REJECTED"`
	Comment  string `json:"comment"  binding:"max=1000"`
}
