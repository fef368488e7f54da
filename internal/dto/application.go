package dto

// ── 申请模块 DTO ──

// CreateApplicationRequest 提交申请请求
type CreateApplicationRequest struct {
	Type    string `json:"type"     binding:"required,max=30"`
	TopicID *int64 `json:"topic_id"`
	Payload string `json:"payload"`
}

// ReviewApplicationRequest 审批申请请求
type ReviewApplicationRequest struct {
	Decision string `json:"decision" binding:"required,oneof=APPROVED REJECTED"`
	Comment  string `json:"comment"  binding:"max=1000"`
}

// ResubmitApplicationRequest 重新提交申请请求
type ResubmitApplicationRequest struct {
	Payload string `json:"payload"`
}

// ApplicationListQuery 申请列表查询参数
type ApplicationListQuery struct {
	PageQuery
	Keyword   string `form:"keyword"`
	Type      string `form:"type"`
	Status    string `form:"status" binding:"omitempty,oneof=SUBMITTED APPROVED REJECTED"`
	StudentID *int64 `form:"student_id"`
}
