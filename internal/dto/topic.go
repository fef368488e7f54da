package dto

// ── 课题模块 DTO ──

// CreateTopicRequest 创建课题请求
// capacity 缺省或非法时回退为 1，status 一律强制为 DRAFT
type CreateTopicRequest struct {
	Title       string `json:"title"       binding:"required,max=200"`
	Description string `json:"description"`
	Capacity    int    `json:"capacity"`
}

// UpdateTopicRequest 更新课题请求（仅草稿可改）
type UpdateTopicRequest struct {
	Title       *string `json:"title"       binding:"omitempty,max=200"`
	Description *string `json:"description"`
	Capacity    *int    `json:"capacity"`
}

// ApproveTopicRequest 课题审批请求
type ApproveTopicRequest struct {
	Decision string `json:"decision" binding:"required,oneof=APPROVED REJECTED"`
	Comment  string `json:"comment"  binding:"required,max=1000"`
}

// SelectTopicRequest 学生选题请求
type SelectTopicRequest struct {
	TopicID int64 `json:"topic_id" binding:"required"`
}

// TopicListQuery 课题列表查询参数
type TopicListQuery struct {
	PageQuery
	Keyword   string `form:"keyword"`
	Status    string `form:"status" binding:"omitempty,oneof=DRAFT SUBMITTED APPROVED REJECTED"`
	CreatorID *int64 `form:"creator_id"`
}

// TeacherStudentResponse 教师名下学生（持有其课题有效选题的学生）
type TeacherStudentResponse struct {
	StudentID       int64  `json:"student_id"`
	TopicID         int64  `json:"topic_id"`
	TopicTitle      string `json:"topic_title"`
	SelectionID     int64  `json:"selection_id"`
	SelectionStatus string `json:"selection_status"`
	CreatedAt       string `json:"created_at"`
}
