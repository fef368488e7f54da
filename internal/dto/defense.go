package dto

import "gdms/backend/internal/model"

// ── 答辩模块 DTO ──

// CreateGroupRequest 创建答辩分组请求
type CreateGroupRequest struct {
	Name        string  `json:"name"         binding:"required,max=100"`
	Type        string  `json:"type"         binding:"required,oneof=OPENING FINAL"`
	Capacity    int     `json:"capacity"     binding:"omitempty,min=1,max=100"`
	ScheduledAt *string `json:"scheduled_at"` // RFC3339
	Location    string  `json:"location"     binding:"max=200"`
}

// UpdateGroupRequest 更新答辩分组请求
type UpdateGroupRequest struct {
	Name        *string `json:"name"         binding:"omitempty,max=100"`
	Type        *string `json:"type"         binding:"omitempty,oneof=OPENING FINAL"`
	Capacity    *int    `json:"capacity"     binding:"omitempty,min=1,max=100"`
	ScheduledAt *string `json:"scheduled_at"`
	Location    *string `json:"location"     binding:"omitempty,max=200"`
}

// AutoAssignRequest 自动分组请求
type AutoAssignRequest struct {
	Type     string `json:"type"     binding:"required,oneof=OPENING FINAL"`
	Capacity int    `json:"capacity" binding:"required,min=1,max=100"`
}

// AddMemberRequest 添加分组成员请求
type AddMemberRequest struct {
	StudentID int64  `json:"student_id" binding:"required"`
	TopicID   *int64 `json:"topic_id"`
}

// AssignReviewRequest 指派评阅任务请求
type AssignReviewRequest struct {
	ReviewerID int64  `json:"reviewer_id" binding:"required"`
	StudentID  int64  `json:"student_id"  binding:"required"`
	TopicID    *int64 `json:"topic_id"`
	Type       string `json:"type"        binding:"required,oneof=CROSS ADVISOR"`
}

// CompleteReviewRequest 完成评阅请求
type CompleteReviewRequest struct {
	Comment string   `json:"comment" binding:"max=1000"`
	Score   *float64 `json:"score"`
}

// RecordScoreRequest 登记答辩成绩请求
type RecordScoreRequest struct {
	StudentID int64   `json:"student_id" binding:"required"`
	Score     float64 `json:"score"`
	Comment   string  `json:"comment"    binding:"max=1000"`
}

// GroupListQuery 答辩分组列表查询参数
type GroupListQuery struct {
	PageQuery
	Keyword string `form:"keyword"`
	Type    string `form:"type" binding:"omitempty,oneof=OPENING FINAL"`
}

// ReviewListQuery 评阅任务列表查询参数
type ReviewListQuery struct {
	PageQuery
	ReviewerID *int64 `form:"reviewer_id"`
	Status     string `form:"status" binding:"omitempty,oneof=PENDING DONE"`
	Type       string `form:"type"   binding:"omitempty,oneof=CROSS ADVISOR"`
}

// GradeSummaryResponse 按学生聚合的成绩汇总
type GradeSummaryResponse struct {
	StudentID int64   `json:"student_id"`
	AvgScore  float64 `json:"avg_score"`
	Count     int     `json:"count"`
}

// GroupDetailResponse 分组详情（含成员与成绩计数）
type GroupDetailResponse struct {
	Group       *model.DefenseGroup `json:"group"`
	MemberCount int                 `json:"member_count"`
	ScoreCount  int                 `json:"score_count"`
}

// MemberDetailResponse 成员详情（含学生姓名与成绩）
type MemberDetailResponse struct {
	MemberID    int64    `json:"member_id"`
	GroupID     int64    `json:"group_id"`
	StudentID   int64    `json:"student_id"`
	TopicID     *int64   `json:"topic_id,omitempty"`
	StudentName string   `json:"student_name,omitempty"`
	Username    string   `json:"username,omitempty"`
	Score       *float64 `json:"score,omitempty"`
	Comment     string   `json:"comment,omitempty"`
}
