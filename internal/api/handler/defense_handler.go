package handler

import (
	"github.com/gin-gonic/gin"

	"gdms/backend/internal/dto"
	"gdms/backend/internal/model"
	"gdms/backend/internal/service"
	"gdms/backend/pkg/response"
)

// DefenseHandler 答辩模块 HTTP 处理器
type DefenseHandler struct {
	defenseSvc service.DefenseService
}

// NewDefenseHandler 创建 DefenseHandler
func NewDefenseHandler(defenseSvc service.DefenseService) *DefenseHandler {
	return &DefenseHandler{defenseSvc: defenseSvc}
}

// CreateGroup 创建答辩分组
// POST /api/v1/defense/groups
func (h *DefenseHandler) CreateGroup(c *gin.Context) {
	var req dto.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	group, err := h.defenseSvc.CreateGroup(c.Request.Context(), &req)
	if err != nil {
		response.WriteError(c, err)
		return
	}

	response.Created(c, group)
}

// GetGroup 获取分组详情
// GET /api/v1/defense/groups/:id
func (h *DefenseHandler) GetGroup(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	group, err := h.defenseSvc.GetGroup(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}

	response.OK(c, group)
}

// ListGroups 分页查询分组列表
// GET /api/v1/defense/groups
func (h *DefenseHandler) ListGroups(c *gin.Context) {
	var query dto.GroupListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	groups, total, err := h.defenseSvc.FindGroups(c.Request.Context(), &query)
	if err != nil {
		response.WriteError(c, err)
		return
	}

	response.OKPage(c, groups, total, query.Page, query.PageSize)
}

// UpdateGroup 更新分组
// PUT /api/v1/defense/groups/:id
func (h *DefenseHandler) UpdateGroup(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	group, err := h.defenseSvc.UpdateGroup(c.Request.Context(), id, &req)
	if err != nil {
		response.WriteError(c, err)
		return
	}

	response.OK(c, group)
}

// DeleteGroup 删除分组
// DELETE /api/v1/defense/groups/:id
func (h *DefenseHandler) DeleteGroup(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.defenseSvc.DeleteGroup(c.Request.Context(), id); err != nil {
		response.WriteError(c, err)
		return
	}

	response.OK(c, nil)
}

// AutoAssign 自动分组
// POST /api/v1/defense/groups/auto-assign
func (h *DefenseHandler) AutoAssign(c *gin.Context) {
	var req dto.AutoAssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	groups, members, err := h.defenseSvc.AutoAssign(c.Request.Context(), &req)
	if err != nil {
		response.WriteError(c, err)
		return
	}

	response.Created(c, gin.H{"groups": groups, "members": members})
}

// AddMember 添加分组成员
// POST /api/v1/defense/groups/:id/members
func (h *DefenseHandler) AddMember(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	member, err := h.defenseSvc.AddMember(c.Request.Context(), id, &req)
	if err != nil {
		response.WriteError(c, err)
		return
	}

	response.Created(c, member)
}

// RemoveMember 移除分组成员
// DELETE /api/v1/defense/members/:id
func (h *DefenseHandler) RemoveMember(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.defenseSvc.RemoveMember(c.Request.Context(), id); err != nil {
		response.WriteError(c, err)
		return
	}

	response.OK(c, nil)
}

// ListMembers 查询分组成员
// GET /api/v1/defense/groups/:id/members
func (h *DefenseHandler) ListMembers(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	members, err := h.defenseSvc.ListMembers(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}

	response.OK(c, gin.H{"list": members})
}

// GetMyGroup 学生查询自己所在的答辩分组
// GET /api/v1/defense/groups/mine
func (h *DefenseHandler) GetMyGroup(c *gin.Context) {
	studentID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	group, err := h.defenseSvc.StudentGroup(c.Request.Context(), studentID)
	if err != nil {
		response.WriteError(c, err)
		return
	}

	response.OK(c, group)
}

// GetGroupDetail 查询分组详情（含成员与成绩计数）
// GET /api/v1/defense/groups/:id/detail
func (h *DefenseHandler) GetGroupDetail(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	detail, err := h.defenseSvc.GroupDetail(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}

	response.OK(c, detail)
}

// AssignReview 指派评阅任务
// POST /api/v1/defense/reviews
func (h *DefenseHandler) AssignReview(c *gin.Context) {
	var req dto.AssignReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	assignment, err := h.defenseSvc.AssignReview(c.Request.Context(), &req)
	if err != nil {
		response.WriteError(c, err)
		return
	}

	response.Created(c, assignment)
}

// AutoCrossReview 自动交叉评阅指派
// POST /api/v1/defense/reviews/auto-cross
func (h *DefenseHandler) AutoCrossReview(c *gin.Context) {
	assignments, err := h.defenseSvc.AutoCrossReview(c.Request.Context())
	if err != nil {
		response.WriteError(c, err)
		return
	}

	response.Created(c, gin.H{"list": assignments})
}

// CompleteReview 完成评阅任务
// POST /api/v1/defense/reviews/:id/complete
func (h *DefenseHandler) CompleteReview(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.CompleteReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	actorID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	assignment, err := h.defenseSvc.CompleteReview(c.Request.Context(), id, &req, actorID, role == model.RoleAdmin)
	if err != nil {
		response.WriteError(c, err)
		return
	}

	response.OK(c, assignment)
}

// ListReviews 分页查询评阅任务
// GET /api/v1/defense/reviews
func (h *DefenseHandler) ListReviews(c *gin.Context) {
	var query dto.ReviewListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	assignments, total, err := h.defenseSvc.FindReviews(c.Request.Context(), &query)
	if err != nil {
		response.WriteError(c, err)
		return
	}

	response.OKPage(c, assignments, total, query.Page, query.PageSize)
}

// ListMyReviews 教师查询自己的评阅任务
// GET /api/v1/defense/reviews/mine
func (h *DefenseHandler) ListMyReviews(c *gin.Context) {
	reviewerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	assignments, err := h.defenseSvc.ListReviewsByReviewer(c.Request.Context(), reviewerID)
	if err != nil {
		response.WriteError(c, err)
		return
	}

	response.OK(c, gin.H{"list": assignments})
}

// RecordScore 登记答辩成绩
// POST /api/v1/defense/groups/:id/scores
func (h *DefenseHandler) RecordScore(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.RecordScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	score, err := h.defenseSvc.RecordScore(c.Request.Context(), id, &req)
	if err != nil {
		response.WriteError(c, err)
		return
	}

	response.Created(c, score)
}

// ListGroupScores 查询分组成绩
// GET /api/v1/defense/groups/:id/scores
func (h *DefenseHandler) ListGroupScores(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	scores, err := h.defenseSvc.ListScoresByGroup(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}

	response.OK(c, gin.H{"list": scores})
}

// GradeSummary 成绩汇总
// GET /api/v1/defense/grades/summary
func (h *DefenseHandler) GradeSummary(c *gin.Context) {
	summary, err := h.defenseSvc.GradeSummary(c.Request.Context())
	if err != nil {
		response.WriteError(c, err)
		return
	}

	response.OK(c, gin.H{"list": summary})
}

// GetMyGrades 学生查询自己的答辩成绩
// GET /api/v1/defense/grades/mine
func (h *DefenseHandler) GetMyGrades(c *gin.Context) {
	studentID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	scores, err := h.defenseSvc.StudentGrades(c.Request.Context(), studentID)
	if err != nil {
		response.WriteError(c, err)
		return
	}

	response.OK(c, gin.H{"list": scores})
}
