package handler

import (
	"github.com/gin-gonic/gin"

	"gdms/backend/internal/dto"
	"gdms/backend/internal/model"
	"gdms/backend/internal/service"
	"gdms/backend/pkg/response"
)

// TopicHandler 课题与选题模块 HTTP 处理器
type TopicHandler struct {
	topicSvc service.TopicService
}

// NewTopicHandler 创建 TopicHandler
func NewTopicHandler(topicSvc service.TopicService) *TopicHandler {
	return &TopicHandler{topicSvc: topicSvc}
}

// CreateTopic 创建课题
// POST /api/v1/topics
func (h *TopicHandler) CreateTopic(c *gin.Context) {
	var req dto.CreateTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	topic, err := h.topicSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		response.WriteError(c, err)
		return
	}

	response.Created(c, topic)
}

// GetTopic 获取课题详情
// GET /api/v1/topics/:id
func (h *TopicHandler) GetTopic(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	topic, err := h.topicSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}

	response.OK(c, topic)
}

// ListTopics 分页查询课题列表
// GET /api/v1/topics
func (h *TopicHandler) ListTopics(c *gin.Context) {
	var query dto.TopicListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	topics, total, err := h.topicSvc.Find(c.Request.Context(), &query)
	if err != nil {
		response.WriteError(c, err)
		return
	}

	response.OKPage(c, topics, total, query.Page, query.PageSize)
}

// ListMyTopics 教师查询自己创建的课题
// GET /api/v1/topics/mine
func (h *TopicHandler) ListMyTopics(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	topics, err := h.topicSvc.ListByCreator(c.Request.Context(), callerID)
	if err != nil {
		response.WriteError(c, err)
		return
	}

	response.OK(c, gin.H{"list": topics})
}

// UpdateTopic 更新课题（仅草稿）
// PUT /api/v1/topics/:id
func (h *TopicHandler) UpdateTopic(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	topic, err := h.topicSvc.Update(c.Request.Context(), id, &req, callerID, role == model.RoleAdmin)
	if err != nil {
		response.WriteError(c, err)
		return
	}

	response.OK(c, topic)
}

// DeleteTopic 删除课题
// DELETE /api/v1/topics/:id
func (h *TopicHandler) DeleteTopic(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	if err := h.topicSvc.Delete(c.Request.Context(), id, callerID, role == model.RoleAdmin); err != nil {
		response.WriteError(c, err)
		return
	}

	response.OK(c, nil)
}

// SubmitTopic 提交课题审批
// POST /api/v1/topics/:id/submit
func (h *TopicHandler) SubmitTopic(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	topic, err := h.topicSvc.Submit(c.Request.Context(), id, callerID)
	if err != nil {
		response.WriteError(c, err)
		return
	}

	response.OK(c, topic)
}

// ApproveTopic 审批课题
// POST /api/v1/topics/:id/approve
func (h *TopicHandler) ApproveTopic(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.ApproveTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	reviewerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	topic, err := h.topicSvc.Approve(c.Request.Context(), id, &req, reviewerID)
	if err != nil {
		response.WriteError(c, err)
		return
	}

	response.OK(c, topic)
}

// ListApprovals 查询课题审批记录
// GET /api/v1/topics/:id/approvals
func (h *TopicHandler) ListApprovals(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	approvals, err := h.topicSvc.ListApprovals(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}

	response.OK(c, gin.H{"list": approvals})
}

// SelectTopic 学生选题
// POST /api/v1/selections
func (h *TopicHandler) SelectTopic(c *gin.Context) {
	var req dto.SelectTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	studentID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	selection, err := h.topicSvc.Select(c.Request.Context(), req.TopicID, studentID)
	if err != nil {
		response.WriteError(c, err)
		return
	}

	response.Created(c, selection)
}

// LockSelection 锁定选题
// POST /api/v1/selections/:id/lock
func (h *TopicHandler) LockSelection(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	selection, err := h.topicSvc.LockSelection(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}

	response.OK(c, selection)
}

// CancelSelection 取消选题
// 学生只能取消自己的未锁定选题；管理员可强制取消任意选题
// POST /api/v1/selections/:id/cancel
func (h *TopicHandler) CancelSelection(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	var requesterID *int64
	if role != model.RoleAdmin {
		requesterID = &callerID
	}

	selection, err := h.topicSvc.CancelSelection(c.Request.Context(), id, requesterID)
	if err != nil {
		response.WriteError(c, err)
		return
	}

	response.OK(c, selection)
}

// GetMySelection 学生查询自己的有效选题
// GET /api/v1/selections/mine
func (h *TopicHandler) GetMySelection(c *gin.Context) {
	studentID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	selection, err := h.topicSvc.GetActiveSelection(c.Request.Context(), studentID)
	if err != nil {
		response.WriteError(c, err)
		return
	}

	response.OK(c, selection)
}

// ListTopicSelections 查询课题下的选题记录
// GET /api/v1/topics/:id/selections
func (h *TopicHandler) ListTopicSelections(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	selections, err := h.topicSvc.ListSelectionsByTopic(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}

	response.OK(c, gin.H{"list": selections})
}

// ListStudentSelections 查询学生的选题记录（含已取消）
// GET /api/v1/selections/student/:id
func (h *TopicHandler) ListStudentSelections(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	selections, err := h.topicSvc.ListSelectionsByStudent(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}

	response.OK(c, gin.H{"list": selections})
}

// ListMyStudents 教师查询名下学生
// GET /api/v1/topics/students
func (h *TopicHandler) ListMyStudents(c *gin.Context) {
	teacherID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	students, err := h.topicSvc.TeacherStudents(c.Request.Context(), teacherID)
	if err != nil {
		response.WriteError(c, err)
		return
	}

	response.OK(c, gin.H{"list": students})
}
