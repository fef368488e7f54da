package handler

import (
	"github.com/gin-gonic/gin"

	"gdms/backend/internal/dto"
	"gdms/backend/internal/service"
	"gdms/backend/pkg/response"
)

// StageHandler 阶段模块 HTTP 处理器
type StageHandler struct {
	stageSvc service.StageService
}

// NewStageHandler 创建 StageHandler
func NewStageHandler(stageSvc service.StageService) *StageHandler {
	return &StageHandler{stageSvc: stageSvc}
}

// CreateStage 创建阶段
// POST /api/v1/stages
func (h *StageHandler) CreateStage(c *gin.Context) {
	var req dto.CreateStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	cfg, err := h.stageSvc.CreateStage(c.Request.Context(), &req)
	if err != nil {
		response.WriteError(c, err)
		return
	}

	response.Created(c, cfg)
}

// ListStages 查询阶段列表
// GET /api/v1/stages?active=true
func (h *StageHandler) ListStages(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	configs, err := h.stageSvc.ListStages(c.Request.Context(), activeOnly)
	if err != nil {
		response.WriteError(c, err)
		return
	}

	response.OK(c, gin.H{"list": configs})
}

// UpdateStage 更新阶段
// PUT /api/v1/stages/:id
func (h *StageHandler) UpdateStage(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	cfg, err := h.stageSvc.UpdateStage(c.Request.Context(), id, &req)
	if err != nil {
		response.WriteError(c, err)
		return
	}

	response.OK(c, cfg)
}

// DeleteStage 删除阶段
// DELETE /api/v1/stages/:id
func (h *StageHandler) DeleteStage(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.stageSvc.DeleteStage(c.Request.Context(), id); err != nil {
		response.WriteError(c, err)
		return
	}

	response.OK(c, nil)
}

// SubmitTask 学生提交阶段任务
// POST /api/v1/stages/tasks
func (h *StageHandler) SubmitTask(c *gin.Context) {
	var req dto.SubmitTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	studentID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	task, err := h.stageSvc.SubmitTask(c.Request.Context(), &req, studentID)
	if err != nil {
		response.WriteError(c, err)
		return
	}

	response.Created(c, task)
}

// ReviewTask 教师评审阶段任务
// POST /api/v1/stages/tasks/:id/review
func (h *StageHandler) ReviewTask(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.ReviewTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	reviewerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	task, err := h.stageSvc.ReviewTask(c.Request.Context(), id, &req, reviewerID)
	if err != nil {
		response.WriteError(c, err)
		return
	}

	response.OK(c, task)
}

// GetTask 查询单个任务
// GET /api/v1/stages/tasks/:id
func (h *StageHandler) GetTask(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	task, err := h.stageSvc.GetTask(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}

	response.OK(c, task)
}

// ListMyTasks 学生查询自己的任务
// GET /api/v1/stages/tasks/mine
func (h *StageHandler) ListMyTasks(c *gin.Context) {
	studentID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	tasks, err := h.stageSvc.ListTasksByStudent(c.Request.Context(), studentID)
	if err != nil {
		response.WriteError(c, err)
		return
	}

	response.OK(c, gin.H{"list": tasks})
}

// ListTaskReviews 查询任务评审记录
// GET /api/v1/stages/tasks/:id/reviews
func (h *StageHandler) ListTaskReviews(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	reviews, err := h.stageSvc.ListReviewsByTask(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}

	response.OK(c, gin.H{"list": reviews})
}

// GetMyProgress 学生查询各阶段进度
// GET /api/v1/stages/progress
func (h *StageHandler) GetMyProgress(c *gin.Context) {
	studentID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	progress, err := h.stageSvc.StudentProgress(c.Request.Context(), studentID)
	if err != nil {
		response.WriteError(c, err)
		return
	}

	response.OK(c, gin.H{"list": progress})
}
