package handler

import (
	"github.com/gin-gonic/gin"

	"gdms/backend/internal/dto"
	"gdms/backend/internal/model"
	"gdms/backend/internal/service"
	"gdms/backend/pkg/response"
)

// ApplicationHandler 申请模块 HTTP 处理器
type ApplicationHandler struct {
	appSvc service.ApplicationService
}

// NewApplicationHandler 创建 ApplicationHandler
func NewApplicationHandler(appSvc service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{appSvc: appSvc}
}

// CreateApplication 学生提交申请
// POST /api/v1/applications
func (h *ApplicationHandler) CreateApplication(c *gin.Context) {
	var req dto.CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	studentID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	app, err := h.appSvc.Create(c.Request.Context(), &req, studentID)
	if err != nil {
		response.WriteError(c, err)
		return
	}

	response.Created(c, app)
}

// GetApplication 查询申请详情（含操作日志）
// GET /api/v1/applications/:id
func (h *ApplicationHandler) GetApplication(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	detail, err := h.appSvc.Get(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}

	response.OK(c, detail)
}

// ListApplications 分页查询申请
// 学生角色只能查询自己的申请
// GET /api/v1/applications
func (h *ApplicationHandler) ListApplications(c *gin.Context) {
	var query dto.ApplicationListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
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
	if role == model.RoleStudent {
		query.StudentID = &callerID
	}

	apps, total, err := h.appSvc.Find(c.Request.Context(), &query)
	if err != nil {
		response.WriteError(c, err)
		return
	}

	response.OKPage(c, apps, total, query.Page, query.PageSize)
}

// ReviewApplication 审批申请
// POST /api/v1/applications/:id/review
func (h *ApplicationHandler) ReviewApplication(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.ReviewApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	reviewerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	app, err := h.appSvc.Review(c.Request.Context(), id, &req, reviewerID)
	if err != nil {
		response.WriteError(c, err)
		return
	}

	response.OK(c, app)
}

// WithdrawApplication 撤回待审批的申请
// POST /api/v1/applications/:id/withdraw
func (h *ApplicationHandler) WithdrawApplication(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	studentID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	app, err := h.appSvc.Withdraw(c.Request.Context(), id, studentID)
	if err != nil {
		response.WriteError(c, err)
		return
	}

	response.OK(c, app)
}

// ResubmitApplication 重新提交被驳回的申请
// POST /api/v1/applications/:id/resubmit
func (h *ApplicationHandler) ResubmitApplication(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.ResubmitApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	studentID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	app, err := h.appSvc.Resubmit(c.Request.Context(), id, &req, studentID)
	if err != nil {
		response.WriteError(c, err)
		return
	}

	response.OK(c, app)
}
