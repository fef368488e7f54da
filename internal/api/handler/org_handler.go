package handler

import (
	"github.com/gin-gonic/gin"

	"gdms/backend/internal/dto"
	"gdms/backend/internal/service"
	"gdms/backend/pkg/response"
)

// OrgHandler 组织架构模块 HTTP 处理器
type OrgHandler struct {
	orgSvc service.OrgService
}

// NewOrgHandler 创建 OrgHandler
func NewOrgHandler(orgSvc service.OrgService) *OrgHandler {
	return &OrgHandler{orgSvc: orgSvc}
}

// CreateOrg 创建组织
// POST /api/v1/orgs
func (h *OrgHandler) CreateOrg(c *gin.Context) {
	var req dto.CreateOrgRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	org, err := h.orgSvc.Create(c.Request.Context(), &req)
	if err != nil {
		response.WriteError(c, err)
		return
	}

	response.Created(c, org)
}

// GetOrg 获取组织详情
// GET /api/v1/orgs/:id
func (h *OrgHandler) GetOrg(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	org, err := h.orgSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}

	response.OK(c, org)
}

// ListOrgs 分页查询组织
// GET /api/v1/orgs
func (h *OrgHandler) ListOrgs(c *gin.Context) {
	var query dto.OrgListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	orgs, total, err := h.orgSvc.Find(c.Request.Context(), &query)
	if err != nil {
		response.WriteError(c, err)
		return
	}

	response.OKPage(c, orgs, total, query.Page, query.PageSize)
}

// UpdateOrg 更新组织
// PUT /api/v1/orgs/:id
func (h *OrgHandler) UpdateOrg(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateOrgRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	org, err := h.orgSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.WriteError(c, err)
		return
	}

	response.OK(c, org)
}

// DeleteOrg 删除组织
// DELETE /api/v1/orgs/:id
func (h *OrgHandler) DeleteOrg(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.orgSvc.Delete(c.Request.Context(), id); err != nil {
		response.WriteError(c, err)
		return
	}

	response.OK(c, nil)
}

// BatchDeleteOrgs 批量删除组织（原子）
// POST /api/v1/orgs/batch-delete
func (h *OrgHandler) BatchDeleteOrgs(c *gin.Context) {
	var req dto.IDListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.orgSvc.DeleteBatch(c.Request.Context(), req.IDs); err != nil {
		response.WriteError(c, err)
		return
	}

	response.OK(c, nil)
}
