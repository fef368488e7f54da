package handler

import (
	"github.com/gin-gonic/gin"

	"gdms/backend/internal/dto"
	"gdms/backend/internal/service"
	"gdms/backend/pkg/response"
)

// AnnouncementHandler 公告模块 HTTP 处理器
type AnnouncementHandler struct {
	annSvc service.AnnouncementService
}

// NewAnnouncementHandler 创建 AnnouncementHandler
func NewAnnouncementHandler(annSvc service.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{annSvc: annSvc}
}

// CreateAnnouncement 创建公告
// POST /api/v1/announcements
func (h *AnnouncementHandler) CreateAnnouncement(c *gin.Context) {
	var req dto.CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	creatorID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	ann, err := h.annSvc.Create(c.Request.Context(), &req, creatorID)
	if err != nil {
		response.WriteError(c, err)
		return
	}

	response.Created(c, ann)
}

// GetAnnouncement 读取公告（自动登记阅读记录）
// GET /api/v1/announcements/:id
func (h *AnnouncementHandler) GetAnnouncement(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	readerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	ann, err := h.annSvc.Get(c.Request.Context(), id, readerID)
	if err != nil {
		response.WriteError(c, err)
		return
	}

	response.OK(c, ann)
}

// ListAnnouncements 分页查询公告
// GET /api/v1/announcements
func (h *AnnouncementHandler) ListAnnouncements(c *gin.Context) {
	var query dto.AnnouncementListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	anns, total, err := h.annSvc.Find(c.Request.Context(), &query)
	if err != nil {
		response.WriteError(c, err)
		return
	}

	response.OKPage(c, anns, total, query.Page, query.PageSize)
}

// ListPublished 查询已发布公告（所有角色可见）
// GET /api/v1/announcements/published
func (h *AnnouncementHandler) ListPublished(c *gin.Context) {
	anns, err := h.annSvc.ListPublished(c.Request.Context())
	if err != nil {
		response.WriteError(c, err)
		return
	}

	response.OK(c, gin.H{"list": anns})
}

// UpdateAnnouncement 更新公告
// PUT /api/v1/announcements/:id
func (h *AnnouncementHandler) UpdateAnnouncement(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	ann, err := h.annSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.WriteError(c, err)
		return
	}

	response.OK(c, ann)
}

// DeleteAnnouncement 删除公告
// DELETE /api/v1/announcements/:id
func (h *AnnouncementHandler) DeleteAnnouncement(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.annSvc.Delete(c.Request.Context(), id); err != nil {
		response.WriteError(c, err)
		return
	}

	response.OK(c, nil)
}

// PublishAnnouncement 发布公告
// POST /api/v1/announcements/:id/publish
func (h *AnnouncementHandler) PublishAnnouncement(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	ann, err := h.annSvc.Publish(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}

	response.OK(c, ann)
}

// BatchPublish 批量发布（尽力而为，返回成功条数）
// POST /api/v1/announcements/batch-publish
func (h *AnnouncementHandler) BatchPublish(c *gin.Context) {
	var req dto.IDListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	count, err := h.annSvc.BatchPublish(c.Request.Context(), req.IDs)
	if err != nil {
		response.WriteError(c, err)
		return
	}

	response.OK(c, dto.BatchCountResponse{Count: count})
}

// BatchDelete 批量删除（原子）
// POST /api/v1/announcements/batch-delete
func (h *AnnouncementHandler) BatchDelete(c *gin.Context) {
	var req dto.IDListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.annSvc.BatchDelete(c.Request.Context(), req.IDs); err != nil {
		response.WriteError(c, err)
		return
	}

	response.OK(c, nil)
}

// MarkRead 标记公告已读
// POST /api/v1/announcements/:id/read
func (h *AnnouncementHandler) MarkRead(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	readerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.annSvc.MarkRead(c.Request.Context(), id, readerID); err != nil {
		response.WriteError(c, err)
		return
	}

	response.OK(c, nil)
}

// ReadStats 公告阅读统计
// GET /api/v1/announcements/:id/read-stats
func (h *AnnouncementHandler) ReadStats(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	stats, err := h.annSvc.ReadStats(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}

	response.OK(c, stats)
}

// Stats 公告总体统计
// GET /api/v1/announcements/stats
func (h *AnnouncementHandler) Stats(c *gin.Context) {
	stats, err := h.annSvc.Stats(c.Request.Context())
	if err != nil {
		response.WriteError(c, err)
		return
	}

	response.OK(c, stats)
}
