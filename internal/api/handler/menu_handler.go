package handler

import (
	"github.com/gin-gonic/gin"

	"gdms/backend/internal/dto"
	"gdms/backend/internal/service"
	"gdms/backend/pkg/response"
)

// MenuHandler 菜单模块 HTTP 处理器
type MenuHandler struct {
	menuSvc service.MenuService
}

// NewMenuHandler 创建 MenuHandler
func NewMenuHandler(menuSvc service.MenuService) *MenuHandler {
	return &MenuHandler{menuSvc: menuSvc}
}

// CreateMenu 创建菜单
// POST /api/v1/menus
func (h *MenuHandler) CreateMenu(c *gin.Context) {
	var req dto.CreateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	menu, err := h.menuSvc.Create(c.Request.Context(), &req)
	if err != nil {
		response.WriteError(c, err)
		return
	}

	response.Created(c, menu)
}

// GetMyMenus 查询当前角色的菜单
// GET /api/v1/menus/mine
func (h *MenuHandler) GetMyMenus(c *gin.Context) {
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	menus, err := h.menuSvc.ListByRole(c.Request.Context(), role)
	if err != nil {
		response.WriteError(c, err)
		return
	}

	response.OK(c, gin.H{"list": menus})
}

// ListMenusByRole 按角色查询菜单（管理端）
// GET /api/v1/menus?role=TEACHER
func (h *MenuHandler) ListMenusByRole(c *gin.Context) {
	role := c.Query("role")

	menus, err := h.menuSvc.ListByRole(c.Request.Context(), role)
	if err != nil {
		response.WriteError(c, err)
		return
	}

	response.OK(c, gin.H{"list": menus})
}

// UpdateMenu 更新菜单
// PUT /api/v1/menus/:id
func (h *MenuHandler) UpdateMenu(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	menu, err := h.menuSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.WriteError(c, err)
		return
	}

	response.OK(c, menu)
}

// DeleteMenu 删除菜单
// DELETE /api/v1/menus/:id
func (h *MenuHandler) DeleteMenu(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.menuSvc.Delete(c.Request.Context(), id); err != nil {
		response.WriteError(c, err)
		return
	}

	response.OK(c, nil)
}

// ReorderMenus 菜单重排
// POST /api/v1/menus/reorder
func (h *MenuHandler) ReorderMenus(c *gin.Context) {
	var req dto.ReorderMenusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.menuSvc.Reorder(c.Request.Context(), &req); err != nil {
		response.WriteError(c, err)
		return
	}

	response.OK(c, nil)
}
