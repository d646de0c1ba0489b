package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/bp4sp4/korhrd-landing/internal/service"
	"github.com/bp4sp4/korhrd-landing/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportInquiries 导出全部상담 신청
// GET /admin/export
func (h *ExportHandler) ExportInquiries(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportInquiries(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, 16101, "엑셀 파일 생성에 실패했습니다.")
		return
	}

	// 设置下载响应头
	encodedFilename := url.PathEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
