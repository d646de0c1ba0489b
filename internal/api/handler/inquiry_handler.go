package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bp4sp4/korhrd-landing/internal/dto"
	"github.com/bp4sp4/korhrd-landing/internal/intake"
	"github.com/bp4sp4/korhrd-landing/internal/service"
	pkgerrors "github.com/bp4sp4/korhrd-landing/pkg/errors"
	"github.com/bp4sp4/korhrd-landing/pkg/response"
)

// InquiryHandler 상담 신청 HTTP 处理器
type InquiryHandler struct {
	inquirySvc service.InquiryService
}

// NewInquiryHandler 创建 InquiryHandler
func NewInquiryHandler(inquirySvc service.InquiryService) *InquiryHandler {
	return &InquiryHandler{inquirySvc: inquirySvc}
}

// Submit 公开表单提交
// POST /api/v1/inquiries
func (h *InquiryHandler) Submit(c *gin.Context) {
	var req dto.SubmitInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "입력값을 확인해주세요.")
		return
	}

	result, err := h.inquirySvc.Submit(c.Request.Context(), &req)
	if err != nil {
		var verr *intake.ValidationError
		switch {
		case errors.As(err, &verr):
			response.ErrorWithDetails(c, http.StatusBadRequest, 12001, verr.Message, verr.Field)
		case errors.Is(err, intake.ErrSubmitFailed):
			response.Error(c, http.StatusInternalServerError, 12002, intake.MsgSubmitFailed)
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, result)
}

// List 상담 신청列表（created_at 倒序）
// 未带分页参数时返回全部记录
// GET /api/v1/inquiries
func (h *InquiryHandler) List(c *gin.Context) {
	var req dto.PaginationRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "페이지 파라미터가 올바르지 않습니다.")
		return
	}

	if !req.Paged() {
		list, err := h.inquirySvc.ListAll(c.Request.Context())
		if err != nil {
			response.InternalErrorWithDetails(c, err)
			return
		}
		response.OK(c, list)
		return
	}

	list, total, err := h.inquirySvc.ListPage(c.Request.Context(), &req)
	if err != nil {
		response.InternalErrorWithDetails(c, err)
		return
	}
	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// Delete 删除单条
// DELETE /api/v1/inquiries/:id
func (h *InquiryHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, 10001, "잘못된 ID입니다.")
		return
	}

	if err := h.inquirySvc.Delete(c.Request.Context(), id); err != nil {
		h.handleDeleteError(c, err)
		return
	}
	response.OK(c, nil)
}

// BatchDelete 按 ID 集合删除，全部成功或全部回滚
// POST /api/v1/inquiries/batch-delete
func (h *InquiryHandler) BatchDelete(c *gin.Context) {
	var req dto.BatchDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 12102, "삭제할 항목을 선택해주세요.")
		return
	}

	n, err := h.inquirySvc.DeleteBatch(c.Request.Context(), req.IDs)
	if err != nil {
		h.handleDeleteError(c, err)
		return
	}
	response.OK(c, dto.BatchDeleteResponse{Deleted: n})
}

func (h *InquiryHandler) handleDeleteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInquiryNotFound):
		response.NotFound(c, 12101, err.Error())
	case errors.Is(err, service.ErrEmptySelection):
		response.BadRequest(c, 12102, err.Error())
	case errors.Is(err, pkgerrors.ErrStaleSelection):
		response.Error(c, http.StatusConflict, 12103, err.Error())
	default:
		response.InternalErrorWithDetails(c, err)
	}
}
