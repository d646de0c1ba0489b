package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/bp4sp4/korhrd-landing/config"
	"github.com/bp4sp4/korhrd-landing/internal/dto"
	"github.com/bp4sp4/korhrd-landing/internal/service"
	"github.com/bp4sp4/korhrd-landing/pkg/jwt"
	"github.com/bp4sp4/korhrd-landing/pkg/response"
)

// AdminHandler 管理后台根路径
type AdminHandler struct {
	authSvc service.AuthService
	jwtMgr  *jwt.Manager
	cookie  *config.CookieConfig
}

// NewAdminHandler 创建 AdminHandler
func NewAdminHandler(authSvc service.AuthService, jwtMgr *jwt.Manager, cookie *config.CookieConfig) *AdminHandler {
	return &AdminHandler{authSvc: authSvc, jwtMgr: jwtMgr, cookie: cookie}
}

// AdminSessionResponse 会话探测结果
type AdminSessionResponse struct {
	Authenticated bool                  `json:"authenticated"`
	Operator      *dto.OperatorResponse `json:"operator,omitempty"`
}

// Root 会话探测：始终可访问，Access Cookie 有效时返回当前管理员
// GET /admin
func (h *AdminHandler) Root(c *gin.Context) {
	token, _ := c.Cookie(h.cookie.AccessName)
	if token == "" {
		response.OK(c, AdminSessionResponse{})
		return
	}

	claims, err := h.jwtMgr.ParseToken(token)
	if err != nil || claims.TokenType != jwt.TokenTypeAccess {
		response.OK(c, AdminSessionResponse{})
		return
	}

	op, err := h.authSvc.GetCurrentOperator(c.Request.Context(), claims.OperatorID)
	if err != nil {
		response.OK(c, AdminSessionResponse{})
		return
	}

	response.OK(c, AdminSessionResponse{Authenticated: true, Operator: op})
}
