package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bp4sp4/korhrd-landing/config"
	"github.com/bp4sp4/korhrd-landing/internal/dto"
	"github.com/bp4sp4/korhrd-landing/internal/service"
	"github.com/bp4sp4/korhrd-landing/pkg/response"
)

// AuthHandler 管理员认证 HTTP 处理器
type AuthHandler struct {
	authSvc service.AuthService
	cfg     *config.AuthConfig
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService, cfg *config.AuthConfig) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, cfg: cfg}
}

// Login 管理员登录
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "이메일과 비밀번호를 확인해주세요.")
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, 11001, "로그인에 실패했습니다. 이메일과 비밀번호를 확인해주세요.")
			return
		}
		response.InternalError(c)
		return
	}

	h.setSessionCookies(c, result)
	response.OK(c, result)
}

// RefreshToken 刷新 Token：优先读取 Cookie，其次请求体
// POST /api/v1/auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	token, _ := c.Cookie(h.cfg.Cookie.RefreshName)
	if token == "" {
		var req dto.RefreshTokenRequest
		_ = c.ShouldBindJSON(&req)
		token = strings.TrimSpace(req.RefreshToken)
	}
	if token == "" {
		response.BadRequest(c, 10001, "refresh token이 필요합니다.")
		return
	}

	result, err := h.authSvc.Refresh(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRefresh) {
			h.clearSessionCookies(c)
			response.Unauthorized(c, 11002, "세션이 만료되었습니다. 다시 로그인해주세요.")
			return
		}
		response.InternalError(c)
		return
	}

	h.setSessionCookies(c, result)
	response.OK(c, result)
}

// GetCurrentUser 当前登录的管理员
// GET /api/v1/auth/user
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	operatorID, ok := MustGetOperatorID(c)
	if !ok {
		return
	}

	op, err := h.authSvc.GetCurrentOperator(c.Request.Context(), operatorID)
	if err != nil {
		if errors.Is(err, service.ErrOperatorNotFound) {
			response.Unauthorized(c, 10002, "인증이 필요합니다.")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, op)
}

// Logout 退出登录：吊销 Token 并清除 Cookie
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	jti, exp := tokenInfo(c)
	refresh, _ := c.Cookie(h.cfg.Cookie.RefreshName)

	if err := h.authSvc.Logout(c.Request.Context(), jti, exp, refresh); err != nil {
		response.InternalErrorWithDetails(c, err)
		return
	}

	h.clearSessionCookies(c)
	response.OK(c, nil)
}

// ── Cookie ──

func (h *AuthHandler) sameSite() http.SameSite {
	switch strings.ToLower(h.cfg.Cookie.SameSite) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

func (h *AuthHandler) setSessionCookies(c *gin.Context, s *dto.SessionResponse) {
	c.SetSameSite(h.sameSite())
	c.SetCookie(h.cfg.Cookie.AccessName, s.AccessToken, int(h.cfg.AccessTokenTTL.Seconds()),
		"/", h.cfg.Cookie.Domain, h.cfg.Cookie.Secure, true)
	c.SetCookie(h.cfg.Cookie.RefreshName, s.RefreshToken, int(h.cfg.RefreshTokenTTL.Seconds()),
		"/", h.cfg.Cookie.Domain, h.cfg.Cookie.Secure, true)
}

func (h *AuthHandler) clearSessionCookies(c *gin.Context) {
	c.SetSameSite(h.sameSite())
	c.SetCookie(h.cfg.Cookie.AccessName, "", -1, "/", h.cfg.Cookie.Domain, h.cfg.Cookie.Secure, true)
	c.SetCookie(h.cfg.Cookie.RefreshName, "", -1, "/", h.cfg.Cookie.Domain, h.cfg.Cookie.Secure, true)
}
