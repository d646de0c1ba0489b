package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bp4sp4/korhrd-landing/config"
	"github.com/bp4sp4/korhrd-landing/internal/api/handler"
	"github.com/bp4sp4/korhrd-landing/internal/api/middleware"
	"github.com/bp4sp4/korhrd-landing/pkg/jwt"
	"github.com/bp4sp4/korhrd-landing/pkg/redis"
)

// maxBodyBytes 公开表单与管理接口的请求体上限
const maxBodyBytes = 64 << 10

// Setup 初始化并返回 Gin 路由引擎
// rdb 为 nil 时限流与 Token 黑名单降级关闭
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	// 避免把 nil *redis.Client 装进非 nil 接口
	var (
		limiter middleware.Limiter
		checker middleware.TokenChecker
	)
	if rdb != nil {
		limiter = rdb
		checker = rdb
	}

	adminPath := cfg.Server.AdminPath
	cookie := cfg.Auth.Cookie

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders(adminPath, "/api/v1/auth", "/api/v1/inquiries"))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(maxBodyBytes))
	r.Use(middleware.AdminGate(adminPath, cookie.AccessName, cookie.RefreshName))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	jwtAuth := middleware.JWTAuth(jwtMgr, checker, cookie.AccessName)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 公开表单
		v1.POST("/inquiries",
			middleware.RateLimit(limiter, cfg.Intake.RateLimit, cfg.Intake.RateWindow, logger),
			h.Inquiry.Submit)

		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		{
			auth.POST("/login",
				middleware.RateLimit(limiter, cfg.Auth.LoginRateLimit, cfg.Auth.LoginRateWindow, logger),
				h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(jwtAuth)
		{
			authorized.GET("/auth/user", h.Auth.GetCurrentUser)
			authorized.POST("/auth/logout", h.Auth.Logout)

			inquiries := authorized.Group("/inquiries")
			{
				inquiries.GET("", h.Inquiry.List)
				inquiries.DELETE("/:id", h.Inquiry.Delete)
				inquiries.POST("/batch-delete", h.Inquiry.BatchDelete)
			}
		}
	}

	// ── 管理后台 ──
	admin := r.Group(adminPath)
	{
		admin.GET("", h.Admin.Root)
		admin.GET("/export", jwtAuth, h.Export.ExportInquiries)
	}

	return r
}
