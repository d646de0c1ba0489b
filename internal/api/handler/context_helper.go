package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bp4sp4/korhrd-landing/pkg/response"
)

// 由 middleware.JWTAuth 注入的上下文键
const (
	ctxOperatorID = "operator_id"
	ctxTokenJTI   = "token_jti"
	ctxTokenExp   = "token_exp"
)

// MustGetOperatorID 从 Gin 上下文中安全提取 operator_id。
// 如果 JWT 中间件未正确注入，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetOperatorID(c *gin.Context) (string, bool) {
	v, exists := c.Get(ctxOperatorID)
	if !exists {
		response.Unauthorized(c, 10002, "인증이 필요합니다.")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "인증이 필요합니다.")
		return "", false
	}
	return s, true
}

// tokenInfo 当前 Access Token 的 JTI 与过期时间；缺失时返回零值
func tokenInfo(c *gin.Context) (string, time.Time) {
	jti := c.GetString(ctxTokenJTI)
	exp, _ := c.Get(ctxTokenExp)
	t, _ := exp.(time.Time)
	return jti, t
}
