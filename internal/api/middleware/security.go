package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// SecurityHeaders 安全响应头
// noStorePrefixes 下的响应禁止缓存（会话与상담 신청数据）
func SecurityHeaders(noStorePrefixes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		c.Header("Permissions-Policy", "camera=(), microphone=(), geolocation=()")

		for _, p := range noStorePrefixes {
			if strings.HasPrefix(c.Request.URL.Path, p) {
				c.Header("Cache-Control", "no-store")
				break
			}
		}

		c.Next()
	}
}
