package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AdminGate 管理后台路由边界
// adminPath 之下除根路径本身以外的请求，若不带任一会话 Cookie，302 重定向到根路径。
// 只检查 Cookie 是否存在，不校验 Token；伪造或过期的 Cookie 由 JWTAuth 拒绝。
func AdminGate(adminPath string, cookieNames ...string) gin.HandlerFunc {
	root := strings.TrimRight(adminPath, "/")

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if !strings.HasPrefix(path, root+"/") || path == root+"/" {
			c.Next()
			return
		}

		for _, name := range cookieNames {
			if v, err := c.Cookie(name); err == nil && v != "" {
				c.Next()
				return
			}
		}

		c.Redirect(http.StatusFound, root)
		c.Abort()
	}
}
