package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bp4sp4/korhrd-landing/pkg/jwt"
	"github.com/bp4sp4/korhrd-landing/pkg/response"
)

// TokenChecker Token 吊销查询
type TokenChecker interface {
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// JWTAuth 管理接口认证中间件
// 依次从 Access Cookie、Authorization: Bearer <token> 中提取 Access Token
// checker 为 nil 时跳过黑名单检查
func JWTAuth(jwtMgr *jwt.Manager, checker TokenChecker, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerOrCookie(c, cookieName)
		if token == "" {
			response.Unauthorized(c, 10002, "인증이 필요합니다.")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(token)
		if err != nil {
			response.Unauthorized(c, 10002, "세션이 만료되었거나 유효하지 않습니다.")
			c.Abort()
			return
		}

		if claims.TokenType != jwt.TokenTypeAccess {
			response.Unauthorized(c, 10002, "세션이 만료되었거나 유효하지 않습니다.")
			c.Abort()
			return
		}

		if checker != nil {
			revoked, err := checker.IsBlacklisted(c.Request.Context(), claims.ID)
			// Redis 出错时降级放行
			if err == nil && revoked {
				response.Unauthorized(c, 10002, "로그아웃된 세션입니다.")
				c.Abort()
				return
			}
		}

		// 将管理员信息注入上下文
		c.Set("operator_id", claims.OperatorID)
		c.Set("operator_email", claims.Email)
		c.Set("token_jti", claims.ID)
		if claims.ExpiresAt != nil {
			c.Set("token_exp", claims.ExpiresAt.Time)
		}

		c.Next()
	}
}

func bearerOrCookie(c *gin.Context, cookieName string) string {
	if v, err := c.Cookie(cookieName); err == nil && v != "" {
		return v
	}

	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return strings.TrimSpace(parts[1])
	}
	return ""
}
