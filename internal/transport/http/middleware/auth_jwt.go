package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"staymarket/internal/core/auth"
	resp "staymarket/internal/transport/http/response"
)

// AuthJWT 解析 Bearer token，把身份写进上下文。
// adminOnly=true 时非管理员直接 403。
func AuthJWT(j *auth.JWTer, adminOnly bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Error(resp.CodeUnauthorized, "missing token"))
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Error(resp.CodeUnauthorized, "invalid token"))
			return
		}
		if adminOnly && !claims.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, resp.Error(resp.CodeForbidden, "admin only"))
			return
		}
		c.Set("userId", claims.UID)
		c.Set("isAdmin", claims.IsAdmin)
		c.Next()
	}
}
