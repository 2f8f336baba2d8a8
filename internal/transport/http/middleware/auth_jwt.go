package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"home-services-admin/internal/core/auth"
	"home-services-admin/internal/transport/http/response"
)

func AuthJWT(j *auth.JWTer) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			response.Abort(c, http.StatusUnauthorized, "missing token")
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "invalid token")
			return
		}
		c.Set("claims", claims)
		c.Set("userId", claims.UID)
		c.Next()
	}
}
