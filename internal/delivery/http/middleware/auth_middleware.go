package middleware

import (
	"net/http"
	"strings"

	"urswat-backend/internal/delivery/http/response"
	"urswat-backend/internal/domain"
	"urswat-backend/pkg/auth"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware gates the staff endpoints. A missing token is 401, an
// invalid or expired one is 403; the public intake endpoints never pass
// through here.
func AuthMiddleware(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Error(c, http.StatusUnauthorized, "Access denied", nil)
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" || tokenString == authHeader {
			response.Error(c, http.StatusUnauthorized, "Access denied", nil)
			c.Abort()
			return
		}

		claims, err := tokens.Verify(tokenString)
		if err != nil {
			response.Error(c, http.StatusForbidden, "Invalid token", nil)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUserID), claims.UserID)
		c.Set(string(domain.KeyUserEmail), claims.Email)

		c.Next()
	}
}
