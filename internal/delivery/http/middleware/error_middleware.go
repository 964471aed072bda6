package middleware

import (
	"errors"
	"net/http"

	"urswat-backend/internal/delivery/http/response"
	"urswat-backend/pkg/apperror"
	"urswat-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler maps errors funneled through c.Error to transport status
// codes, once, at the boundary. Anything that is not an AppError is logged
// server-side and surfaced as a generic 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				if appErr.Err != nil {
					logger.Log.Error("request failed", "path", c.Request.URL.Path, "error", appErr.Err)
				}
				response.Error(c, appErr.Code, appErr.Message, nil)
			} else {
				logger.Log.Error("unhandled error", "path", c.Request.URL.Path, "error", err)
				response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
			}
		}
	}
}
