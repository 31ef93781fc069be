package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mwarren/crmapi/internal/api/dto"
	"go.uber.org/zap"
)

// RecoveryMiddleware turns panics into a structured 500 response.
func RecoveryMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic while handling request",
					zap.String("path", c.Request.URL.Path),
					zap.Any("panic", err))
				c.AbortWithStatusJSON(http.StatusInternalServerError, dto.MessageResponse{
					Message: "An unexpected error occurred.",
				})
			}
		}()

		c.Next()
	}
}
