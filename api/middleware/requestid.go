package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/customeros/mailtickets/internal/utils"
)

// RequestIdMiddleware keeps an incoming X-Request-Id or assigns a new one.
func RequestIdMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestId := c.GetHeader(utils.HeaderRequestId)
		if requestId == "" {
			requestId = uuid.NewString()
		}
		c.Set("RequestId", requestId)
		c.Header(utils.HeaderRequestId, requestId)
		c.Next()
	}
}
