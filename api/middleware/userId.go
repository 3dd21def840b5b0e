package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/customeros/mailtickets/internal/utils"
)

// UserIdMiddleware reads the agent identity forwarded by the admin gateway.
func UserIdMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("UserId", strings.TrimSpace(c.GetHeader(utils.HeaderUserId)))
		c.Set("UserName", utils.SanitizeTextField(c.GetHeader(utils.HeaderUserName)))
		c.Set("UserRoles", utils.StringToSlice(strings.ToLower(c.GetHeader(utils.HeaderUserRoles))))
		c.Next()
	}
}
