package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	api_errors "github.com/customeros/mailtickets/api/errors"
	"github.com/customeros/mailtickets/internal/utils"
)

const CapabilityEditOthersTickets = "edit_others_tickets"

var roleCapabilities = map[string][]string{
	"administrator": {CapabilityEditOthersTickets},
	"editor":        {CapabilityEditOthersTickets},
	"agent":         {CapabilityEditOthersTickets},
}

func HasCapability(roles []string, capability string) bool {
	for _, role := range roles {
		if utils.IsStringInSlice(capability, roleCapabilities[role]) {
			return true
		}
	}
	return false
}

// RequireCapability must run after UserIdMiddleware.
func RequireCapability(capability string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !HasCapability(c.GetStringSlice("UserRoles"), capability) {
			api_errors.Abort(c, http.StatusForbidden, api_errors.CodeForbidden, "Sorry, you are not allowed to do that.")
			return
		}
		c.Next()
	}
}
