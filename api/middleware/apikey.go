package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	api_errors "github.com/customeros/mailtickets/api/errors"
)

const APIKeyHeader = "X-TICKETING-API-KEY"

// APIKeyConfig holds the configuration for API key authentication
type APIKeyConfig struct {
	HeaderName  string
	ValidAPIKey string
}

// APIKeyMiddleware rejects requests that do not carry the configured key.
func APIKeyMiddleware(config APIKeyConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := strings.TrimSpace(c.GetHeader(config.HeaderName))

		if apiKey == "" {
			api_errors.Abort(c, http.StatusUnauthorized, api_errors.CodeUnauthorized, "Missing API key")
			return
		}

		if subtle.ConstantTimeCompare([]byte(apiKey), []byte(config.ValidAPIKey)) != 1 {
			api_errors.Abort(c, http.StatusUnauthorized, api_errors.CodeUnauthorized, "Invalid API key")
			return
		}

		c.Next()
	}
}
