package utils

import (
	"context"

	"github.com/gin-gonic/gin"
)

const (
	HeaderUserId    = "X-User-Id"
	HeaderUserName  = "X-User-Name"
	HeaderUserRoles = "X-User-Roles"
	HeaderRequestId = "X-Request-Id"
)

type CustomContext struct {
	AppSource string
	RequestId string
	UserId    string
	UserName  string
	Roles     []string
}

type customContextKeyType string

const customContextKey customContextKeyType = "CUSTOM_CONTEXT"

func WithCustomContext(ctx context.Context, customContext *CustomContext) context.Context {
	return context.WithValue(ctx, customContextKey, customContext)
}

// WithCustomContextFromGinRequest copies the identity that the middleware
// chain stored on the gin context into the request context.
func WithCustomContextFromGinRequest(c *gin.Context, appSource string) context.Context {
	customContext := &CustomContext{
		AppSource: appSource,
		RequestId: c.GetString("RequestId"),
		UserId:    c.GetString("UserId"),
		UserName:  c.GetString("UserName"),
		Roles:     c.GetStringSlice("UserRoles"),
	}
	return WithCustomContext(c.Request.Context(), customContext)
}

func GetContext(ctx context.Context) *CustomContext {
	customContext, ok := ctx.Value(customContextKey).(*CustomContext)
	if !ok {
		return new(CustomContext)
	}
	return customContext
}

func GetUserIdFromContext(ctx context.Context) string {
	return GetContext(ctx).UserId
}

func GetUserNameFromContext(ctx context.Context) string {
	return GetContext(ctx).UserName
}
