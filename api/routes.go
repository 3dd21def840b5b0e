package api

import (
	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/customeros/mailtickets/api/handlers"
	"github.com/customeros/mailtickets/api/middleware"
	"github.com/customeros/mailtickets/config"
	"github.com/customeros/mailtickets/internal/logger"
	"github.com/customeros/mailtickets/internal/metrics"
	"github.com/customeros/mailtickets/internal/tracing"
	"github.com/customeros/mailtickets/services"
)

const appSource = "mailtickets"

// RegisterRoutes sets up all API endpoints
func RegisterRoutes(r *gin.Engine, s *services.Services, appConfig *config.AppConfig, log logger.Logger, m *metrics.Metrics, gatherer prometheus.Gatherer) {
	if s == nil {
		panic("Services cannot be nil")
	}

	r.Use(gin.Recovery())
	r.Use(tracing.RecoveryWithJaeger(opentracing.GlobalTracer()))
	r.Use(middleware.MetricsMiddleware(m))

	apiHandlers := handlers.InitHandlers(s, log)

	r.GET("/health", handlers.HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	v1 := r.Group("/ticketing/v1")
	v1.Use(middleware.RequestIdMiddleware())
	v1.Use(middleware.UserIdMiddleware())
	v1.Use(middleware.CustomContextMiddleware(appSource))
	v1.Use(middleware.TracingMiddleware())

	webhook := v1.Group("/webhook")
	if appConfig.WebhookUsername != "" {
		webhook.Use(gin.BasicAuth(gin.Accounts{appConfig.WebhookUsername: appConfig.WebhookPassword}))
	}
	webhook.POST("", apiHandlers.Webhook.Inbound())

	agent := v1.Group("")
	agent.Use(middleware.APIKeyMiddleware(middleware.APIKeyConfig{
		HeaderName:  middleware.APIKeyHeader,
		ValidAPIKey: appConfig.APIKey,
	}))
	agent.Use(middleware.RequireCapability(middleware.CapabilityEditOthersTickets))
	{
		agent.GET("/tickets", apiHandlers.Tickets.List())
		agent.POST("/tickets", apiHandlers.Tickets.Create())
		agent.GET("/ticket/:id", apiHandlers.Tickets.Get())
		agent.POST("/ticket/:id/status", apiHandlers.Tickets.SetStatus())
		agent.POST("/ticket/:id/reply", apiHandlers.Tickets.Reply())
		agent.GET("/ticket/:id/attachments/:attachmentId", apiHandlers.Tickets.DownloadAttachment())
	}
}
