package router

import (
	"github.com/gin-gonic/gin"

	"dealflow/internal/handler"
	"dealflow/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	webhookSecret string,
	webhookH *handler.WebhookHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())

	// Health check
	r.GET("/healthz", healthH.Liveness)

	v1 := r.Group("/api/v1")

	webhooks := v1.Group("/webhooks")
	webhooks.Use(middleware.WebhookAuth(webhookSecret))
	webhooks.POST("/submission", webhookH.Submit)

	return r
}
