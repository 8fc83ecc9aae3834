package router

import (
	"github.com/gin-gonic/gin"

	"invcheck/internal/handler"
	"invcheck/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(checkH *handler.CheckHandler, healthH *handler.HealthHandler) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())

	// Health check
	r.GET("/healthz", healthH.Liveness)

	v1 := r.Group("/api/v1")
	v1.POST("/check", checkH.Check)

	return r
}
