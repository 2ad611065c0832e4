package http

import (
	"todolist/internal/adapter/http/handlers"
	"todolist/internal/adapter/http/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.Engine,
	healthHandler *handlers.HealthHandler,
	taskHandler *handlers.TaskHandler,
	verifier middleware.TokenVerifier,
) {
	api := r.Group("/api")
	api.Use(middleware.LanguageMiddleware())
	{
		api.GET("/health", healthHandler.CheckHealth)
		api.GET("/health/report", healthHandler.CheckHealthReport)
		api.GET("/tasks/:id", taskHandler.GetTask)
	}

	authed := api.Group("/tasks")
	authed.Use(middleware.AuthMiddleware(verifier))
	{
		authed.POST("", taskHandler.CreateTask)
		authed.PUT("/:id/completion", taskHandler.SetCompletion)
		authed.POST("/:id/toggle", taskHandler.ToggleCompletion)
		authed.DELETE("/:id", taskHandler.DeleteTask)
	}
}
