package api

import (
	"github.com/gin-gonic/gin"

	"taskboard/internal/service"
)

// RegisterRoutes wires every handler onto the /api group. Listing
// endpoints stay public; everything that mutates requires a bearer
// token.
func RegisterRoutes(
	r *gin.Engine,
	authSvc *service.AuthService,
	healthHandler *HealthHandler,
	authHandler *AuthHandler,
	projectHandler *ProjectHandler,
	taskHandler *TaskHandler,
) {
	api := r.Group("/api")
	api.Use(LanguageMiddleware())
	{
		api.GET("/health", healthHandler.Check)
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)
		api.GET("/projects", projectHandler.List)
		api.GET("/tasks", taskHandler.List)
	}

	authed := api.Group("")
	authed.Use(AuthMiddleware(authSvc))
	{
		authed.GET("/profile", authHandler.Profile)
		authed.PATCH("/profile", authHandler.UpdateProfile)

		authed.POST("/projects", projectHandler.Create)
		authed.POST("/projects/:id/copy", projectHandler.Copy)
		authed.POST("/projects/:id/share", projectHandler.Share)
		authed.PATCH("/projects/:id", projectHandler.Update)
		authed.DELETE("/projects/:id", projectHandler.Delete)

		authed.POST("/tasks", taskHandler.Create)
		authed.PATCH("/tasks/:id", taskHandler.Update)
		authed.DELETE("/tasks/:id", taskHandler.Destroy)
		authed.POST("/tasks/:id/share", taskHandler.Share)
	}
}
