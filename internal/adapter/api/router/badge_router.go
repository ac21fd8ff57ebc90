package router

import (
	"github.com/labstack/echo/v4"

	"ecotrack/internal/adapter/api/handler"
	"ecotrack/internal/adapter/api/middleware"
)

func SetupBadgeRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, roleMiddleware *middleware.RoleMiddleware) {
	badgeHandler := handler.GetBadgeHandler()

	e.GET("/v1/badges", badgeHandler.GetCatalog)

	badges := e.Group("/v1/badges")
	badges.Use(authMiddleware.Authenticate)

	badges.GET("/progress", badgeHandler.GetProgress)
	badges.GET("/stats", badgeHandler.GetStats)
	badges.GET("/recent", badgeHandler.GetRecent)

	admin := e.Group("/v1/admin/badges")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(roleMiddleware.AdminOnly)

	admin.POST("", badgeHandler.CreateTemplate)
	admin.PUT("/:id", badgeHandler.UpdateTemplate)
	admin.DELETE("/:id", badgeHandler.DeleteTemplate)
}
