package router

import (
	"github.com/labstack/echo/v4"

	"ecotrack/internal/adapter/api/handler"
	"ecotrack/internal/adapter/api/middleware"
)

func SetupEcoActionRouter(
	e *echo.Echo,
	authMiddleware *middleware.AuthMiddleware,
	roleMiddleware *middleware.RoleMiddleware,
	rateLimitMiddleware *middleware.RateLimitMiddleware,
) {
	ecoActionHandler := handler.GetEcoActionHandler()

	actions := e.Group("/v1/eco-actions")
	actions.Use(authMiddleware.Authenticate)

	actions.POST("", ecoActionHandler.Submit, rateLimitMiddleware.Limit("submit_action"))
	actions.GET("", ecoActionHandler.ListOwn)
	actions.GET("/:id", ecoActionHandler.GetByID)

	review := e.Group("/v1/teacher/eco-actions")
	review.Use(authMiddleware.Authenticate)
	review.Use(roleMiddleware.TeacherOnly)

	review.GET("", ecoActionHandler.ListPending)
	review.POST("/:id/approve", ecoActionHandler.Approve)
	review.POST("/:id/reject", ecoActionHandler.Reject)
}
