package router

import (
	"github.com/labstack/echo/v4"

	"ecotrack/internal/adapter/api/middleware"
)

func Setup(
	e *echo.Echo,
	authMiddleware *middleware.AuthMiddleware,
	roleMiddleware *middleware.RoleMiddleware,
	rateLimitMiddleware *middleware.RateLimitMiddleware,
) {
	SetupAuthRouter(e, authMiddleware, rateLimitMiddleware)
	SetupUserRouter(e, authMiddleware, roleMiddleware)
	SetupBadgeRouter(e, authMiddleware, roleMiddleware)
	SetupEcoActionRouter(e, authMiddleware, roleMiddleware, rateLimitMiddleware)
	SetupFileRouter(e, authMiddleware, rateLimitMiddleware)
	SetupWebSocketRouter(e, authMiddleware)
	SetupHealthRouter(e)
}
