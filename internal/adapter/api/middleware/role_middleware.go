package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"ecotrack/internal/domain/entity"
	"ecotrack/internal/domain/repository"
)

type RoleMiddleware struct {
	userRepo repository.UserRepository
}

func NewRoleMiddleware(userRepo repository.UserRepository) *RoleMiddleware {
	return &RoleMiddleware{
		userRepo: userRepo,
	}
}

func (m *RoleMiddleware) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireRole(next, entity.RoleAdmin)
}

// TeacherOnly also admits admins, so school staff accounts can review
// submissions without a separate teacher role.
func (m *RoleMiddleware) TeacherOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireRole(next, entity.RoleTeacher, entity.RoleAdmin)
}

func (m *RoleMiddleware) requireRole(next echo.HandlerFunc, roles ...string) echo.HandlerFunc {
	return func(c echo.Context) error {
		uid, ok := c.Get("uid").(string)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
		}

		user, err := m.userRepo.GetByID(c.Request().Context(), uid)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to verify privileges")
		}

		for _, role := range roles {
			if user.Role == role {
				return next(c)
			}
		}

		return echo.NewHTTPError(http.StatusForbidden, "Insufficient privileges")
	}
}
