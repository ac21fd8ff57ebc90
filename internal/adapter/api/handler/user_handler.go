package handler

import (
	"github.com/labstack/echo/v4"

	"ecotrack/internal/usecase"
	"ecotrack/pkg/response"
	"ecotrack/pkg/utils"
)

type UserHandler struct {
	userUseCase *usecase.UserUseCase
}

func NewUserHandler(userUseCase *usecase.UserUseCase) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
	}
}

type updateProfileRequest struct {
	DisplayName string `json:"display_name" validate:"omitempty,min=2"`
	SchoolClass string `json:"school_class" validate:"omitempty,max=32"`
	Bio         string `json:"bio" validate:"omitempty,max=500"`
	AvatarURL   string `json:"avatar_url" validate:"omitempty,url"`
}

func (h *UserHandler) GetProfile(c echo.Context) error {
	uid := c.Get("uid").(string)

	user, err := h.userUseCase.GetUserProfile(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *UserHandler) UpdateProfile(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.userUseCase.UpdateProfile(c.Request().Context(), uid, usecase.UpdateProfileInput{
		DisplayName: req.DisplayName,
		SchoolClass: req.SchoolClass,
		Bio:         req.Bio,
		AvatarURL:   req.AvatarURL,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *UserHandler) UpdatePassword(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req struct {
		NewPassword string `json:"new_password" validate:"required,min=8"`
	}
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.userUseCase.UpdatePassword(c.Request().Context(), uid, req.NewPassword); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"message": "Password updated"})
}

// ListClass returns the roster for a school class. Teacher only, wired
// in the admin router.
func (h *UserHandler) ListClass(c echo.Context) error {
	params := utils.GetPaginationParams(c)

	users, total, err := h.userUseCase.ListBySchoolClass(c.Request().Context(), c.QueryParam("class"), params.Page, params.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, users, total, params.Page, params.PageSize)
}

// SetRole promotes or demotes another user. Admin only, wired in the
// admin router.
func (h *UserHandler) SetRole(c echo.Context) error {
	userID := c.Param("id")

	var req struct {
		Role string `json:"role" validate:"required,oneof=student teacher admin"`
	}
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.userUseCase.SetUserRole(c.Request().Context(), userID, req.Role)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}
