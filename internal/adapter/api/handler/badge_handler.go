package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"ecotrack/internal/usecase"
	"ecotrack/pkg/response"
)

type BadgeHandler struct {
	badgeUseCase *usecase.BadgeUseCase
}

func NewBadgeHandler(badgeUseCase *usecase.BadgeUseCase) *BadgeHandler {
	return &BadgeHandler{
		badgeUseCase: badgeUseCase,
	}
}

type badgeLevelRequest struct {
	Level         int    `json:"level" validate:"required,min=1"`
	RequiredCount int64  `json:"required_count" validate:"required,min=1"`
	Description   string `json:"description"`
	Icon          string `json:"icon"`
	Image         string `json:"image" validate:"omitempty,url"`
}

type badgeTemplateRequest struct {
	Name           string              `json:"name" validate:"required,min=2"`
	Category       string              `json:"category" validate:"required"`
	Description    string              `json:"description"`
	CounterToCheck string              `json:"counter_to_check" validate:"required"`
	Image          string              `json:"image" validate:"omitempty,url"`
	Levels         []badgeLevelRequest `json:"levels" validate:"required,min=1,dive"`
}

func (r badgeTemplateRequest) toInput() usecase.BadgeTemplateInput {
	input := usecase.BadgeTemplateInput{
		Name:           r.Name,
		Category:       r.Category,
		Description:    r.Description,
		CounterToCheck: r.CounterToCheck,
		Image:          r.Image,
	}
	for _, l := range r.Levels {
		input.Levels = append(input.Levels, usecase.BadgeLevelInput{
			Level:         l.Level,
			RequiredCount: l.RequiredCount,
			Description:   l.Description,
			Icon:          l.Icon,
			Image:         l.Image,
		})
	}
	return input
}

func (h *BadgeHandler) GetCatalog(c echo.Context) error {
	templates, err := h.badgeUseCase.GetCatalog(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, templates)
}

func (h *BadgeHandler) GetProgress(c echo.Context) error {
	uid := c.Get("uid").(string)
	filter := c.QueryParam("filter")

	views, err := h.badgeUseCase.GetProgress(c.Request().Context(), uid, filter)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, views)
}

func (h *BadgeHandler) GetStats(c echo.Context) error {
	uid := c.Get("uid").(string)

	stats, err := h.badgeUseCase.GetStats(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, stats)
}

func (h *BadgeHandler) GetRecent(c echo.Context) error {
	uid := c.Get("uid").(string)

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 || limit > 20 {
		limit = 3
	}

	badges, err := h.badgeUseCase.GetRecentBadges(c.Request().Context(), uid, limit)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, badges)
}

func (h *BadgeHandler) CreateTemplate(c echo.Context) error {
	var req badgeTemplateRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	template, err := h.badgeUseCase.CreateBadgeTemplate(c.Request().Context(), req.toInput())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, template)
}

func (h *BadgeHandler) UpdateTemplate(c echo.Context) error {
	id := c.Param("id")

	var req badgeTemplateRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	template, err := h.badgeUseCase.UpdateBadgeTemplate(c.Request().Context(), id, req.toInput())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, template)
}

func (h *BadgeHandler) DeleteTemplate(c echo.Context) error {
	id := c.Param("id")

	if err := h.badgeUseCase.DeleteBadgeTemplate(c.Request().Context(), id); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"message": "Badge template deleted"})
}
