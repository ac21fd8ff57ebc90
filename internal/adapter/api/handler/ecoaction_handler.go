package handler

import (
	"github.com/labstack/echo/v4"

	"ecotrack/internal/domain/entity"
	"ecotrack/internal/usecase"
	"ecotrack/pkg/errors"
	"ecotrack/pkg/response"
	"ecotrack/pkg/utils"
)

type EcoActionHandler struct {
	ecoActionUseCase *usecase.EcoActionUseCase
}

func NewEcoActionHandler(ecoActionUseCase *usecase.EcoActionUseCase) *EcoActionHandler {
	return &EcoActionHandler{
		ecoActionUseCase: ecoActionUseCase,
	}
}

type submitEcoActionRequest struct {
	Category    string `json:"category" validate:"required"`
	Description string `json:"description" validate:"required,min=5,max=1000"`
	PhotoURL    string `json:"photo_url" validate:"omitempty,url"`
}

type approvedEcoActionResponse struct {
	Action   *entity.EcoAction `json:"action"`
	LevelUps []entity.LevelUp  `json:"level_ups,omitempty"`
}

func (h *EcoActionHandler) Submit(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req submitEcoActionRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	action, err := h.ecoActionUseCase.Submit(c.Request().Context(), uid, usecase.SubmitEcoActionInput{
		Category:    req.Category,
		Description: req.Description,
		PhotoURL:    req.PhotoURL,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, action)
}

func (h *EcoActionHandler) ListOwn(c echo.Context) error {
	uid := c.Get("uid").(string)
	params := utils.GetPaginationParams(c)

	actions, total, err := h.ecoActionUseCase.ListOwn(c.Request().Context(), uid, params.Page, params.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, actions, total, params.Page, params.PageSize)
}

// ListPending lists submissions for review, defaulting to the pending
// queue. Teacher only.
func (h *EcoActionHandler) ListPending(c echo.Context) error {
	params := utils.GetPaginationParams(c)

	status := c.QueryParam("status")
	switch status {
	case "", entity.EcoActionStatusPending, entity.EcoActionStatusApproved, entity.EcoActionStatusRejected:
	default:
		return response.Error(c, errors.BadRequest("Unknown status filter", nil))
	}

	actions, total, err := h.ecoActionUseCase.ListByStatus(c.Request().Context(), status, params.Page, params.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, actions, total, params.Page, params.PageSize)
}

func (h *EcoActionHandler) GetByID(c echo.Context) error {
	action, err := h.ecoActionUseCase.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, action)
}

func (h *EcoActionHandler) Approve(c echo.Context) error {
	uid := c.Get("uid").(string)

	action, levelUps, err := h.ecoActionUseCase.Approve(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, approvedEcoActionResponse{
		Action:   action,
		LevelUps: levelUps,
	})
}

func (h *EcoActionHandler) Reject(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req struct {
		Reason string `json:"reason" validate:"required,min=3,max=500"`
	}
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	action, err := h.ecoActionUseCase.Reject(c.Request().Context(), uid, c.Param("id"), req.Reason)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, action)
}
