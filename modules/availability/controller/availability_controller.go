package controller

import (
	"time"

	"blend-calendar-api/core/constants"
	"blend-calendar-api/core/controller"
	"blend-calendar-api/core/errors"
	"blend-calendar-api/modules/availability/dto"
	"blend-calendar-api/modules/availability/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AvailabilityController handles availability HTTP requests
type AvailabilityController struct {
	controller.BaseController
	AvailabilityService service.AvailabilityServiceInterface
}

// NewAvailabilityController creates a new controller
func NewAvailabilityController(svc service.AvailabilityServiceInterface) *AvailabilityController {
	return &AvailabilityController{
		BaseController:      controller.NewBaseController(),
		AvailabilityService: svc,
	}
}

// CheckAvailability handles POST /availability/check
// @Summary Check availability
// @Description Check each user's free/busy status for a time window on a date
// @Tags Availability
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CheckAvailabilityRequest true "Users and window"
// @Success 200 {object} dto.CheckAvailabilityResponse
// @Failure 400 {object} errors.AppError
// @Router /private/availability/check [post]
func (c *AvailabilityController) CheckAvailability(ctx echo.Context) error {
	var req dto.CheckAvailabilityRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	if len(req.UserIDs) == 0 {
		return c.BadRequest(errors.ErrInvalidInput, "At least one user ID is required")
	}

	date, err := time.Parse(constants.DateLayout, req.Date)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Date must be YYYY-MM-DD")
	}

	userIDs := make([]uuid.UUID, 0, len(req.UserIDs))
	for _, idStr := range req.UserIDs {
		userID, parseErr := uuid.Parse(idStr)
		if parseErr != nil {
			return c.BadRequest(errors.ErrInvalidInput, "Invalid user ID: "+idStr)
		}
		userIDs = append(userIDs, userID)
	}

	results, appErr := c.AvailabilityService.CheckAvailability(
		ctx.Request().Context(), userIDs, date, req.StartTime, req.EndTime)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, &dto.CheckAvailabilityResponse{Results: results}, "Success")
}
