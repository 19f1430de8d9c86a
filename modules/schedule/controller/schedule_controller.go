package controller

import (
	"time"

	"blend-calendar-api/core/constants"
	"blend-calendar-api/core/controller"
	"blend-calendar-api/core/errors"
	"blend-calendar-api/core/utils"
	"blend-calendar-api/modules/schedule/dto"
	"blend-calendar-api/modules/schedule/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ScheduleController handles schedule and blend HTTP requests
type ScheduleController struct {
	controller.BaseController
	ScheduleService service.ScheduleServiceInterface
}

// NewScheduleController creates a new controller
func NewScheduleController(svc service.ScheduleServiceInterface) *ScheduleController {
	return &ScheduleController{
		BaseController:  controller.NewBaseController(),
		ScheduleService: svc,
	}
}

func (c *ScheduleController) getUserIDFromContext(ctx echo.Context) (uuid.UUID, error) {
	tokenData := ctx.Get(constants.ContextTokenData)
	if tokenData == nil {
		return uuid.Nil, errors.NewAppError(errors.ErrUnauthorized, "User not authenticated", nil)
	}

	claims, ok := tokenData.(*utils.TokenClaims)
	if !ok {
		return uuid.Nil, errors.NewAppError(errors.ErrUnauthorized, "Invalid token data", nil)
	}

	return claims.UserID, nil
}

// viewWindow parses the reference_date and window_end query params. A missing
// reference date defaults to today; a missing window end means unbounded.
func viewWindow(ctx echo.Context) (time.Time, time.Time, error) {
	referenceDate := time.Now().UTC()
	if raw := ctx.QueryParam("reference_date"); raw != "" {
		parsed, err := time.Parse(constants.DateLayout, raw)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		referenceDate = parsed
	}

	var windowEnd time.Time
	if raw := ctx.QueryParam("window_end"); raw != "" {
		parsed, err := time.Parse(constants.DateLayout, raw)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		windowEnd = parsed
	}

	return referenceDate, windowEnd, nil
}

// GetMySchedules handles GET /schedules
// @Summary List my schedules
// @Tags Schedule
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.ScheduleResponse
// @Router /private/schedules [get]
func (c *ScheduleController) GetMySchedules(ctx echo.Context) error {
	ownerID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	result, appErr := c.ScheduleService.GetMySchedules(ctx.Request().Context(), ownerID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// GetScheduleOccurrences handles GET /schedules/:id/occurrences
// @Summary Schedule occurrences
// @Description Expanded, classified and day-partitioned occurrences for one schedule
// @Tags Schedule
// @Security BearerAuth
// @Produce json
// @Param id path string true "Schedule ID"
// @Param reference_date query string false "Reference day YYYY-MM-DD, defaults to today"
// @Param window_end query string false "Expansion window end YYYY-MM-DD"
// @Success 200 {object} dto.OccurrenceViewResponse
// @Failure 404 {object} errors.AppError
// @Router /private/schedules/{id}/occurrences [get]
func (c *ScheduleController) GetScheduleOccurrences(ctx echo.Context) error {
	viewerID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	scheduleID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid schedule ID")
	}

	referenceDate, windowEnd, err := viewWindow(ctx)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Dates must be YYYY-MM-DD")
	}

	result, appErr := c.ScheduleService.GetScheduleOccurrences(
		ctx.Request().Context(), scheduleID, viewerID, referenceDate, windowEnd)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// CreateBlend handles POST /blends
// @Summary Create blend
// @Description Merge several schedules into one virtual blend schedule
// @Tags Blend
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateBlendRequest true "Blend fields"
// @Success 200 {object} dto.BlendResponse
// @Failure 400 {object} errors.AppError
// @Router /private/blends [post]
func (c *ScheduleController) CreateBlend(ctx echo.Context) error {
	ownerID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.CreateBlendRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.ScheduleService.CreateBlend(ctx.Request().Context(), ownerID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Blend created successfully")
}

// GetBlend handles GET /blends/:id
// @Summary Get blend
// @Tags Blend
// @Security BearerAuth
// @Produce json
// @Param id path string true "Blend ID"
// @Success 200 {object} dto.BlendResponse
// @Failure 404 {object} errors.AppError
// @Router /private/blends/{id} [get]
func (c *ScheduleController) GetBlend(ctx echo.Context) error {
	blendID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid blend ID")
	}

	result, appErr := c.ScheduleService.GetBlendByID(ctx.Request().Context(), blendID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// GetMyBlends handles GET /blends
// @Summary List my blends
// @Tags Blend
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.BlendResponse
// @Router /private/blends [get]
func (c *ScheduleController) GetMyBlends(ctx echo.Context) error {
	ownerID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	result, appErr := c.ScheduleService.GetMyBlends(ctx.Request().Context(), ownerID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// GetBlendOccurrences handles GET /blends/:id/occurrences
// @Summary Blend occurrences
// @Description Merged occurrences across all member schedules, deduplicated, classified and day-partitioned
// @Tags Blend
// @Security BearerAuth
// @Produce json
// @Param id path string true "Blend ID"
// @Param reference_date query string false "Reference day YYYY-MM-DD, defaults to today"
// @Param window_end query string false "Expansion window end YYYY-MM-DD"
// @Success 200 {object} dto.OccurrenceViewResponse
// @Failure 404 {object} errors.AppError
// @Router /private/blends/{id}/occurrences [get]
func (c *ScheduleController) GetBlendOccurrences(ctx echo.Context) error {
	viewerID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	blendID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid blend ID")
	}

	referenceDate, windowEnd, err := viewWindow(ctx)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Dates must be YYYY-MM-DD")
	}

	result, appErr := c.ScheduleService.GetBlendOccurrences(
		ctx.Request().Context(), blendID, viewerID, referenceDate, windowEnd)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// DeleteBlend handles DELETE /blends/:id
// @Summary Delete blend
// @Tags Blend
// @Security BearerAuth
// @Produce json
// @Param id path string true "Blend ID"
// @Success 200 {object} controller.SuccessResponse
// @Failure 403 {object} errors.AppError
// @Router /private/blends/{id} [delete]
func (c *ScheduleController) DeleteBlend(ctx echo.Context) error {
	ownerID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	blendID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid blend ID")
	}

	if appErr := c.ScheduleService.DeleteBlend(ctx.Request().Context(), blendID, ownerID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Blend deleted successfully")
}
