package controller

import (
	"blend-calendar-api/core/constants"
	"blend-calendar-api/core/controller"
	"blend-calendar-api/core/errors"
	"blend-calendar-api/core/utils"
	"blend-calendar-api/modules/event/dto"
	"blend-calendar-api/modules/event/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// EventController handles event HTTP requests
type EventController struct {
	controller.BaseController
	EventService service.EventServiceInterface
}

// NewEventController creates a new controller
func NewEventController(svc service.EventServiceInterface) *EventController {
	return &EventController{
		BaseController: controller.NewBaseController(),
		EventService:   svc,
	}
}

// getUserIDFromContext extracts user ID from JWT context
func (c *EventController) getUserIDFromContext(ctx echo.Context) (uuid.UUID, error) {
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

// CreateEvent handles POST /events
// @Summary Create event
// @Description Create a new calendar event, optionally recurring, with invited users
// @Tags Event
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateEventRequest true "Event fields"
// @Success 200 {object} dto.EventResponse
// @Failure 400 {object} errors.AppError
// @Failure 401 {object} errors.AppError
// @Router /private/events [post]
func (c *EventController) CreateEvent(ctx echo.Context) error {
	ownerID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.CreateEventRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.EventService.CreateEvent(ctx.Request().Context(), ownerID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Event created successfully")
}

// GetEvent handles GET /events/:id
// @Summary Get event
// @Description Get one event by ID
// @Tags Event
// @Security BearerAuth
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} dto.EventResponse
// @Failure 404 {object} errors.AppError
// @Router /private/events/{id} [get]
func (c *EventController) GetEvent(ctx echo.Context) error {
	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event ID")
	}

	result, appErr := c.EventService.GetEventByID(ctx.Request().Context(), eventID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// GetMyEvents handles GET /events
// @Summary List my events
// @Description List all events owned by the authenticated user
// @Tags Event
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.EventResponse
// @Failure 401 {object} errors.AppError
// @Router /private/events [get]
func (c *EventController) GetMyEvents(ctx echo.Context) error {
	ownerID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	result, appErr := c.EventService.GetMyEvents(ctx.Request().Context(), ownerID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// UpdateEvent handles PUT /events/:id
// @Summary Update event
// @Description Update event fields; recurrence and availability buckets are kept in sync
// @Tags Event
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param request body dto.UpdateEventRequest true "Fields to update"
// @Success 200 {object} dto.EventResponse
// @Failure 400 {object} errors.AppError
// @Failure 403 {object} errors.AppError
// @Router /private/events/{id} [put]
func (c *EventController) UpdateEvent(ctx echo.Context) error {
	ownerID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event ID")
	}

	var req dto.UpdateEventRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.EventService.UpdateEvent(ctx.Request().Context(), eventID, ownerID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Event updated successfully")
}

// DeleteEvent handles DELETE /events/:id
// @Summary Delete event
// @Description Delete an event together with its availability buckets and pending invitations
// @Tags Event
// @Security BearerAuth
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} controller.SuccessResponse
// @Failure 403 {object} errors.AppError
// @Failure 404 {object} errors.AppError
// @Router /private/events/{id} [delete]
func (c *EventController) DeleteEvent(ctx echo.Context) error {
	ownerID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event ID")
	}

	if appErr := c.EventService.DeleteEvent(ctx.Request().Context(), eventID, ownerID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Event deleted successfully")
}

// UploadImage handles POST /events/:id/image
// @Summary Upload event image
// @Description Upload a cover image for the event
// @Tags Event
// @Security BearerAuth
// @Accept mpfd
// @Produce json
// @Param id path string true "Event ID"
// @Param image formData file true "Image file"
// @Success 200 {object} dto.UploadImageResponse
// @Failure 400 {object} errors.AppError
// @Router /private/events/{id}/image [post]
func (c *EventController) UploadImage(ctx echo.Context) error {
	ownerID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	eventID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid event ID")
	}

	file, err := ctx.FormFile("image")
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Missing image file")
	}

	src, err := file.Open()
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Cannot read image file")
	}
	defer src.Close()

	result, appErr := c.EventService.UploadEventImage(
		ctx.Request().Context(), eventID, ownerID,
		file.Header.Get("Content-Type"), src)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Image uploaded successfully")
}
