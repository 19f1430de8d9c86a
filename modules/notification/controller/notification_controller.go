package controller

import (
	"blend-calendar-api/core/constants"
	"blend-calendar-api/core/controller"
	"blend-calendar-api/core/errors"
	"blend-calendar-api/core/params"
	"blend-calendar-api/core/utils"
	"blend-calendar-api/modules/notification/dto"
	"blend-calendar-api/modules/notification/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type NotificationController struct {
	controller.BaseController
	NotificationService service.NotificationServiceInterface
}

func NewNotificationController(svc service.NotificationServiceInterface) *NotificationController {
	return &NotificationController{
		BaseController:      controller.NewBaseController(),
		NotificationService: svc,
	}
}

func getUserIDFromContext(ctx echo.Context) (uuid.UUID, error) {
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

// GetMyNotifications handles GET /notifications
// @Summary List notifications
// @Description List notifications for the authenticated user, newest first
// @Tags Notification
// @Security BearerAuth
// @Produce json
// @Param page_number query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} entity.PaginatedNotificationEntity
// @Failure 401 {object} errors.AppError
// @Router /private/notifications [get]
func (c *NotificationController) GetMyNotifications(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	queryParams := params.FromContext(ctx)
	result, getErr := c.NotificationService.GetMyNotifications(ctx.Request().Context(), userID, queryParams)
	if getErr != nil {
		return c.InternalServerError(errors.ErrInternalServer, "Failed to get notifications")
	}

	return c.SuccessResponse(ctx, result, "Notifications retrieved successfully")
}

// MarkAsRead handles PUT /notifications/mark-read
// @Summary Mark notifications as read
// @Description Mark the given notifications as read
// @Tags Notification
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.MarkAsReadRequest true "Notification IDs"
// @Success 200 {object} controller.SuccessResponse
// @Failure 400 {object} errors.AppError
// @Router /private/notifications/mark-read [put]
func (c *NotificationController) MarkAsRead(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	req := new(dto.MarkAsReadRequest)
	if err := ctx.Bind(req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	if err := c.NotificationService.MarkAsRead(ctx.Request().Context(), userID, req.IDs); err != nil {
		return c.InternalServerError(errors.ErrInternalServer, "Failed to mark as read")
	}

	return c.SuccessResponse(ctx, nil, "Marked as read successfully")
}

// MarkAllAsRead handles PUT /notifications/mark-all-read
// @Summary Mark all notifications as read
// @Tags Notification
// @Security BearerAuth
// @Produce json
// @Success 200 {object} controller.SuccessResponse
// @Failure 401 {object} errors.AppError
// @Router /private/notifications/mark-all-read [put]
func (c *NotificationController) MarkAllAsRead(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	if err := c.NotificationService.MarkAllAsRead(ctx.Request().Context(), userID); err != nil {
		return c.InternalServerError(errors.ErrInternalServer, "Failed to mark all as read")
	}

	return c.SuccessResponse(ctx, nil, "Marked all as read successfully")
}

// CountUnread handles GET /notifications/unread-count
// @Summary Count unread notifications
// @Tags Notification
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.UnreadCountResponse
// @Failure 401 {object} errors.AppError
// @Router /private/notifications/unread-count [get]
func (c *NotificationController) CountUnread(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	count, err := c.NotificationService.CountUnread(ctx.Request().Context(), userID)
	if err != nil {
		return c.InternalServerError(errors.ErrInternalServer, "Failed to count unread")
	}

	return c.SuccessResponse(ctx, dto.UnreadCountResponse{Count: count}, "Unread count retrieved")
}
