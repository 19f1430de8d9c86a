package controller

import (
	"blend-calendar-api/core/constants"
	"blend-calendar-api/core/controller"
	"blend-calendar-api/core/errors"
	"blend-calendar-api/core/utils"
	"blend-calendar-api/modules/invitation/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// InvitationController handles invitation HTTP requests
type InvitationController struct {
	controller.BaseController
	InvitationService service.InvitationServiceInterface
}

// NewInvitationController creates a new controller
func NewInvitationController(svc service.InvitationServiceInterface) *InvitationController {
	return &InvitationController{
		BaseController:    controller.NewBaseController(),
		InvitationService: svc,
	}
}

func (c *InvitationController) getUserIDFromContext(ctx echo.Context) (uuid.UUID, error) {
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

// GetPendingInvitations handles GET /invitations/pending
// @Summary List pending invitations
// @Description List pending invitations for the authenticated user
// @Tags Invitation
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.PendingInvitationsResponse
// @Failure 401 {object} errors.AppError
// @Router /private/invitations/pending [get]
func (c *InvitationController) GetPendingInvitations(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	result, appErr := c.InvitationService.GetPendingInvitations(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// AcceptInvitation handles POST /invitations/:id/accept
// @Summary Accept invitation
// @Description Accept a pending invitation addressed to the authenticated user
// @Tags Invitation
// @Security BearerAuth
// @Produce json
// @Param id path string true "Invitation ID"
// @Success 200 {object} dto.InvitationResponse
// @Failure 403 {object} errors.AppError
// @Failure 404 {object} errors.AppError
// @Router /private/invitations/{id}/accept [post]
func (c *InvitationController) AcceptInvitation(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	invitationID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid invitation ID")
	}

	result, appErr := c.InvitationService.AcceptInvitation(ctx.Request().Context(), invitationID, userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Invitation accepted")
}

// DeclineInvitation handles POST /invitations/:id/decline
// @Summary Decline invitation
// @Description Decline a pending invitation addressed to the authenticated user
// @Tags Invitation
// @Security BearerAuth
// @Produce json
// @Param id path string true "Invitation ID"
// @Success 200 {object} dto.InvitationResponse
// @Failure 403 {object} errors.AppError
// @Failure 404 {object} errors.AppError
// @Router /private/invitations/{id}/decline [post]
func (c *InvitationController) DeclineInvitation(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	invitationID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid invitation ID")
	}

	result, appErr := c.InvitationService.DeclineInvitation(ctx.Request().Context(), invitationID, userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Invitation declined")
}
