package router

import (
	"blend-calendar-api/core/middleware"
	"blend-calendar-api/modules/invitation/controller"

	"github.com/labstack/echo/v4"
)

// InvitationRouter handles invitation routes
type InvitationRouter struct {
	InvitationController *controller.InvitationController
}

// NewInvitationRouter creates a new router
func NewInvitationRouter(invitationController *controller.InvitationController) *InvitationRouter {
	return &InvitationRouter{
		InvitationController: invitationController,
	}
}

// Setup registers invitation routes
func (r *InvitationRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	privateRoutes := v1.Group("/private")

	invitationRoutes := privateRoutes.Group("/invitations", mw.AuthMiddleware())

	invitationRoutes.GET("/pending", r.InvitationController.GetPendingInvitations)
	invitationRoutes.POST("/:id/accept", r.InvitationController.AcceptInvitation)
	invitationRoutes.POST("/:id/decline", r.InvitationController.DeclineInvitation)
}
