package invitation

import (
	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"

	"blend-calendar-api/core/database"
	"blend-calendar-api/core/middleware"
	"blend-calendar-api/modules/invitation/controller"
	"blend-calendar-api/modules/invitation/repository"
	"blend-calendar-api/modules/invitation/router"
	"blend-calendar-api/modules/invitation/service"
)

// Init wires the invitation module and returns the service so the event
// module can create and clean up invitations.
func Init(e *echo.Echo, db database.IDatabase, mw *middleware.Middleware, taskClient *asynq.Client) service.InvitationServiceInterface {
	repo := repository.NewInvitationRepository(db)
	svc := service.NewInvitationService(repo, taskClient)
	ctrl := controller.NewInvitationController(svc)
	rtr := router.NewInvitationRouter(ctrl)
	rtr.Setup(e, mw)
	return svc
}
