package notification

import (
	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"

	"blend-calendar-api/core/constants"
	"blend-calendar-api/core/database"
	"blend-calendar-api/core/middleware"
	"blend-calendar-api/modules/notification/controller"
	"blend-calendar-api/modules/notification/repository"
	"blend-calendar-api/modules/notification/router"
	"blend-calendar-api/modules/notification/service"
)

// Init wires the notification module and registers its task handler on the
// worker mux.
func Init(e *echo.Echo, db database.IDatabase, mw *middleware.Middleware, mux *asynq.ServeMux) service.NotificationServiceInterface {
	repo := repository.NewNotificationRepository(db)
	svc := service.NewNotificationService(repo)
	ctrl := controller.NewNotificationController(svc)
	rtr := router.NewNotificationRouter(ctrl)
	rtr.Setup(e, mw)

	if mux != nil {
		mux.Handle(constants.TaskTypeInvitationNotify, service.NewInvitationNotifyHandler(svc))
	}

	return svc
}
