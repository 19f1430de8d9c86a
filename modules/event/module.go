package event

import (
	"blend-calendar-api/core/database"
	"blend-calendar-api/core/middleware"
	"blend-calendar-api/core/storage"
	"blend-calendar-api/modules/event/controller"
	"blend-calendar-api/modules/event/repository"
	"blend-calendar-api/modules/event/router"
	"blend-calendar-api/modules/event/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the event module and registers routes. The availability
// recorder and invitation creator are provided by their owning modules.
func Init(
	e *echo.Echo,
	db database.IDatabase,
	mw *middleware.Middleware,
	availability service.AvailabilityRecorder,
	invitations service.InvitationCreator,
	uploader storage.Uploader,
) repository.EventRepositoryInterface {
	repo := repository.NewEventRepository(db)
	svc := service.NewEventService(repo, availability, invitations, uploader)
	ctrl := controller.NewEventController(svc)
	rtr := router.NewEventRouter(ctrl)

	rtr.Setup(e, mw)
	return repo
}
