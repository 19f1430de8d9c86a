package schedule

import (
	"blend-calendar-api/core/database"
	"blend-calendar-api/core/middleware"
	"blend-calendar-api/modules/schedule/controller"
	"blend-calendar-api/modules/schedule/repository"
	"blend-calendar-api/modules/schedule/router"
	"blend-calendar-api/modules/schedule/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the schedule module and registers routes. The event source
// is the event module's repository.
func Init(e *echo.Echo, db database.IDatabase, mw *middleware.Middleware, events service.EventSource) repository.ScheduleRepositoryInterface {
	repo := repository.NewScheduleRepository(db)
	svc := service.NewScheduleService(repo, events)
	ctrl := controller.NewScheduleController(svc)
	rtr := router.NewScheduleRouter(ctrl)

	rtr.Setup(e, mw)
	return repo
}
