package auth

import (
	"github.com/labstack/echo/v4"

	"blend-calendar-api/core/database"
	"blend-calendar-api/core/middleware"
	"blend-calendar-api/modules/auth/controller"
	"blend-calendar-api/modules/auth/repository"
	"blend-calendar-api/modules/auth/router"
	"blend-calendar-api/modules/auth/service"
	scheduleRepository "blend-calendar-api/modules/schedule/repository"
)

// Init wires the auth module. Registration needs the schedule repository so
// every new user starts with a personal schedule.
func Init(e *echo.Echo, db database.IDatabase, mw *middleware.Middleware, schedules scheduleRepository.ScheduleRepositoryInterface) service.AuthServiceInterface {
	repo := repository.NewUserRepository(db)
	svc := service.NewAuthService(repo, schedules)
	ctrl := controller.NewAuthController(svc)
	rtr := router.NewAuthRouter(ctrl)
	rtr.Setup(e, mw)
	return svc
}
