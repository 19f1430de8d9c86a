package availability

import (
	"blend-calendar-api/core/middleware"
	"blend-calendar-api/modules/availability/controller"
	"blend-calendar-api/modules/availability/repository"
	"blend-calendar-api/modules/availability/router"
	"blend-calendar-api/modules/availability/service"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// Init initializes the availability module and registers routes. The returned
// service is handed to the event module as its bucket write path.
func Init(e *echo.Echo, rdb *redis.Client, mw *middleware.Middleware) service.AvailabilityServiceInterface {
	repo := repository.NewAvailabilityRepository(rdb)
	svc := service.NewAvailabilityService(repo)
	ctrl := controller.NewAvailabilityController(svc)
	rtr := router.NewAvailabilityRouter(ctrl)

	rtr.Setup(e, mw)
	return svc
}
