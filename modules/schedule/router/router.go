package router

import (
	"blend-calendar-api/core/middleware"
	"blend-calendar-api/modules/schedule/controller"

	"github.com/labstack/echo/v4"
)

// ScheduleRouter handles schedule and blend routes
type ScheduleRouter struct {
	ScheduleController *controller.ScheduleController
}

// NewScheduleRouter creates a new router
func NewScheduleRouter(scheduleController *controller.ScheduleController) *ScheduleRouter {
	return &ScheduleRouter{
		ScheduleController: scheduleController,
	}
}

// Setup registers schedule and blend routes
func (r *ScheduleRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")
	privateRoutes := v1.Group("/private")

	scheduleRoutes := privateRoutes.Group("/schedules", mw.AuthMiddleware())
	scheduleRoutes.GET("", r.ScheduleController.GetMySchedules)
	scheduleRoutes.GET("/:id/occurrences", r.ScheduleController.GetScheduleOccurrences)

	blendRoutes := privateRoutes.Group("/blends", mw.AuthMiddleware())
	blendRoutes.POST("", r.ScheduleController.CreateBlend)
	blendRoutes.GET("", r.ScheduleController.GetMyBlends)
	blendRoutes.GET("/:id", r.ScheduleController.GetBlend)
	blendRoutes.GET("/:id/occurrences", r.ScheduleController.GetBlendOccurrences)
	blendRoutes.DELETE("/:id", r.ScheduleController.DeleteBlend)
}
