package server

import (
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"blend-calendar-api/core/cache"
	"blend-calendar-api/core/config"
	"blend-calendar-api/core/database"
	"blend-calendar-api/core/logger"
	"blend-calendar-api/core/middleware"
	"blend-calendar-api/core/storage"
	"blend-calendar-api/core/tasks"
	"blend-calendar-api/modules/auth"
	"blend-calendar-api/modules/availability"
	"blend-calendar-api/modules/event"
	"blend-calendar-api/modules/invitation"
	"blend-calendar-api/modules/notification"
	"blend-calendar-api/modules/schedule"
)

// Run loads configuration, connects the backing stores, wires every module
// and starts the HTTP server plus the task worker.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger.Init(cfg.Server.LogLevel, cfg.Server.LogJSON)

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}

	rdb, err := cache.InitRedis(cfg.Redis)
	if err != nil {
		return fmt.Errorf("init redis: %w", err)
	}

	taskClient := tasks.NewClient(cfg.Redis)
	defer taskClient.Close()
	taskServer := tasks.NewServer(cfg.Redis)
	taskMux := asynq.NewServeMux()

	uploader := storage.NewS3Uploader(cfg.S3)

	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RequestID())

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	mw := middleware.NewMiddleware()

	// Module wiring follows dependency order: notifications feed off the
	// worker mux, invitations enqueue tasks, events write availability
	// buckets and invitations, schedules aggregate events, auth creates
	// the personal schedule at registration.
	notification.Init(e, db, mw, taskMux)
	invitationSvc := invitation.Init(e, db, mw, taskClient)
	availabilitySvc := availability.Init(e, rdb, mw)
	eventRepo := event.Init(e, db, mw, availabilitySvc, invitationSvc, uploader)
	scheduleRepo := schedule.Init(e, db, mw, eventRepo)
	auth.Init(e, db, mw, scheduleRepo)

	go func() {
		if err := taskServer.Run(taskMux); err != nil {
			logger.Error("Server:TaskWorker", err)
		}
	}()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server:Start", "addr", addr)
	return e.Start(addr)
}
