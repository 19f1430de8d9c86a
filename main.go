package main

import (
	"blend-calendar-api/core/logger"
	"blend-calendar-api/core/server"

	_ "blend-calendar-api/docs" // Swagger docs
)

// @title BlendCal API
// @version 1.0
// @description API backend for BlendCal, a shared social calendar

// @contact.name API Support
// @contact.email support@blendcal.app

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:7070
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Example: "Bearer {token}"

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", err)
	}
}
