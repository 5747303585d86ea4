package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/njeri254/tutor_marketplace/handlers"
	"github.com/njeri254/tutor_marketplace/middleware"
)

func StatsRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/stats/me", middleware.Protected(), handlers.GetMyStats)
	api.Get("/teacher/stats", middleware.Protected(), middleware.TeacherRequired(), handlers.GetTeacherStats)
}
