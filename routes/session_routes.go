package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/njeri254/tutor_marketplace/handlers"
	"github.com/njeri254/tutor_marketplace/middleware"
)

func SessionRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	sessions := api.Group("/sessions", middleware.Protected())
	sessions.Get("/me", handlers.GetMySessions)
	sessions.Post("/:sessionId/advance", handlers.AdvanceSession)
	sessions.Get("/:sessionId/materials", handlers.GetSessionMaterials)

	teacher := api.Group("/teacher/sessions", middleware.Protected(), middleware.TeacherRequired())
	teacher.Get("", handlers.GetTeacherSessions)
	teacher.Post("", handlers.ScheduleSession)
	teacher.Put("/:sessionId", handlers.RescheduleSession)
	teacher.Post("/:sessionId/materials", handlers.UploadSessionMaterial)
}
