package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/njeri254/tutor_marketplace/handlers"
	"github.com/njeri254/tutor_marketplace/middleware"
)

func RequestRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	requests := api.Group("/requests", middleware.Protected())
	requests.Post("", handlers.SubmitCourseRequest)
	requests.Get("/me", handlers.GetMyRequests)

	teacher := api.Group("/teacher/requests", middleware.Protected(), middleware.TeacherRequired())
	teacher.Get("", handlers.GetTeacherRequests)
	teacher.Post("/:requestId/decide", handlers.DecideCourseRequest)
}
