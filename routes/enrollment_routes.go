package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/njeri254/tutor_marketplace/handlers"
	"github.com/njeri254/tutor_marketplace/middleware"
)

func EnrollmentRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	enrollments := api.Group("/enrollments", middleware.Protected())
	enrollments.Get("/me", handlers.GetMyEnrollments)
	enrollments.Get("/:enrollmentId", handlers.GetEnrollment)
	enrollments.Post("/:enrollmentId/cancel", handlers.CancelEnrollment)

	teacher := api.Group("/teacher/enrollments", middleware.Protected(), middleware.TeacherRequired())
	teacher.Get("", handlers.GetTeacherEnrollments)
}
