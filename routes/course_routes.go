package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/njeri254/tutor_marketplace/handlers"
	"github.com/njeri254/tutor_marketplace/middleware"
)

func CourseRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/courses", handlers.ListCourses)
	api.Get("/courses/:courseId", handlers.GetCourse)

	teacher := api.Group("/teacher/courses", middleware.Protected(), middleware.TeacherRequired())
	teacher.Post("", handlers.CreateCourse)
	teacher.Put("/:courseId", handlers.UpdateCourse)
}
