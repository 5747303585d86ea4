package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/njeri254/tutor_marketplace/database"
	"github.com/njeri254/tutor_marketplace/models"
)

type CreateCourseRequest struct {
	Title           string  `json:"title" validate:"required,min=3"`
	Description     *string `json:"description"`
	Subject         string  `json:"subject" validate:"required"`
	GradeLevel      string  `json:"grade_level" validate:"required"`
	PricePerSession float64 `json:"price_per_session" validate:"required,gt=0"`
	Currency        string  `json:"currency" validate:"omitempty,len=3"`
	FreeTrialDays   *int    `json:"free_trial_days" validate:"omitempty,min=0"`
	MaxStudents     *int    `json:"max_students" validate:"omitempty,min=1"`
	TotalSessions   *int    `json:"total_sessions" validate:"omitempty,min=1"`
}

func CreateCourse(c *fiber.Ctx) error {
	teacherID, _ := principal(c)

	var req CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	course := models.Course{
		TeacherID:       teacherID,
		Title:           req.Title,
		Description:     req.Description,
		Subject:         req.Subject,
		GradeLevel:      req.GradeLevel,
		PricePerSession: req.PricePerSession,
		TotalSessions:   req.TotalSessions,
	}
	if req.Currency != "" {
		course.Currency = req.Currency
	}
	if req.FreeTrialDays != nil {
		course.FreeTrialDays = *req.FreeTrialDays
	}
	if req.MaxStudents != nil {
		course.MaxStudents = *req.MaxStudents
	}

	if err := database.DB.Create(&course).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create course"})
	}

	return c.Status(fiber.StatusCreated).JSON(course)
}

type UpdateCourseRequest struct {
	Title           *string  `json:"title" validate:"omitempty,min=3"`
	Description     *string  `json:"description"`
	Subject         *string  `json:"subject"`
	GradeLevel      *string  `json:"grade_level"`
	PricePerSession *float64 `json:"price_per_session" validate:"omitempty,gt=0"`
	FreeTrialDays   *int     `json:"free_trial_days" validate:"omitempty,min=0"`
	MaxStudents     *int     `json:"max_students" validate:"omitempty,min=1"`
	TotalSessions   *int     `json:"total_sessions" validate:"omitempty,min=1"`
}

func UpdateCourse(c *fiber.Ctx) error {
	teacherID, _ := principal(c)
	courseID := c.Params("courseId")

	var course models.Course
	if err := database.DB.First(&course, "id = ?", courseID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}
	if course.TeacherID != teacherID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You do not own this course"})
	}

	var req UpdateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = req.Description
	}
	if req.Subject != nil {
		course.Subject = *req.Subject
	}
	if req.GradeLevel != nil {
		course.GradeLevel = *req.GradeLevel
	}
	if req.PricePerSession != nil {
		course.PricePerSession = *req.PricePerSession
	}
	if req.FreeTrialDays != nil {
		course.FreeTrialDays = *req.FreeTrialDays
	}
	if req.MaxStudents != nil {
		course.MaxStudents = *req.MaxStudents
	}
	if req.TotalSessions != nil {
		course.TotalSessions = req.TotalSessions
	}

	if err := database.DB.Save(&course).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update course"})
	}

	return c.JSON(course)
}

func ListCourses(c *fiber.Ctx) error {
	query := database.DB.Preload("Teacher")

	if subject := c.Query("subject"); subject != "" {
		query = query.Where("subject = ?", subject)
	}
	if grade := c.Query("grade_level"); grade != "" {
		query = query.Where("grade_level = ?", grade)
	}
	if teacherID := c.Query("teacher_id"); teacherID != "" {
		if id, err := uuid.Parse(teacherID); err == nil {
			query = query.Where("teacher_id = ?", id)
		}
	}

	var courses []models.Course
	query.Order("created_at desc").Find(&courses)

	return c.JSON(courses)
}

func GetCourse(c *fiber.Ctx) error {
	courseID := c.Params("courseId")

	var course models.Course
	if err := database.DB.Preload("Teacher").First(&course, "id = ?", courseID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}

	return c.JSON(course)
}
