package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/njeri254/tutor_marketplace/apperrors"
	"github.com/njeri254/tutor_marketplace/database"
	"github.com/njeri254/tutor_marketplace/models"
	"github.com/njeri254/tutor_marketplace/services"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubmitRequestRequest struct {
	CourseID string `json:"course_id" validate:"required,uuid"`
	Message  string `json:"message" validate:"max=2000"`
}

// SubmitCourseRequest registers a student's interest in a course. At most
// one non-rejected request per (student, course) may exist, and a course
// at capacity refuses new requests up front.
func SubmitCourseRequest(c *fiber.Ctx) error {
	studentID, _ := principal(c)

	var req SubmitRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	courseID, _ := uuid.Parse(req.CourseID)

	var request models.CourseRequest
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var course models.Course
		if err := tx.First(&course, "id = ?", courseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return err
		}

		var open int64
		if err := tx.Model(&models.CourseRequest{}).
			Where("student_id = ? AND course_id = ? AND status IN ?", studentID, courseID,
				[]string{models.RequestPending, models.RequestAccepted}).
			Count(&open).Error; err != nil {
			return err
		}
		if open > 0 {
			return apperrors.ErrDuplicateRequest
		}

		var live int64
		if err := tx.Model(&models.Enrollment{}).
			Where("student_id = ? AND course_id = ? AND status IN ?", studentID, courseID,
				[]string{models.EnrollmentTrial, models.EnrollmentActive}).
			Count(&live).Error; err != nil {
			return err
		}
		if live > 0 {
			return apperrors.ErrDuplicateRequest
		}

		count, err := services.LiveEnrollmentCount(tx, courseID)
		if err != nil {
			return err
		}
		if course.AtCapacity(count) {
			return apperrors.ErrCapacityExceeded
		}

		request = models.CourseRequest{
			StudentID: studentID,
			TeacherID: course.TeacherID,
			CourseID:  courseID,
			Message:   req.Message,
			Status:    models.RequestPending,
		}
		if err := tx.Create(&request).Error; err != nil {
			// The partial unique index on open requests catches the race
			// where two submits pass the count check concurrently.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperrors.ErrDuplicateRequest
			}
			return err
		}
		return nil
	})
	if err != nil {
		return apperrors.Reply(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(request)
}

type DecideRequestRequest struct {
	Decision string `json:"decision" validate:"required,oneof=accept reject"`
}

// DecideCourseRequest lets the owning teacher accept or reject a pending
// request. Acceptance atomically creates the trial enrollment: the course
// row is locked while capacity is re-checked, and the partial unique
// index on live enrollments backstops the double-accept race.
func DecideCourseRequest(c *fiber.Ctx) error {
	teacherID, _ := principal(c)
	requestID, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request ID format"})
	}

	var req DecideRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var request models.CourseRequest
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&request, "id = ?", requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return err
		}

		if request.TeacherID != teacherID {
			return apperrors.ErrNotAuthorized
		}
		if request.Decided() {
			return apperrors.InvalidState("request", request.Status)
		}

		if req.Decision == "reject" {
			request.Status = models.RequestRejected
			return tx.Save(&request).Error
		}

		var course models.Course
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&course, "id = ?", request.CourseID).Error; err != nil {
			return err
		}

		count, err := services.LiveEnrollmentCount(tx, course.ID)
		if err != nil {
			return err
		}
		if course.AtCapacity(count) {
			return apperrors.ErrCapacityExceeded
		}

		now := time.Now()
		enrollment := models.Enrollment{
			StudentID:   request.StudentID,
			TeacherID:   request.TeacherID,
			CourseID:    request.CourseID,
			Status:      models.EnrollmentTrial,
			TrialEndsAt: course.TrialEnd(now),
		}
		if err := tx.Create(&enrollment).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperrors.ErrDuplicateRequest
			}
			return err
		}

		request.Status = models.RequestAccepted
		return tx.Save(&request).Error
	})
	if err != nil {
		return apperrors.Reply(c, err)
	}

	return c.JSON(request)
}

func GetMyRequests(c *fiber.Ctx) error {
	studentID, _ := principal(c)

	var requests []models.CourseRequest
	database.DB.Preload("Course").Preload("Teacher").
		Where("student_id = ?", studentID).
		Order("created_at desc").
		Find(&requests)

	return c.JSON(requests)
}

func GetTeacherRequests(c *fiber.Ctx) error {
	teacherID, _ := principal(c)

	query := database.DB.Preload("Course").Preload("Student").
		Where("teacher_id = ?", teacherID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var requests []models.CourseRequest
	query.Order("created_at desc").Find(&requests)

	return c.JSON(requests)
}
