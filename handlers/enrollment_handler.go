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
)

// resolveTrials applies the lazy trial-expiry rule to any enrollment in
// the list whose deadline has passed, so callers always see the settled
// status.
func resolveTrials(enrollments []models.Enrollment) []models.Enrollment {
	now := time.Now()
	for i := range enrollments {
		e := &enrollments[i]
		if e.Status != models.EnrollmentTrial || now.Before(e.TrialEndsAt) {
			continue
		}
		if resolved, err := services.ApplyTrialExpiry(database.DB, e.ID); err == nil {
			e.Status = resolved.Status
			e.UpdatedAt = resolved.UpdatedAt
		}
	}
	return enrollments
}

func GetMyEnrollments(c *fiber.Ctx) error {
	studentID, _ := principal(c)

	var enrollments []models.Enrollment
	database.DB.Preload("Course").Preload("Teacher").
		Where("student_id = ?", studentID).
		Order("created_at desc").
		Find(&enrollments)

	return c.JSON(resolveTrials(enrollments))
}

func GetTeacherEnrollments(c *fiber.Ctx) error {
	teacherID, _ := principal(c)

	var enrollments []models.Enrollment
	database.DB.Preload("Course").Preload("Student").
		Where("teacher_id = ?", teacherID).
		Order("created_at desc").
		Find(&enrollments)

	return c.JSON(resolveTrials(enrollments))
}

func GetEnrollment(c *fiber.Ctx) error {
	actorID, role := principal(c)
	enrollmentID, err := uuid.Parse(c.Params("enrollmentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid enrollment ID format"})
	}

	var enrollment models.Enrollment
	if err := database.DB.First(&enrollment, "id = ?", enrollmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.Reply(c, apperrors.ErrNotFound)
		}
		return apperrors.Reply(c, err)
	}
	if role != models.RoleAdmin && actorID != enrollment.StudentID && actorID != enrollment.TeacherID {
		return apperrors.Reply(c, apperrors.ErrNotAuthorized)
	}

	if _, err := services.ApplyTrialExpiry(database.DB, enrollmentID); err != nil {
		return apperrors.Reply(c, err)
	}

	if err := database.DB.Preload("Course").Preload("Teacher").Preload("Student").
		First(&enrollment, "id = ?", enrollmentID).Error; err != nil {
		return apperrors.Reply(c, err)
	}

	return c.JSON(&enrollment)
}

// CancelEnrollment terminates an enrollment. The status flip and the
// cancellation of every future session happen in one transaction; past
// sessions and the payment ledger stay as history.
func CancelEnrollment(c *fiber.Ctx) error {
	actorID, role := principal(c)
	enrollmentID, err := uuid.Parse(c.Params("enrollmentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid enrollment ID format"})
	}

	enrollment, err := services.CancelEnrollment(database.DB, enrollmentID, actorID, role)
	if err != nil {
		return apperrors.Reply(c, err)
	}

	return c.JSON(enrollment)
}
