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

type ScheduleSessionRequest struct {
	CourseID        string  `json:"course_id" validate:"required,uuid"`
	StudentID       string  `json:"student_id" validate:"required,uuid"`
	ScheduledAt     string  `json:"scheduled_at" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	DurationMinutes int     `json:"duration_minutes" validate:"required,min=15,max=240"`
	MeetingPlatform *string `json:"meeting_platform"`
	MeetingURL      *string `json:"meeting_url"`
	MeetingID       *string `json:"meeting_id"`
	MeetingPassword *string `json:"meeting_password"`
}

// hasOverlap reports whether the teacher already has a non-cancelled
// session colliding with the window. Callers must hold the teacher row
// lock so two concurrent schedules cannot both pass the check.
func hasOverlap(tx *gorm.DB, teacherID uuid.UUID, startAt time.Time, durationMinutes int, excludeID *uuid.UUID) (bool, error) {
	end := startAt.Add(time.Duration(durationMinutes) * time.Minute)
	query := tx.Model(&models.Session{}).
		Where("teacher_id = ? AND status <> ?", teacherID, models.SessionCancelled).
		Where("scheduled_at < ? AND scheduled_at + make_interval(mins => duration_minutes) > ?", end, startAt)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ScheduleSession books a meeting under a live enrollment. A lapsed
// trial is settled first so no session can be created against it.
func ScheduleSession(c *fiber.Ctx) error {
	teacherID, _ := principal(c)

	var req ScheduleSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	courseID, _ := uuid.Parse(req.CourseID)
	studentID, _ := uuid.Parse(req.StudentID)
	scheduledAt, _ := time.Parse(time.RFC3339, req.ScheduledAt)

	if scheduledAt.Before(time.Now()) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot schedule a session in the past"})
	}

	var session models.Session
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var enrollment models.Enrollment
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&enrollment, "student_id = ? AND course_id = ? AND status IN ?",
				studentID, courseID,
				[]string{models.EnrollmentTrial, models.EnrollmentActive}).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.InvalidState("enrollment", "missing or terminal")
			}
			return err
		}
		if enrollment.TeacherID != teacherID {
			return apperrors.ErrNotAuthorized
		}

		// Lapsed trial: settle it here rather than booking against it.
		covered, err := services.PaidSessionCoverage(tx, enrollment.ID)
		if err != nil {
			return err
		}
		next := enrollment.TrialOutcome(time.Now(), covered)
		if next != enrollment.Status {
			enrollment.Status = next
			if err := tx.Save(&enrollment).Error; err != nil {
				return err
			}
		}
		if !enrollment.Live() {
			return apperrors.InvalidState("enrollment", enrollment.Status)
		}

		// Serialize schedule writes per teacher before the overlap check.
		var teacher models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&teacher, "id = ?", teacherID).Error; err != nil {
			return err
		}

		conflict, err := hasOverlap(tx, teacherID, scheduledAt, req.DurationMinutes, nil)
		if err != nil {
			return err
		}
		if conflict {
			return apperrors.ErrSchedulingConflict
		}

		session = models.Session{
			EnrollmentID:    enrollment.ID,
			CourseID:        courseID,
			TeacherID:       teacherID,
			StudentID:       studentID,
			ScheduledAt:     scheduledAt,
			DurationMinutes: req.DurationMinutes,
			Status:          models.SessionScheduled,
			MeetingPlatform: req.MeetingPlatform,
			MeetingURL:      req.MeetingURL,
			MeetingID:       req.MeetingID,
			MeetingPassword: req.MeetingPassword,
		}
		return tx.Create(&session).Error
	})
	if err != nil {
		return apperrors.Reply(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(session)
}

type AdvanceSessionRequest struct {
	Transition string `json:"transition" validate:"required,oneof=start complete cancel"`
}

// AdvanceSession drives the session state machine. Starting is only
// allowed once the scheduled time has arrived; completing a session also
// bumps the enrollment's completed count in the same transaction.
func AdvanceSession(c *fiber.Ctx) error {
	actorID, role := principal(c)
	sessionID, err := uuid.Parse(c.Params("sessionId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session ID format"})
	}

	var req AdvanceSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var session models.Session
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&session, "id = ?", sessionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return err
		}

		if role != models.RoleAdmin && actorID != session.TeacherID && actorID != session.StudentID {
			return apperrors.ErrNotAuthorized
		}

		switch req.Transition {
		case "start":
			if !models.SessionCanTransition(session.Status, models.SessionStarted) {
				return apperrors.InvalidState("session", session.Status)
			}
			if time.Now().Before(session.ScheduledAt) {
				return apperrors.InvalidState("session", "not yet due")
			}
			session.Status = models.SessionStarted

		case "complete":
			if !models.SessionCanTransition(session.Status, models.SessionCompleted) {
				return apperrors.InvalidState("session", session.Status)
			}
			session.Status = models.SessionCompleted
			if err := services.RecordSessionCompletion(tx, session.EnrollmentID); err != nil {
				return err
			}

		case "cancel":
			if !models.SessionCanTransition(session.Status, models.SessionCancelled) {
				return apperrors.InvalidState("session", session.Status)
			}
			session.Status = models.SessionCancelled
		}

		return tx.Save(&session).Error
	})
	if err != nil {
		return apperrors.Reply(c, err)
	}

	return c.JSON(session)
}

type RescheduleSessionRequest struct {
	ScheduledAt     string `json:"scheduled_at" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	DurationMinutes *int   `json:"duration_minutes" validate:"omitempty,min=15,max=240"`
}

// RescheduleSession moves a scheduled session to a new slot, re-running
// the overlap check under the teacher lock.
func RescheduleSession(c *fiber.Ctx) error {
	teacherID, _ := principal(c)
	sessionID, err := uuid.Parse(c.Params("sessionId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session ID format"})
	}

	var req RescheduleSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	scheduledAt, _ := time.Parse(time.RFC3339, req.ScheduledAt)
	if scheduledAt.Before(time.Now()) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot reschedule into the past"})
	}

	var session models.Session
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&session, "id = ?", sessionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return err
		}

		if session.TeacherID != teacherID {
			return apperrors.ErrNotAuthorized
		}
		if session.Status != models.SessionScheduled {
			return apperrors.InvalidState("session", session.Status)
		}

		duration := session.DurationMinutes
		if req.DurationMinutes != nil {
			duration = *req.DurationMinutes
		}

		var teacher models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&teacher, "id = ?", teacherID).Error; err != nil {
			return err
		}

		conflict, err := hasOverlap(tx, teacherID, scheduledAt, duration, &session.ID)
		if err != nil {
			return err
		}
		if conflict {
			return apperrors.ErrSchedulingConflict
		}

		session.ScheduledAt = scheduledAt
		session.DurationMinutes = duration
		return tx.Save(&session).Error
	})
	if err != nil {
		return apperrors.Reply(c, err)
	}

	return c.JSON(session)
}

func GetMySessions(c *fiber.Ctx) error {
	studentID, _ := principal(c)

	var sessions []models.Session
	database.DB.Preload("Teacher").Preload("Materials").
		Where("student_id = ?", studentID).
		Order("scheduled_at desc").
		Find(&sessions)

	return c.JSON(sessions)
}

func GetTeacherSessions(c *fiber.Ctx) error {
	teacherID, _ := principal(c)

	query := database.DB.Preload("Student").Preload("Materials").
		Where("teacher_id = ?", teacherID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var sessions []models.Session
	query.Order("scheduled_at desc").Find(&sessions)

	return c.JSON(sessions)
}
