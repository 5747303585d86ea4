package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/njeri254/tutor_marketplace/database"
	"github.com/njeri254/tutor_marketplace/models"
)

// GetTeacherStats is a read-only dashboard projection over the lifecycle
// entities. It derives everything from persisted state.
func GetTeacherStats(c *fiber.Ctx) error {
	teacherID, _ := principal(c)

	var pendingRequests int64
	database.DB.Model(&models.CourseRequest{}).
		Where("teacher_id = ? AND status = ?", teacherID, models.RequestPending).
		Count(&pendingRequests)

	var liveEnrollments int64
	database.DB.Model(&models.Enrollment{}).
		Where("teacher_id = ? AND status IN ?", teacherID,
			[]string{models.EnrollmentTrial, models.EnrollmentActive}).
		Count(&liveEnrollments)

	var upcomingSessions int64
	database.DB.Model(&models.Session{}).
		Where("teacher_id = ? AND status = ?", teacherID, models.SessionScheduled).
		Count(&upcomingSessions)

	var completedSessions int64
	database.DB.Model(&models.Session{}).
		Where("teacher_id = ? AND status = ?", teacherID, models.SessionCompleted).
		Count(&completedSessions)

	var totalEarned float64
	database.DB.Model(&models.Payment{}).
		Where("teacher_id = ? AND status = ?", teacherID, models.PaymentPaid).
		Select("COALESCE(SUM(amount), 0)").
		Row().Scan(&totalEarned)

	return c.JSON(fiber.Map{
		"pending_requests":   pendingRequests,
		"live_enrollments":   liveEnrollments,
		"upcoming_sessions":  upcomingSessions,
		"completed_sessions": completedSessions,
		"total_earned":       totalEarned,
	})
}

func GetMyStats(c *fiber.Ctx) error {
	studentID, _ := principal(c)

	var liveEnrollments int64
	database.DB.Model(&models.Enrollment{}).
		Where("student_id = ? AND status IN ?", studentID,
			[]string{models.EnrollmentTrial, models.EnrollmentActive}).
		Count(&liveEnrollments)

	var completedSessions int64
	database.DB.Model(&models.Session{}).
		Where("student_id = ? AND status = ?", studentID, models.SessionCompleted).
		Count(&completedSessions)

	var totalPaid float64
	database.DB.Model(&models.Payment{}).
		Where("student_id = ? AND status = ?", studentID, models.PaymentPaid).
		Select("COALESCE(SUM(amount), 0)").
		Row().Scan(&totalPaid)

	return c.JSON(fiber.Map{
		"live_enrollments":   liveEnrollments,
		"completed_sessions": completedSessions,
		"total_paid":         totalPaid,
	})
}
