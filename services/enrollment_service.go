package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/njeri254/tutor_marketplace/apperrors"
	"github.com/njeri254/tutor_marketplace/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PaidSessionCoverage sums the sessions covered by settled payments of an
// enrollment. Pending, failed and refunded payments do not count.
func PaidSessionCoverage(tx *gorm.DB, enrollmentID uuid.UUID) (int, error) {
	var covered int64
	err := tx.Model(&models.Payment{}).
		Where("enrollment_id = ? AND status = ?", enrollmentID, models.PaymentPaid).
		Select("COALESCE(SUM(session_count), 0)").
		Row().Scan(&covered)
	return int(covered), err
}

// LiveEnrollmentCount counts trial and active enrollments of a course.
// Callers enforcing the capacity invariant must hold the course row lock.
func LiveEnrollmentCount(tx *gorm.DB, courseID uuid.UUID) (int64, error) {
	var count int64
	err := tx.Model(&models.Enrollment{}).
		Where("course_id = ? AND status IN ?", courseID,
			[]string{models.EnrollmentTrial, models.EnrollmentActive}).
		Count(&count).Error
	return count, err
}

// ApplyTrialExpiry evaluates the lazy trial rule for one enrollment and
// persists the transition if one is due. It is idempotent and safe to run
// on every read as well as from the periodic sweep.
func ApplyTrialExpiry(db *gorm.DB, enrollmentID uuid.UUID) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&enrollment, "id = ?", enrollmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return err
		}

		covered, err := PaidSessionCoverage(tx, enrollment.ID)
		if err != nil {
			return err
		}

		next := enrollment.TrialOutcome(time.Now(), covered)
		if next == enrollment.Status {
			return nil
		}
		enrollment.Status = next
		return tx.Save(&enrollment).Error
	})
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// CancelEnrollment flips the enrollment to cancelled and, in the same
// transaction, cancels every future session under it. Past sessions and
// the payment ledger are left untouched.
func CancelEnrollment(db *gorm.DB, enrollmentID, actorID uuid.UUID, role string) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&enrollment, "id = ?", enrollmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return err
		}

		if !enrollment.CancellableBy(actorID, role) {
			return apperrors.ErrNotAuthorized
		}
		if !models.EnrollmentCanTransition(enrollment.Status, models.EnrollmentCancelled) {
			return apperrors.InvalidState("enrollment", enrollment.Status)
		}

		enrollment.Status = models.EnrollmentCancelled
		if err := tx.Save(&enrollment).Error; err != nil {
			return err
		}

		var sessions []models.Session
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("enrollment_id = ?", enrollment.ID).
			Find(&sessions).Error; err != nil {
			return err
		}

		now := time.Now()
		swept := make([]uuid.UUID, 0, len(sessions))
		for i := range sessions {
			if sessions[i].SweptOnCancel(now) {
				swept = append(swept, sessions[i].ID)
			}
		}
		if len(swept) == 0 {
			return nil
		}

		return tx.Model(&models.Session{}).
			Where("id IN ?", swept).
			Update("status", models.SessionCancelled).Error
	})
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// RecordSessionCompletion bumps the enrollment's completed-session count
// and applies the course completion policy. Must run inside the caller's
// transaction so the session flip and the counter move together.
func RecordSessionCompletion(tx *gorm.DB, enrollmentID uuid.UUID) error {
	var enrollment models.Enrollment
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Course").
		First(&enrollment, "id = ?", enrollmentID).Error; err != nil {
		return err
	}

	enrollment.SessionsCompleted++

	total := enrollment.Course.TotalSessions
	if total != nil && enrollment.SessionsCompleted >= *total &&
		models.EnrollmentCanTransition(enrollment.Status, models.EnrollmentCompleted) {
		enrollment.Status = models.EnrollmentCompleted
	}

	return tx.Omit("Course").Save(&enrollment).Error
}
