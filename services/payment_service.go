package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/njeri254/tutor_marketplace/apperrors"
	"github.com/njeri254/tutor_marketplace/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Settle applies a gateway settlement outcome to a payment. It is
// idempotent under at-least-once delivery: replaying a settlement with
// the outcome the payment already has is a no-op, while a conflicting
// outcome on a terminal payment fails InvalidState. A paid settlement
// credits the enrollment and converts a trial early.
func Settle(db *gorm.DB, paymentID uuid.UUID, outcome string, providerRef *string) (*models.Payment, error) {
	if outcome != models.PaymentPaid && outcome != models.PaymentFailed {
		return nil, apperrors.InvalidState("settlement outcome", outcome)
	}

	var payment models.Payment
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&payment, "id = ?", paymentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return err
		}

		applied, ok := payment.ApplySettlement(outcome)
		if !ok {
			return apperrors.InvalidState("payment", payment.Status)
		}
		if !applied {
			// Duplicate notification, already applied.
			return nil
		}

		if providerRef != nil && *providerRef != "" {
			payment.ProviderRef = providerRef
		}
		if err := tx.Save(&payment).Error; err != nil {
			return err
		}

		if outcome != models.PaymentPaid {
			return nil
		}

		var enrollment models.Enrollment
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&enrollment, "id = ?", payment.EnrollmentID).Error; err != nil {
			return err
		}

		enrollment.TotalPaid += payment.Amount
		// Early conversion: payment before the trial deadline activates
		// the enrollment immediately.
		if models.EnrollmentCanTransition(enrollment.Status, models.EnrollmentActive) {
			enrollment.Status = models.EnrollmentActive
		}
		return tx.Save(&enrollment).Error
	})
	if err != nil {
		return nil, err
	}
	return &payment, nil
}
