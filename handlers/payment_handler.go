package handlers

import (
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/njeri254/tutor_marketplace/apperrors"
	config "github.com/njeri254/tutor_marketplace/configs"
	"github.com/njeri254/tutor_marketplace/database"
	"github.com/njeri254/tutor_marketplace/models"
	"github.com/njeri254/tutor_marketplace/payments"
	"github.com/njeri254/tutor_marketplace/services"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InitiatePaymentRequest struct {
	EnrollmentID string  `json:"enrollment_id" validate:"required,uuid"`
	Amount       float64 `json:"amount" validate:"required"`
	SessionCount int     `json:"session_count" validate:"required,min=1"`
	Method       string  `json:"method" validate:"required"`
}

// InitiatePayment records one charge attempt against a live enrollment
// and hands it to the gateway. The amount must reconcile exactly to the
// course unit price times the sessions covered. A synchronous gateway
// answer settles immediately; a timeout leaves the payment pending for
// the settlement webhook.
func InitiatePayment(c *fiber.Ctx) error {
	studentID, _ := principal(c)

	var req InitiatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	enrollmentID, _ := uuid.Parse(req.EnrollmentID)

	// Settle a lapsed trial before taking money against it.
	if _, err := services.ApplyTrialExpiry(database.DB, enrollmentID); err != nil {
		return apperrors.Reply(c, err)
	}

	var payment models.Payment
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var enrollment models.Enrollment
		if err := tx.Preload("Course").First(&enrollment, "id = ?", enrollmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return err
		}

		if enrollment.StudentID != studentID {
			return apperrors.ErrNotAuthorized
		}
		if !enrollment.Live() {
			return apperrors.InvalidState("enrollment", enrollment.Status)
		}
		if !models.ReconcileAmount(enrollment.Course.PricePerSession, req.SessionCount, req.Amount) {
			return apperrors.ErrInvalidAmount
		}

		payment = models.Payment{
			EnrollmentID: enrollment.ID,
			StudentID:    enrollment.StudentID,
			TeacherID:    enrollment.TeacherID,
			Amount:       req.Amount,
			Currency:     enrollment.Course.Currency,
			SessionCount: req.SessionCount,
			Status:       models.PaymentPending,
			Provider:     req.Method,
		}
		return tx.Create(&payment).Error
	})
	if err != nil {
		return apperrors.Reply(c, err)
	}

	result, err := payments.Charge(payment.ID.String(), payment.Amount, payment.Currency, req.Method)
	switch {
	case errors.Is(err, payments.ErrGatewayTimeout):
		// Outcome unknown; the webhook will settle it.
		return c.Status(fiber.StatusAccepted).JSON(payment)
	case err != nil:
		log.Printf("🔥 Gateway charge failed for payment %s: %v", payment.ID, err)
		if settled, serr := services.Settle(database.DB, payment.ID, models.PaymentFailed, nil); serr == nil {
			payment = *settled
		}
		return c.Status(fiber.StatusCreated).JSON(payment)
	}

	settled, err := services.Settle(database.DB, payment.ID, result.Outcome, &result.ProviderRef)
	if err != nil {
		log.Printf("🔥 Failed to settle payment %s after sync charge: %v", payment.ID, err)
		return c.Status(fiber.StatusCreated).JSON(payment)
	}

	return c.Status(fiber.StatusCreated).JSON(settled)
}

type GatewayWebhookPayload struct {
	PaymentID   string `json:"payment_id"`
	Outcome     string `json:"outcome"`
	ProviderRef string `json:"provider_ref"`
}

// HandleGatewayWebhook consumes the gateway's settlement callback. The
// gateway delivers at least once, so replays of an already-applied
// outcome are acknowledged without effect.
func HandleGatewayWebhook(c *fiber.Ctx) error {
	var payload GatewayWebhookPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse webhook payload"})
	}

	paymentID, err := uuid.Parse(payload.PaymentID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payment ID in webhook"})
	}

	log.Printf("Received settlement webhook for payment %s: %s", payload.PaymentID, payload.Outcome)

	var ref *string
	if payload.ProviderRef != "" {
		ref = &payload.ProviderRef
	}
	if _, err := services.Settle(database.DB, paymentID, payload.Outcome, ref); err != nil {
		return apperrors.Reply(c, err)
	}

	return c.JSON(fiber.Map{"message": "Webhook processed successfully"})
}

// RefundPayment moves a paid payment to refunded. Admins may always
// refund; the paying student only within the configured window. The
// enrollment status is deliberately left alone.
func RefundPayment(c *fiber.Ctx) error {
	actorID, role := principal(c)
	paymentID, err := uuid.Parse(c.Params("paymentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payment ID format"})
	}

	windowDays, err := strconv.Atoi(config.ConfigOr("REFUND_WINDOW_DAYS", "14"))
	if err != nil || windowDays <= 0 {
		windowDays = 14
	}
	window := time.Duration(windowDays) * 24 * time.Hour

	var payment models.Payment
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&payment, "id = ?", paymentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return err
		}

		if !models.PaymentCanTransition(payment.Status, models.PaymentRefunded) {
			return apperrors.InvalidState("payment", payment.Status)
		}
		if !payment.RefundableBy(actorID, role, time.Now(), window) {
			return apperrors.ErrNotAuthorized
		}

		payment.Status = models.PaymentRefunded
		return tx.Save(&payment).Error
	})
	if err != nil {
		return apperrors.Reply(c, err)
	}

	return c.JSON(payment)
}

func GetMyPayments(c *fiber.Ctx) error {
	studentID, _ := principal(c)

	var list []models.Payment
	database.DB.Where("student_id = ?", studentID).
		Order("created_at desc").
		Find(&list)

	return c.JSON(list)
}
