package models

import (
	"math"
	"time"

	"github.com/google/uuid"
)

const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentFailed   = "failed"
	PaymentRefunded = "refunded"
)

// Payment is one charge attempt against an enrollment. SessionCount is
// the number of sessions the charge covers; SessionID links a payment
// tied to a single session when the caller provides one.
type Payment struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	EnrollmentID uuid.UUID  `gorm:"not null;index" json:"enrollment_id"`
	SessionID    *uuid.UUID `json:"session_id"`
	StudentID    uuid.UUID  `gorm:"not null" json:"student_id"`
	TeacherID    uuid.UUID  `gorm:"not null" json:"teacher_id"`

	Amount       float64 `gorm:"type:numeric(10,2);not null" json:"amount"`
	Currency     string  `gorm:"size:3;not null;default:'USD'" json:"currency"`
	SessionCount int     `gorm:"not null;default:1" json:"session_count"`
	Status       string  `gorm:"size:20;not null;default:'pending'" json:"status"`
	Provider     string  `gorm:"size:50;not null" json:"provider"`
	ProviderRef  *string `gorm:"size:255;unique" json:"provider_ref"`

	Enrollment Enrollment `gorm:"foreignkey:EnrollmentID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

var paymentTransitions = map[[2]string]bool{
	{PaymentPending, PaymentPaid}:   true,
	{PaymentPending, PaymentFailed}: true,
	{PaymentPaid, PaymentRefunded}:  true, // refund only from paid
}

// PaymentCanTransition reports whether the status change is allowed.
// Failed and refunded are terminal.
func PaymentCanTransition(from, to string) bool {
	return paymentTransitions[[2]string{from, to}]
}

// ReconcileAmount checks that the charged amount matches the course unit
// price times the number of sessions covered.
func ReconcileAmount(pricePerSession float64, sessionCount int, amount float64) bool {
	if amount <= 0 || sessionCount <= 0 {
		return false
	}
	return math.Abs(pricePerSession*float64(sessionCount)-amount) < 0.005
}

// ApplySettlement records a gateway outcome on the payment. It returns
// applied=false, ok=true when the payment already carries the outcome,
// so a replayed notification never takes effect twice, and ok=false
// when the state machine forbids the move.
func (p *Payment) ApplySettlement(outcome string) (applied, ok bool) {
	if p.Status == outcome {
		return false, true
	}
	if !PaymentCanTransition(p.Status, outcome) {
		return false, false
	}
	p.Status = outcome
	return true, true
}

// RefundableBy reports whether the actor may refund a paid payment.
// Admins always can; the paying student only within the refund window.
func (p *Payment) RefundableBy(actorID uuid.UUID, role string, now time.Time, window time.Duration) bool {
	if role == RoleAdmin {
		return true
	}
	return actorID == p.StudentID && now.Sub(p.CreatedAt) <= window
}
