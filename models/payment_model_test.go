package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestPaymentTransitions(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{PaymentPending, PaymentPaid, true},
		{PaymentPending, PaymentFailed, true},
		{PaymentPaid, PaymentRefunded, true},
		{PaymentPending, PaymentRefunded, false},
		{PaymentFailed, PaymentRefunded, false},
		{PaymentFailed, PaymentPaid, false},
		{PaymentRefunded, PaymentPaid, false},
		{PaymentPaid, PaymentPending, false},
	}

	for _, tc := range cases {
		if got := PaymentCanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("PaymentCanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestReconcileAmount(t *testing.T) {
	cases := []struct {
		name   string
		price  float64
		count  int
		amount float64
		want   bool
	}{
		{"exact single session", 20, 1, 20, true},
		{"exact multi session", 20, 3, 60, true},
		{"fractional price", 19.99, 2, 39.98, true},
		{"wrong total", 20, 3, 50, false},
		{"zero amount", 20, 1, 0, false},
		{"negative amount", 20, 1, -20, false},
		{"zero sessions", 20, 0, 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ReconcileAmount(tc.price, tc.count, tc.amount); got != tc.want {
				t.Errorf("ReconcileAmount(%v, %d, %v) = %v, want %v", tc.price, tc.count, tc.amount, got, tc.want)
			}
		})
	}
}

func TestApplySettlement(t *testing.T) {
	cases := []struct {
		name        string
		status      string
		outcome     string
		wantApplied bool
		wantOK      bool
		wantStatus  string
	}{
		{"pending to paid", PaymentPending, PaymentPaid, true, true, PaymentPaid},
		{"pending to failed", PaymentPending, PaymentFailed, true, true, PaymentFailed},
		{"paid replayed", PaymentPaid, PaymentPaid, false, true, PaymentPaid},
		{"failed replayed", PaymentFailed, PaymentFailed, false, true, PaymentFailed},
		{"paid then failed", PaymentPaid, PaymentFailed, false, false, PaymentPaid},
		{"failed then paid", PaymentFailed, PaymentPaid, false, false, PaymentFailed},
		{"refunded then paid", PaymentRefunded, PaymentPaid, false, false, PaymentRefunded},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := Payment{Status: tc.status}
			applied, ok := p.ApplySettlement(tc.outcome)
			if applied != tc.wantApplied || ok != tc.wantOK {
				t.Errorf("ApplySettlement(%s) = (%v, %v), want (%v, %v)",
					tc.outcome, applied, ok, tc.wantApplied, tc.wantOK)
			}
			if p.Status != tc.wantStatus {
				t.Errorf("status after ApplySettlement(%s) = %s, want %s", tc.outcome, p.Status, tc.wantStatus)
			}
		})
	}
}

// A paid settlement delivered twice must credit the enrollment once: the
// first delivery reports applied, every replay does not.
func TestApplySettlementCreditsOnce(t *testing.T) {
	p := Payment{Status: PaymentPending, Amount: 60}

	var credited float64
	for i := 0; i < 3; i++ {
		if applied, ok := p.ApplySettlement(PaymentPaid); applied && ok {
			credited += p.Amount
		}
	}

	if credited != 60 {
		t.Errorf("credited %v after three deliveries, want 60", credited)
	}
	if p.Status != PaymentPaid {
		t.Errorf("status = %s, want %s", p.Status, PaymentPaid)
	}
}

func TestRefundableBy(t *testing.T) {
	student := uuid.New()
	stranger := uuid.New()
	now := time.Now()
	window := 14 * 24 * time.Hour

	p := Payment{StudentID: student, CreatedAt: now.Add(-7 * 24 * time.Hour)}

	if !p.RefundableBy(stranger, RoleAdmin, now, window) {
		t.Error("admin should always be able to refund")
	}
	if !p.RefundableBy(student, RoleStudent, now, window) {
		t.Error("paying student should be able to refund inside the window")
	}
	if p.RefundableBy(stranger, RoleStudent, now, window) {
		t.Error("another student must not be able to refund")
	}

	old := Payment{StudentID: student, CreatedAt: now.Add(-30 * 24 * time.Hour)}
	if old.RefundableBy(student, RoleStudent, now, window) {
		t.Error("student must not be able to refund outside the window")
	}
	if !old.RefundableBy(stranger, RoleAdmin, now, window) {
		t.Error("window must not apply to admins")
	}
}
