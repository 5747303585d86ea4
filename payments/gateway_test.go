package payments

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func gatewayStub(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	t.Setenv("PAYMENT_GATEWAY_URL", srv.URL)
	t.Setenv("PAYMENT_GATEWAY_API_KEY", "test-key")
	return srv
}

func TestChargeSynchronousPaid(t *testing.T) {
	gatewayStub(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/charges" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", auth)
		}

		var req chargeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Amount != 60 || req.Currency != "USD" {
			t.Errorf("unexpected charge %v %s", req.Amount, req.Currency)
		}

		json.NewEncoder(w).Encode(ChargeResult{ProviderRef: "txn-123", Outcome: "paid"})
	})

	result, err := Charge("pay-1", 60, "USD", "card")
	if err != nil {
		t.Fatal(err)
	}
	if result.Outcome != "paid" || result.ProviderRef != "txn-123" {
		t.Errorf("unexpected result %+v", result)
	}
}

func TestChargeSynchronousFailed(t *testing.T) {
	gatewayStub(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ChargeResult{ProviderRef: "txn-456", Outcome: "failed"})
	})

	result, err := Charge("pay-2", 20, "USD", "card")
	if err != nil {
		t.Fatal(err)
	}
	if result.Outcome != "failed" {
		t.Errorf("outcome = %s, want failed", result.Outcome)
	}
}

func TestChargeQueuedLeavesPending(t *testing.T) {
	gatewayStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	_, err := Charge("pay-3", 20, "USD", "mpesa")
	if !errors.Is(err, ErrGatewayTimeout) {
		t.Errorf("err = %v, want ErrGatewayTimeout", err)
	}
}

func TestChargeUnknownOutcome(t *testing.T) {
	gatewayStub(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ChargeResult{ProviderRef: "txn-789", Outcome: "maybe"})
	})

	if _, err := Charge("pay-4", 20, "USD", "card"); err == nil {
		t.Error("expected an error for an unknown outcome")
	}
}

func TestChargeServerError(t *testing.T) {
	gatewayStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	if _, err := Charge("pay-5", 20, "USD", "card"); err == nil {
		t.Error("expected an error for a 5xx gateway answer")
	}
}
