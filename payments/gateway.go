package payments

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	config "github.com/njeri254/tutor_marketplace/configs"
)

// ChargeResult is the gateway's settlement report for one charge attempt.
// Outcome is "paid" or "failed"; an empty result with ErrGatewayTimeout
// means the charge is still pending and will settle via the webhook.
type ChargeResult struct {
	ProviderRef string `json:"provider_ref"`
	Outcome     string `json:"outcome"`
}

// ErrGatewayTimeout marks a charge whose outcome is not yet known. The
// payment stays pending until the gateway's settlement callback arrives.
var ErrGatewayTimeout = errors.New("payment gateway did not answer in time")

type chargeRequest struct {
	PaymentID string  `json:"payment_id"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Method    string  `json:"method"`
}

var httpClient = &http.Client{Timeout: 15 * time.Second}

// Charge submits a charge to the external gateway. The gateway settles
// either synchronously in the response body or later through the
// /payments/webhook callback; callers must treat both paths as
// at-least-once.
func Charge(paymentID string, amount float64, currency, method string) (*ChargeResult, error) {
	apiBase := config.Config("PAYMENT_GATEWAY_URL")
	apiKey := config.Config("PAYMENT_GATEWAY_API_KEY")

	body, err := json.Marshal(chargeRequest{
		PaymentID: paymentID,
		Amount:    amount,
		Currency:  currency,
		Method:    method,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("POST", fmt.Sprintf("%s/v1/charges", apiBase), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := httpClient.Do(req)
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return nil, ErrGatewayTimeout
		}
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusAccepted {
		// Gateway queued the charge; outcome arrives on the webhook.
		return nil, ErrGatewayTimeout
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("gateway charge failed, status: %s", resp.Status)
	}

	var result ChargeResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	if result.Outcome != "paid" && result.Outcome != "failed" {
		return nil, fmt.Errorf("gateway returned unknown outcome %q", result.Outcome)
	}

	return &result, nil
}
