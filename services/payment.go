package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

const defaultGatewayBaseURL = "https://api.razorpay.com"

// GatewayClient talks to the Razorpay order API. Signature verification is
// purely local (HMAC over the order and payment ids), so a client with empty
// credentials is still usable for verification in tests.
type GatewayClient struct {
	keyID     string
	keySecret string
	baseURL   string
	http      *resty.Client
}

func NewGatewayClient() *GatewayClient {
	baseURL := os.Getenv("RAZORPAY_BASE_URL")
	if baseURL == "" {
		baseURL = defaultGatewayBaseURL
	}
	return &GatewayClient{
		keyID:     os.Getenv("RAZORPAY_KEY_ID"),
		keySecret: os.Getenv("RAZORPAY_KEY_SECRET"),
		baseURL:   baseURL,
		http:      resty.New(),
	}
}

// CreateOrder registers a prepaid order with the gateway and returns the
// gateway's order id. Amounts are submitted in the currency's minor unit.
func (c *GatewayClient) CreateOrder(amount decimal.Decimal, currency, receipt string) (string, error) {
	if c.keyID == "" || c.keySecret == "" {
		return "", fmt.Errorf("gateway credentials are not set")
	}

	requestBody := map[string]any{
		"amount":          amount.Mul(decimal.NewFromInt(100)).IntPart(),
		"currency":        currency,
		"receipt":         receipt,
		"payment_capture": 1,
	}

	resp, err := c.http.R().
		SetBasicAuth(c.keyID, c.keySecret).
		SetHeader("Content-Type", "application/json").
		SetBody(requestBody).
		Post(c.baseURL + "/v1/orders")
	if err != nil {
		return "", err
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("gateway order request failed with status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	var response map[string]any
	if err := json.Unmarshal(resp.Body(), &response); err != nil {
		return "", fmt.Errorf("failed to parse gateway response: %w", err)
	}

	orderID, ok := response["id"].(string)
	if !ok || orderID == "" {
		return "", fmt.Errorf("order id not found in gateway response")
	}
	return orderID, nil
}

// VerifySignature checks the payment signature the gateway hands back to the
// client after checkout: HMAC-SHA256 of "<order_id>|<payment_id>" under the
// key secret, hex encoded.
func (c *GatewayClient) VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(c.keySecret))
	fmt.Fprintf(mac, "%s|%s", gatewayOrderID, gatewayPaymentID)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// NewTestGatewayClient builds a client pointed at a stub server. Used by tests.
func NewTestGatewayClient(keyID, keySecret, baseURL string) *GatewayClient {
	return &GatewayClient{keyID: keyID, keySecret: keySecret, baseURL: baseURL, http: resty.New()}
}
