package services

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"hotelbooking/constants"
	"hotelbooking/dto"
	"hotelbooking/errors"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// PaymentGateway is the external payment provider.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, amount int64, currency string) (*dto.GatewayOrder, error)
	VerifySignature(orderID, paymentID, signature string) bool
}

const DefaultRazorpayBaseURL = "https://api.razorpay.com"

// RazorpayGateway talks to the Razorpay orders API and checks checkout
// signatures locally with the key secret.
type RazorpayGateway struct {
	keyID     string
	keySecret string
	baseURL   string
	client    *http.Client
}

func NewRazorpayGateway(keyID, keySecret, baseURL string, timeout time.Duration) *RazorpayGateway {
	if baseURL == "" {
		baseURL = DefaultRazorpayBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &RazorpayGateway{
		keyID:     keyID,
		keySecret: keySecret,
		baseURL:   strings.TrimRight(baseURL, "/"),
		client:    &http.Client{Timeout: timeout},
	}
}

// SignReceipt returns the hex HMAC-SHA256 of "orderID|paymentID".
func SignReceipt(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func (g *RazorpayGateway) VerifySignature(orderID, paymentID, signature string) bool {
	if g.keySecret == "" || signature == "" {
		return false
	}
	expected := SignReceipt(g.keySecret, orderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(signature))
}

type razorpayOrderRequest struct {
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	Receipt        string `json:"receipt"`
	PaymentCapture int    `json:"payment_capture"`
}

func NewReceiptID() string {
	return "rcptid_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

func (g *RazorpayGateway) CreateOrder(ctx context.Context, amount int64, currency string) (*dto.GatewayOrder, error) {
	if amount <= 0 {
		return nil, errors.Validation("Amount must be positive.")
	}
	if currency == "" {
		currency = constants.DefaultCurrency
	}

	body, err := json.Marshal(razorpayOrderRequest{
		Amount:         amount,
		Currency:       currency,
		Receipt:        NewReceiptID(),
		PaymentCapture: 1,
	})
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeInternal, "Failed to create order", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeInternal, "Failed to create order", err)
	}
	req.SetBasicAuth(g.keyID, g.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, errors.NewAppError(errors.ErrCodeTimeout, "Payment gateway timed out", err)
		}
		return nil, errors.NewAppError(errors.ErrCodeInternal, "Failed to create order", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, errors.NewAppError(errors.ErrCodeInternal, "Failed to create order",
			fmt.Errorf("gateway returned %s: %s", resp.Status, strings.TrimSpace(string(msg))))
	}

	var order dto.GatewayOrder
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, errors.NewAppError(errors.ErrCodeInternal, "Failed to create order", err)
	}
	return &order, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
