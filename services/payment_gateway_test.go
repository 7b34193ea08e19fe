package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hotelbooking/errors"

	"github.com/goccy/go-json"
)

func TestVerifySignature(t *testing.T) {
	g := NewRazorpayGateway("key", "secret", "", 0)
	sig := SignReceipt("secret", "order_1", "pay_1")

	if !g.VerifySignature("order_1", "pay_1", sig) {
		t.Fatal("valid signature rejected")
	}
	if g.VerifySignature("order_1", "pay_2", sig) {
		t.Fatal("signature accepted for another payment")
	}
	if g.VerifySignature("order_1", "pay_1", SignReceipt("other", "order_1", "pay_1")) {
		t.Fatal("signature with wrong secret accepted")
	}
	if g.VerifySignature("order_1", "pay_1", "") {
		t.Fatal("empty signature accepted")
	}
}

func TestVerifySignatureWithoutSecret(t *testing.T) {
	g := NewRazorpayGateway("key", "", "", 0)
	if g.VerifySignature("o", "p", SignReceipt("", "o", "p")) {
		t.Fatal("gateway without a secret must reject everything")
	}
}

func TestCreateOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/orders" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if user, pass, ok := r.BasicAuth(); !ok || user != "key" || pass != "secret" {
			t.Errorf("basic auth = %q/%q", user, pass)
		}
		var body razorpayOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body.Amount != 600000 || body.Currency != "INR" || body.PaymentCapture != 1 {
			t.Errorf("body = %+v", body)
		}
		if !strings.HasPrefix(body.Receipt, "rcptid_") {
			t.Errorf("receipt = %q", body.Receipt)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"order_abc","entity":"order","amount":600000,"currency":"INR","receipt":"` + body.Receipt + `","status":"created"}`))
	}))
	defer srv.Close()

	g := NewRazorpayGateway("key", "secret", srv.URL, time.Second)
	order, err := g.CreateOrder(context.Background(), 600000, "")
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if order.ID != "order_abc" || order.Status != "created" {
		t.Fatalf("order = %+v", order)
	}
}

func TestCreateOrderGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":"BAD_REQUEST_ERROR"}}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	g := NewRazorpayGateway("key", "secret", srv.URL, time.Second)
	_, err := g.CreateOrder(context.Background(), 100, "INR")
	if errors.CodeOf(err) != errors.ErrCodeInternal {
		t.Fatalf("expected INTERNAL, got %v", err)
	}
}

func TestCreateOrderTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()

	g := NewRazorpayGateway("key", "secret", srv.URL, 50*time.Millisecond)
	_, err := g.CreateOrder(context.Background(), 100, "INR")
	if errors.CodeOf(err) != errors.ErrCodeTimeout {
		t.Fatalf("expected TIMEOUT, got %v", err)
	}
}

func TestCreateOrderRejectsNonPositiveAmount(t *testing.T) {
	g := NewRazorpayGateway("key", "secret", "http://127.0.0.1:0", time.Second)
	if _, err := g.CreateOrder(context.Background(), 0, "INR"); errors.CodeOf(err) != errors.ErrCodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
