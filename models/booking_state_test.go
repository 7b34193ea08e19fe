package models

import (
	"testing"

	"hotelbooking/constants"
	"hotelbooking/errors"
)

func TestPendingToPaid(t *testing.T) {
	b := &Booking{PaymentStatus: constants.PaymentStatusPending}
	if err := GetBookingState(b.PaymentStatus).Pay(b); err != nil {
		t.Fatalf("Pay from Pending: %v", err)
	}
	if !b.IsPaid() {
		t.Fatalf("status = %s, want Paid", b.PaymentStatus)
	}
}

func TestPaidIsTerminal(t *testing.T) {
	b := &Booking{PaymentStatus: constants.PaymentStatusPaid}
	err := GetBookingState(b.PaymentStatus).Pay(b)
	if !errors.Is(err, errors.ErrBookingAlreadyPaid) {
		t.Fatalf("expected ErrBookingAlreadyPaid, got %v", err)
	}
	if b.PaymentStatus != constants.PaymentStatusPaid {
		t.Fatalf("status changed to %s", b.PaymentStatus)
	}
}

func TestUnknownStatusTreatedAsPending(t *testing.T) {
	if s := GetBookingState(""); s.Status() != constants.PaymentStatusPending {
		t.Fatalf("empty status resolved to %s", s.Status())
	}
}
