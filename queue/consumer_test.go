package queue

import (
	"context"
	"errors"
	"testing"
	"time"

	"hotelbooking/services/mail"

	"github.com/goccy/go-json"
)

type fakeMailer struct {
	sent []mail.BookingConfirmation
	err  error
}

func (m *fakeMailer) SendBookingConfirmation(ctx context.Context, msg mail.BookingConfirmation) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func TestHandleSendsConfirmation(t *testing.T) {
	mailer := &fakeMailer{}
	c := NewConsumer("amqp://unused", mailer, nil)

	body, _ := json.Marshal(BookingConfirmedEvent{
		BookingID:  12,
		UserName:   "Quang",
		UserEmail:  "quang@example.com",
		HotelName:  "Sapa Cloud",
		CheckIn:    time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:   time.Date(2025, 9, 3, 0, 0, 0, 0, time.UTC),
		Rooms:      2,
		TotalPrice: 4000,
		Currency:   "INR",
	})
	if err := c.Handle(context.Background(), body); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("%d mails sent", len(mailer.sent))
	}
	msg := mailer.sent[0]
	if msg.To != "quang@example.com" || msg.BookingID != 12 || msg.Rooms != 2 {
		t.Fatalf("mail = %+v", msg)
	}
}

func TestHandleSkipsMissingRecipient(t *testing.T) {
	mailer := &fakeMailer{}
	c := NewConsumer("amqp://unused", mailer, nil)
	body, _ := json.Marshal(BookingConfirmedEvent{BookingID: 3})
	if err := c.Handle(context.Background(), body); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(mailer.sent) != 0 {
		t.Fatal("mail sent without a recipient")
	}
}

func TestHandleErrors(t *testing.T) {
	c := NewConsumer("amqp://unused", &fakeMailer{}, nil)
	if err := c.Handle(context.Background(), []byte("{not json")); err == nil {
		t.Fatal("expected unmarshal error")
	}

	failing := NewConsumer("amqp://unused", &fakeMailer{err: errors.New("smtp down")}, nil)
	body, _ := json.Marshal(BookingConfirmedEvent{BookingID: 1, UserEmail: "a@example.com"})
	if err := failing.Handle(context.Background(), body); err == nil {
		t.Fatal("expected mailer error")
	}
}

func TestSleepStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if sleep(ctx, time.Hour) {
		t.Fatal("sleep ignored a cancelled context")
	}
}
