package notification

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/olahol/melody"
)

// Event is a booking change pushed to websocket clients.
type Event struct {
	Type          string    `json:"type"`
	BookingID     uint      `json:"bookingId"`
	HotelID       uint      `json:"hotelId"`
	UserID        uint      `json:"userId"`
	Rooms         int       `json:"rooms"`
	PaymentStatus string    `json:"paymentStatus"`
	Message       string    `json:"message"`
	At            time.Time `json:"at"`
}

type Service interface {
	SendMessage(message string) error
}

// Notifier publishes booking events. Failures are reported, never fatal to
// the operation that produced the event.
type Notifier interface {
	Publish(event Event) error
}

type MelodyService struct {
	m *melody.Melody
}

func NewMelodyService(m *melody.Melody) *MelodyService {
	return &MelodyService{m: m}
}

func (s *MelodyService) SendMessage(message string) error {
	if s.m == nil {
		return fmt.Errorf("melody instance is nil")
	}
	return s.m.Broadcast([]byte(message))
}

func (s *MelodyService) Publish(event Event) error {
	if event.At.IsZero() {
		event.At = time.Now()
	}
	if event.Message == "" {
		event.Message = NewMessageBuilder(event).Build()
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return s.SendMessage(string(payload))
}

type MessageBuilder struct {
	event Event
}

func NewMessageBuilder(event Event) *MessageBuilder {
	return &MessageBuilder{event: event}
}

func (b *MessageBuilder) Build() string {
	switch b.event.Type {
	case "booking.created":
		return fmt.Sprintf("🔔 Booking #%d giữ %d phòng tại khách sạn %d, chờ thanh toán.", b.event.BookingID, b.event.Rooms, b.event.HotelID)
	case "booking.paid":
		return fmt.Sprintf("🔔 Booking #%d đã thanh toán.", b.event.BookingID)
	case "booking.deleted":
		return fmt.Sprintf("🔔 Booking #%d đã bị xóa, trả lại %d phòng.", b.event.BookingID, b.event.Rooms)
	default:
		return fmt.Sprintf("🔔 Booking #%d: %s", b.event.BookingID, b.event.Type)
	}
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(Event) error { return nil }
