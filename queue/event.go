// Package queue carries booking.confirmed events over RabbitMQ. The API
// publishes one event per paid booking and a background consumer turns each
// event into a confirmation mail.
package queue

import "time"

const BookingConfirmedQueue = "booking.confirmed"

type BookingConfirmedEvent struct {
	BookingID   uint      `json:"bookingId"`
	UserID      uint      `json:"userId"`
	UserName    string    `json:"userName"`
	UserEmail   string    `json:"userEmail"`
	HotelID     uint      `json:"hotelId"`
	HotelName   string    `json:"hotelName"`
	CheckIn     time.Time `json:"checkIn"`
	CheckOut    time.Time `json:"checkOut"`
	Rooms       int       `json:"rooms"`
	TotalPrice  float64   `json:"totalPrice"`
	Currency    string    `json:"currency"`
	PaymentID   string    `json:"paymentId"`
	ConfirmedAt time.Time `json:"confirmedAt"`
}
