package constants

import "time"

// Payment status of a booking
const (
	PaymentStatusPending = "Pending"
	PaymentStatusPaid    = "Paid"
)

// Status of a gateway receipt
const (
	ReceiptStatusSuccess = "success"
)

// Room types a booking may request
const (
	RoomTypeSingle = "Single"
	RoomTypeDouble = "Double"
	RoomTypeSuite  = "Suite"
)

var RoomTypes = []string{RoomTypeSingle, RoomTypeDouble, RoomTypeSuite}

// User roles carried in the session token
const (
	RoleUser  = 0
	RoleAdmin = 1
)

const (
	AuthCookieName   = "auth_token"
	AuthTokenTTL     = 3 * 24 * time.Hour
	DefaultCurrency  = "INR"
	UploadFolder     = "wonderlust"
	MaxUploadPhotos  = 50
	MinPasswordChars = 8
)

// Booking events broadcast over websocket and the message broker
const (
	EventBookingCreated   = "booking.created"
	EventBookingPaid      = "booking.paid"
	EventBookingDeleted   = "booking.deleted"
	EventBookingConfirmed = "booking.confirmed"
)
