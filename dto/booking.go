package dto

import (
	"time"

	"hotelbooking/models"
)

// CreateBookingRequest là body của POST /bookings.
// Validation order matters (phone first), so the rules live in the validator
// package instead of binding tags.
type CreateBookingRequest struct {
	HotelID         uint   `json:"hotelId" validate:"required"`
	CheckIn         string `json:"checkIn" validate:"required"`
	CheckOut        string `json:"checkOut" validate:"required"`
	RoomType        string `json:"roomType" validate:"required,roomtype"`
	NumberOfRooms   int    `json:"numberOfRooms" validate:"required,gt=0"`
	NumberOfGuests  int    `json:"numberOfGuests" validate:"gte=0"`
	SpecialRequests string `json:"specialRequests"`
	Phone           string `json:"phone" validate:"phone10"`
}

// BookingResponse is a booking with its hotel and user summaries populated.
type BookingResponse struct {
	ID              uint                 `json:"id"`
	HotelID         uint                 `json:"hotelId"`
	UserID          uint                 `json:"userId"`
	Hotel           *models.HotelSummary `json:"hotel,omitempty"`
	User            *models.UserSummary  `json:"user,omitempty"`
	RoomType        string               `json:"roomType"`
	CheckInDate     string               `json:"checkInDate"`
	CheckOutDate    string               `json:"checkOutDate"`
	NumberOfRooms   int                  `json:"numberOfRooms"`
	Guests          int                  `json:"guests"`
	SpecialRequests string               `json:"specialRequests,omitempty"`
	Phone           string               `json:"phone"`
	TotalPrice      float64              `json:"totalPrice"`
	PaymentStatus   string               `json:"paymentStatus"`
	CreatedAt       time.Time            `json:"createdAt"`
	UpdatedAt       time.Time            `json:"updatedAt"`
}

func NewBookingResponse(b *models.Booking) BookingResponse {
	resp := BookingResponse{
		ID:              b.ID,
		HotelID:         b.HotelID,
		UserID:          b.UserID,
		RoomType:        b.RoomType,
		CheckInDate:     b.CheckInDate.Format("2006-01-02"),
		CheckOutDate:    b.CheckOutDate.Format("2006-01-02"),
		NumberOfRooms:   b.NumberOfRooms,
		Guests:          b.NumberOfGuests,
		SpecialRequests: b.SpecialRequests,
		Phone:           b.Phone,
		TotalPrice:      b.TotalPrice,
		PaymentStatus:   b.PaymentStatus,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
	if b.Hotel != nil {
		s := b.Hotel.Summary()
		resp.Hotel = &s
	}
	if b.User != nil {
		s := b.User.Summary()
		resp.User = &s
	}
	return resp
}

func NewBookingResponses(bookings []models.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, NewBookingResponse(&bookings[i]))
	}
	return out
}

type BookingCreatedResponse struct {
	Message string          `json:"message"`
	Booking BookingResponse `json:"booking"`
}

// PaymentConfirmedResponse là body trả về khi xác nhận thanh toán thành công
type PaymentConfirmedResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Booking BookingResponse `json:"booking"`
}

type PaymentFailedResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type AdminBookingResponse struct {
	Booking  BookingResponse  `json:"booking"`
	Payments []models.Payment `json:"payments"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
