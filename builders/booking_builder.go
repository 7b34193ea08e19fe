package builders

import (
	"time"

	"hotelbooking/constants"
	"hotelbooking/models"
)

// BookingBuilder giúp tạo booking theo từng bước
type BookingBuilder struct {
	booking *models.Booking
	price   float64
	nights  int
}

// NewBookingBuilder tạo instance mới của BookingBuilder
func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		booking: &models.Booking{PaymentStatus: constants.PaymentStatusPending},
	}
}

// WithUser thêm thông tin user
func (b *BookingBuilder) WithUser(userID uint) *BookingBuilder {
	b.booking.UserID = userID
	return b
}

// WithHotel records the hotel and the nightly price the total is frozen at.
func (b *BookingBuilder) WithHotel(hotel *models.Hotel) *BookingBuilder {
	b.booking.HotelID = hotel.ID
	b.price = hotel.PricePerNight
	return b
}

// WithStay thêm ngày nhận, trả phòng và số đêm
func (b *BookingBuilder) WithStay(checkIn, checkOut time.Time, nights int) *BookingBuilder {
	b.booking.CheckInDate = checkIn
	b.booking.CheckOutDate = checkOut
	b.nights = nights
	return b
}

// WithRooms thêm loại phòng và số phòng
func (b *BookingBuilder) WithRooms(roomType string, numberOfRooms int) *BookingBuilder {
	b.booking.RoomType = roomType
	b.booking.NumberOfRooms = numberOfRooms
	return b
}

// WithGuestInfo thêm thông tin khách
func (b *BookingBuilder) WithGuestInfo(guests int, phone, specialRequests string) *BookingBuilder {
	b.booking.NumberOfGuests = guests
	b.booking.Phone = phone
	b.booking.SpecialRequests = specialRequests
	return b
}

// Build computes totalPrice = pricePerNight * numberOfRooms * nights and
// returns the Pending booking.
func (b *BookingBuilder) Build() *models.Booking {
	b.booking.TotalPrice = b.price * float64(b.booking.NumberOfRooms) * float64(b.nights)
	return b.booking
}
