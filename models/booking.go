package models

import (
	"time"

	"hotelbooking/constants"
)

type Booking struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	UserID          uint      `json:"userId" gorm:"index;not null"`
	User            *User     `json:"-" gorm:"foreignKey:UserID"`
	HotelID         uint      `json:"hotelId" gorm:"index;not null"`
	Hotel           *Hotel    `json:"-" gorm:"foreignKey:HotelID"`
	RoomType        string    `json:"roomType" gorm:"type:varchar(16);not null"`
	CheckInDate     time.Time `json:"checkInDate" gorm:"type:date;not null"`
	CheckOutDate    time.Time `json:"checkOutDate" gorm:"type:date;not null"`
	NumberOfRooms   int       `json:"numberOfRooms" gorm:"not null"`
	NumberOfGuests  int       `json:"guests" gorm:"not null"`
	SpecialRequests string    `json:"specialRequests"`
	Phone           string    `json:"phone" gorm:"type:varchar(10);not null"`
	TotalPrice      float64   `json:"totalPrice" gorm:"not null"`
	PaymentStatus   string    `json:"paymentStatus" gorm:"type:varchar(16);default:Pending;index"`
	CreatedAt       time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt       time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (b *Booking) IsPaid() bool {
	return b.PaymentStatus == constants.PaymentStatusPaid
}

// Nights trả về số đêm giữa ngày nhận và ngày trả phòng
func (b *Booking) Nights() int {
	return int(b.CheckOutDate.Sub(b.CheckInDate).Hours() / 24)
}
