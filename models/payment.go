package models

import (
	"time"

	"gorm.io/datatypes"
)

// Payment is an immutable gateway receipt. Rows are only ever inserted.
type Payment struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	BookingID uint           `json:"bookingId" gorm:"index;not null"`
	OrderID   string         `json:"razorpay_order_id" gorm:"not null"`
	PaymentID string         `json:"razorpay_payment_id" gorm:"uniqueIndex;not null"`
	Signature string         `json:"razorpay_signature" gorm:"not null"`
	Amount    float64        `json:"amount"`
	Currency  string         `json:"currency"`
	Status    string         `json:"status"`
	Phone     string         `json:"phone"`
	Raw       datatypes.JSON `json:"raw,omitempty"`
	CreatedAt time.Time      `json:"createdAt" gorm:"autoCreateTime"`
}
