package dto

// CreateOrderRequest: amount is in the smallest currency unit (paise).
type CreateOrderRequest struct {
	Amount   int64  `json:"amount" binding:"required,gt=0"`
	Currency string `json:"currency"`
}

// GatewayOrder is the order descriptor returned by the payment gateway.
type GatewayOrder struct {
	ID        string `json:"id"`
	Entity    string `json:"entity"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Receipt   string `json:"receipt"`
	Status    string `json:"status"`
	CreatedAt int64  `json:"created_at"`
}

// Receipt holds the fields the gateway hands back to the client after checkout.
type Receipt struct {
	OrderID   string
	PaymentID string
	Signature string
}

// ConfirmPaymentRequest là body của POST /bookings/update-payment-status
type ConfirmPaymentRequest struct {
	BookingID uint   `json:"bookingId" binding:"required"`
	OrderID   string `json:"orderId" binding:"required"`
	PaymentID string `json:"paymentId" binding:"required"`
	Signature string `json:"signature" binding:"required"`
}

func (r ConfirmPaymentRequest) Receipt() Receipt {
	return Receipt{OrderID: r.OrderID, PaymentID: r.PaymentID, Signature: r.Signature}
}

// VerifyPaymentRequest carries the gateway receipt plus either an existing
// booking id or the parameters of a booking to create.
type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature" binding:"required"`

	BookingID       uint    `json:"bookingId"`
	HotelID         uint    `json:"hotelId"`
	RoomType        string  `json:"roomType"`
	CheckInDate     string  `json:"checkInDate"`
	CheckOutDate    string  `json:"checkOutDate"`
	NumberOfRooms   int     `json:"numberOfRooms"`
	Guests          int     `json:"guests"`
	SpecialRequests string  `json:"specialRequests"`
	Phone           string  `json:"phone"`
	TotalPrice      float64 `json:"totalPrice"` // bỏ qua, server tự tính
}

func (r VerifyPaymentRequest) Receipt() Receipt {
	return Receipt{OrderID: r.RazorpayOrderID, PaymentID: r.RazorpayPaymentID, Signature: r.RazorpaySignature}
}

func (r VerifyPaymentRequest) BookingRequest() CreateBookingRequest {
	return CreateBookingRequest{
		HotelID:         r.HotelID,
		CheckIn:         r.CheckInDate,
		CheckOut:        r.CheckOutDate,
		RoomType:        r.RoomType,
		NumberOfRooms:   r.NumberOfRooms,
		NumberOfGuests:  r.Guests,
		SpecialRequests: r.SpecialRequests,
		Phone:           r.Phone,
	}
}
