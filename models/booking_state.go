package models

import (
	"hotelbooking/constants"
	"hotelbooking/errors"
)

// BookingState định nghĩa interface cho các trạng thái thanh toán của booking
type BookingState interface {
	Status() string
	Pay(booking *Booking) error
}

// PendingState: rooms are reserved and payment is outstanding.
type PendingState struct{}

func (s *PendingState) Status() string { return constants.PaymentStatusPending }

func (s *PendingState) Pay(booking *Booking) error {
	booking.PaymentStatus = constants.PaymentStatusPaid
	return nil
}

// PaidState is terminal.
type PaidState struct{}

func (s *PaidState) Status() string { return constants.PaymentStatusPaid }

func (s *PaidState) Pay(booking *Booking) error {
	return errors.ErrBookingAlreadyPaid
}

// GetBookingState trả về state tương ứng với paymentStatus
func GetBookingState(status string) BookingState {
	switch status {
	case constants.PaymentStatusPaid:
		return &PaidState{}
	default:
		return &PendingState{}
	}
}
