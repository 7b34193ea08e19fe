// Package storage holds the persistence contracts of the booking backend and
// their gorm and redis implementations.
package storage

import (
	"context"

	"hotelbooking/models"
)

// InventoryStore owns the availableRooms counter of each hotel. Reserve must
// check and decrement in one atomic step; Release never raises the counter
// above totalRooms.
type InventoryStore interface {
	Reserve(ctx context.Context, hotelID uint, count int) (*models.Hotel, error)
	Release(ctx context.Context, hotelID uint, count int) (*models.Hotel, error)
}

type HotelFilter struct {
	OwnerID uint
	Offset  int
	Limit   int
}

// HotelStore.Update never writes TotalRooms or AvailableRooms.
type HotelStore interface {
	InventoryStore
	Create(ctx context.Context, hotel *models.Hotel) error
	GetByID(ctx context.Context, id uint) (*models.Hotel, error)
	List(ctx context.Context, filter HotelFilter) ([]models.Hotel, int64, error)
	Update(ctx context.Context, hotel *models.Hotel) error
	UpdateRating(ctx context.Context, id uint, average float64, total int) error
}

// BookingStore is the booking ledger. Reads populate Hotel and User.
type BookingStore interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id uint) (*models.Booking, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Booking, error)
	ListAll(ctx context.Context) ([]models.Booking, error)
	// MarkPaid moves a Pending booking to Paid. It fails with
	// ErrBookingAlreadyPaid when the booking is not Pending.
	MarkPaid(ctx context.Context, id uint) error
	// ConfirmPaid records payment and marks booking payment.BookingID Paid as
	// one unit: either both writes happen or neither does.
	ConfirmPaid(ctx context.Context, payment *models.Payment) error
	// Delete removes the booking and returns the removed row, so that at most
	// one caller ever sees a given booking deleted.
	Delete(ctx context.Context, id uint) (*models.Booking, error)
	ListOrphaned(ctx context.Context) ([]models.Booking, error)
}

// PaymentStore is append-only.
type PaymentStore interface {
	Record(ctx context.Context, payment *models.Payment) error
	ListByBooking(ctx context.Context, bookingID uint) ([]models.Payment, error)
}

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Delete(ctx context.Context, id uint) error
}

// RatingStore keeps one rating per (hotel, user).
type RatingStore interface {
	Upsert(ctx context.Context, rating *models.Rating) error
	Summary(ctx context.Context, hotelID uint) (average float64, total int, err error)
}
