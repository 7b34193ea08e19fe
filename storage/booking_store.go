package storage

import (
	"context"

	"hotelbooking/constants"
	"hotelbooking/errors"
	"hotelbooking/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormBookingStore struct {
	db *gorm.DB
}

func NewGormBookingStore(db *gorm.DB) *GormBookingStore {
	return &GormBookingStore{db: db}
}

func (s *GormBookingStore) populated(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Preload("Hotel").Preload("User")
}

func (s *GormBookingStore) Create(ctx context.Context, booking *models.Booking) error {
	if booking.PaymentStatus == "" {
		booking.PaymentStatus = constants.PaymentStatusPending
	}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(booking).Error; err != nil {
		return errors.Storage("create booking", err)
	}
	return nil
}

func (s *GormBookingStore) GetByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.populated(ctx).First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrBookingNotFound
		}
		return nil, errors.Storage("get booking", err)
	}
	return &booking, nil
}

func (s *GormBookingStore) ListByUser(ctx context.Context, userID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := s.populated(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&bookings).Error; err != nil {
		return nil, errors.Storage("list user bookings", err)
	}
	return bookings, nil
}

func (s *GormBookingStore) ListAll(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := s.populated(ctx).Order("created_at DESC").Find(&bookings).Error; err != nil {
		return nil, errors.Storage("list bookings", err)
	}
	return bookings, nil
}

// MarkPaid only updates rows still in Pending, so two confirmations racing on
// one booking cannot both succeed.
func (s *GormBookingStore) MarkPaid(ctx context.Context, id uint) error {
	if err := markPaid(s.db.WithContext(ctx), id); err != nil {
		if errors.IsAppError(err) {
			return err
		}
		return errors.Storage("mark booking paid", err)
	}
	return nil
}

// ConfirmPaid chạy MarkPaid và ghi payment trong cùng một transaction
func (s *GormBookingStore) ConfirmPaid(ctx context.Context, payment *models.Payment) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := markPaid(tx, payment.BookingID); err != nil {
			return err
		}
		if err := tx.Create(payment).Error; err != nil {
			if isDuplicate(err) {
				return errors.ErrPaymentRecorded
			}
			return err
		}
		return nil
	})
	if err != nil {
		if errors.IsAppError(err) {
			return err
		}
		return errors.Storage("confirm payment", err)
	}
	return nil
}

func markPaid(tx *gorm.DB, id uint) error {
	res := tx.Model(&models.Booking{}).
		Where("id = ? AND payment_status = ?", id, constants.PaymentStatusPending).
		Update("payment_status", constants.PaymentStatusPaid)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := tx.Model(&models.Booking{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errors.ErrBookingNotFound
		}
		return errors.ErrBookingAlreadyPaid
	}
	return nil
}

func (s *GormBookingStore) Delete(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	res := s.db.WithContext(ctx).Clauses(clause.Returning{}).Where("id = ?", id).Delete(&booking)
	if res.Error != nil {
		return nil, errors.Storage("delete booking", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, errors.ErrBookingNotFound
	}
	return &booking, nil
}

// ListOrphaned returns bookings whose user row no longer exists.
func (s *GormBookingStore) ListOrphaned(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.WithContext(ctx).
		Where("user_id NOT IN (?)", s.db.Model(&models.User{}).Select("id")).
		Find(&bookings).Error
	if err != nil {
		return nil, errors.Storage("list orphaned bookings", err)
	}
	return bookings, nil
}
