package storage

import (
	"context"

	"hotelbooking/errors"
	"hotelbooking/models"

	"gorm.io/gorm"
)

type GormPaymentStore struct {
	db *gorm.DB
}

func NewGormPaymentStore(db *gorm.DB) *GormPaymentStore {
	return &GormPaymentStore{db: db}
}

func (s *GormPaymentStore) Record(ctx context.Context, payment *models.Payment) error {
	if err := s.db.WithContext(ctx).Create(payment).Error; err != nil {
		if isDuplicate(err) {
			return errors.ErrPaymentRecorded
		}
		return errors.Storage("record payment", err)
	}
	return nil
}

func (s *GormPaymentStore) ListByBooking(ctx context.Context, bookingID uint) ([]models.Payment, error) {
	var payments []models.Payment
	if err := s.db.WithContext(ctx).Where("booking_id = ?", bookingID).Order("created_at").Find(&payments).Error; err != nil {
		return nil, errors.Storage("list payments", err)
	}
	return payments, nil
}
