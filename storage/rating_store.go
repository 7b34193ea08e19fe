package storage

import (
	"context"

	"hotelbooking/errors"
	"hotelbooking/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormRatingStore struct {
	db *gorm.DB
}

func NewGormRatingStore(db *gorm.DB) *GormRatingStore {
	return &GormRatingStore{db: db}
}

func (s *GormRatingStore) Upsert(ctx context.Context, rating *models.Rating) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "hotel_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(rating).Error
	if err != nil {
		return errors.Storage("save rating", err)
	}
	return nil
}

func (s *GormRatingStore) Summary(ctx context.Context, hotelID uint) (float64, int, error) {
	var row struct {
		Average float64
		Total   int
	}
	err := s.db.WithContext(ctx).Model(&models.Rating{}).
		Select("COALESCE(AVG(value), 0) AS average, COUNT(*) AS total").
		Where("hotel_id = ?", hotelID).
		Scan(&row).Error
	if err != nil {
		return 0, 0, errors.Storage("summarise ratings", err)
	}
	return row.Average, row.Total, nil
}
