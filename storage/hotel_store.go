package storage

import (
	"context"

	"hotelbooking/errors"
	"hotelbooking/models"
	"hotelbooking/services/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormHotelStore struct {
	db     *gorm.DB
	logger logger.Logger
}

func NewGormHotelStore(db *gorm.DB, log logger.Logger) *GormHotelStore {
	if log == nil {
		log = logger.Nop{}
	}
	return &GormHotelStore{db: db, logger: log}
}

// Reserve decrements availableRooms with a single conditional UPDATE, so two
// concurrent reservations can never both pass the availability check.
func (s *GormHotelStore) Reserve(ctx context.Context, hotelID uint, count int) (*models.Hotel, error) {
	if count <= 0 {
		return nil, errors.Validation("Number of rooms must be positive.")
	}

	var hotel models.Hotel
	res := s.db.WithContext(ctx).
		Model(&hotel).
		Clauses(clause.Returning{}).
		Where("id = ? AND available_rooms >= ?", hotelID, count).
		UpdateColumn("available_rooms", gorm.Expr("available_rooms - ?", count))
	if res.Error != nil {
		return nil, errors.Storage("reserve rooms", res.Error)
	}
	if res.RowsAffected == 0 {
		// Không trừ được: khách sạn không tồn tại hoặc không đủ phòng
		if _, err := s.GetByID(ctx, hotelID); err != nil {
			return nil, err
		}
		return nil, errors.ErrInsufficientInventory
	}
	return &hotel, nil
}

// Release returns rooms under a row lock and clamps at totalRooms. A clamp
// means some booking was released twice and is logged as an error.
func (s *GormHotelStore) Release(ctx context.Context, hotelID uint, count int) (*models.Hotel, error) {
	if count <= 0 {
		return nil, errors.Validation("Number of rooms must be positive.")
	}

	var hotel models.Hotel
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&hotel, hotelID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.ErrHotelNotFound
			}
			return err
		}

		next := hotel.AvailableRooms + count
		if next > hotel.TotalRooms {
			s.logger.Error("inventory overflow on hotel %d: %d available + %d released exceeds %d total, clamping",
				hotel.ID, hotel.AvailableRooms, count, hotel.TotalRooms)
			next = hotel.TotalRooms
		}
		hotel.AvailableRooms = next
		return tx.Model(&hotel).UpdateColumn("available_rooms", next).Error
	})
	if err != nil {
		if errors.IsAppError(err) {
			return nil, err
		}
		return nil, errors.Storage("release rooms", err)
	}
	return &hotel, nil
}

func (s *GormHotelStore) Create(ctx context.Context, hotel *models.Hotel) error {
	hotel.AvailableRooms = hotel.TotalRooms
	if err := s.db.WithContext(ctx).Create(hotel).Error; err != nil {
		return errors.Storage("create hotel", err)
	}
	return nil
}

func (s *GormHotelStore) GetByID(ctx context.Context, id uint) (*models.Hotel, error) {
	var hotel models.Hotel
	if err := s.db.WithContext(ctx).Preload("Owner").First(&hotel, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrHotelNotFound
		}
		return nil, errors.Storage("get hotel", err)
	}
	return &hotel, nil
}

func (s *GormHotelStore) List(ctx context.Context, filter HotelFilter) ([]models.Hotel, int64, error) {
	scope := func() *gorm.DB {
		tx := s.db.WithContext(ctx).Model(&models.Hotel{})
		if filter.OwnerID != 0 {
			tx = tx.Where("owner_id = ?", filter.OwnerID)
		}
		return tx
	}

	var total int64
	if err := scope().Count(&total).Error; err != nil {
		return nil, 0, errors.Storage("count hotels", err)
	}

	var hotels []models.Hotel
	q := scope().Preload("Owner").Order("id DESC").Offset(filter.Offset)
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if err := q.Find(&hotels).Error; err != nil {
		return nil, 0, errors.Storage("list hotels", err)
	}
	return hotels, total, nil
}

func (s *GormHotelStore) Update(ctx context.Context, hotel *models.Hotel) error {
	res := s.db.WithContext(ctx).Model(hotel).
		Select("name", "address", "photos", "description", "amenities", "extra_info",
			"check_in", "check_out", "max_guests", "price_per_night").
		Updates(hotel)
	if res.Error != nil {
		return errors.Storage("update hotel", res.Error)
	}
	if res.RowsAffected == 0 {
		return errors.ErrHotelNotFound
	}
	return nil
}

func (s *GormHotelStore) UpdateRating(ctx context.Context, id uint, average float64, total int) error {
	res := s.db.WithContext(ctx).Model(&models.Hotel{}).Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"average_rating": average,
			"total_ratings":  total,
		})
	if res.Error != nil {
		return errors.Storage("update hotel rating", res.Error)
	}
	if res.RowsAffected == 0 {
		return errors.ErrHotelNotFound
	}
	return nil
}
