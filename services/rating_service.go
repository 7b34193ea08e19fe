package services

import (
	"context"
	"math"
	"time"

	"hotelbooking/dto"
	"hotelbooking/models"
	"hotelbooking/services/logger"
	"hotelbooking/storage"
)

type RatingService struct {
	ratings storage.RatingStore
	hotels  storage.HotelStore
	logger  logger.Logger
	timeout time.Duration
}

func NewRatingService(ratings storage.RatingStore, hotels storage.HotelStore, log logger.Logger) *RatingService {
	if log == nil {
		log = logger.Nop{}
	}
	return &RatingService{ratings: ratings, hotels: hotels, logger: log, timeout: DefaultOperationTimeout}
}

// Rate lưu (hoặc cập nhật) đánh giá của user cho khách sạn rồi tính lại điểm trung bình
func (s *RatingService) Rate(ctx context.Context, userID, hotelID uint, req dto.RateRequest) (*dto.RatingSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if _, err := s.hotels.GetByID(ctx, hotelID); err != nil {
		return nil, err
	}
	if err := s.ratings.Upsert(ctx, &models.Rating{UserID: userID, HotelID: hotelID, Value: req.Rating}); err != nil {
		return nil, err
	}

	summary, err := s.summary(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	if err := s.hotels.UpdateRating(ctx, hotelID, summary.AverageRating, summary.TotalRatings); err != nil {
		return nil, err
	}
	return summary, nil
}

func (s *RatingService) Average(ctx context.Context, hotelID uint) (*dto.RatingSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if _, err := s.hotels.GetByID(ctx, hotelID); err != nil {
		return nil, err
	}
	return s.summary(ctx, hotelID)
}

func (s *RatingService) summary(ctx context.Context, hotelID uint) (*dto.RatingSummary, error) {
	avg, total, err := s.ratings.Summary(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	return &dto.RatingSummary{AverageRating: roundOne(avg), TotalRatings: total}, nil
}

func roundOne(v float64) float64 {
	return math.Round(v*10) / 10
}
