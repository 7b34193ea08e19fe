package services

import (
	"context"
	"testing"

	"hotelbooking/dto"
	"hotelbooking/errors"
	"hotelbooking/models"
	"hotelbooking/storage/memory"
)

func TestRateUpsertsPerUser(t *testing.T) {
	db := memory.New(nil)
	hotel := &models.Hotel{Name: "Dalat Pine", Address: "Da Lat", PricePerNight: 500, TotalRooms: 4}
	_ = db.Hotels().Create(context.Background(), hotel)
	svc := NewRatingService(db.Ratings(), db.Hotels(), nil)
	ctx := context.Background()

	if _, err := svc.Rate(ctx, 1, hotel.ID, dto.RateRequest{Rating: 4}); err != nil {
		t.Fatal(err)
	}
	summary, err := svc.Rate(ctx, 2, hotel.ID, dto.RateRequest{Rating: 5})
	if err != nil {
		t.Fatal(err)
	}
	if summary.AverageRating != 4.5 || summary.TotalRatings != 2 {
		t.Fatalf("summary = %+v", summary)
	}

	summary, _ = svc.Rate(ctx, 1, hotel.ID, dto.RateRequest{Rating: 2})
	if summary.AverageRating != 3.5 || summary.TotalRatings != 2 {
		t.Fatalf("after re-rate summary = %+v", summary)
	}

	h, _ := db.Hotels().GetByID(ctx, hotel.ID)
	if h.AverageRating != 3.5 || h.TotalRatings != 2 {
		t.Fatalf("hotel rating not updated: %v/%d", h.AverageRating, h.TotalRatings)
	}
}

func TestRateUnknownHotel(t *testing.T) {
	db := memory.New(nil)
	svc := NewRatingService(db.Ratings(), db.Hotels(), nil)
	if _, err := svc.Rate(context.Background(), 1, 42, dto.RateRequest{Rating: 3}); !errors.Is(err, errors.ErrHotelNotFound) {
		t.Fatalf("expected ErrHotelNotFound, got %v", err)
	}
}

func TestRoundOne(t *testing.T) {
	if got := roundOne(10.0 / 3.0); got != 3.3 {
		t.Fatalf("roundOne = %v", got)
	}
}
