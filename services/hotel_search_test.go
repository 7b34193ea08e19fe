package services

import (
	"testing"

	"hotelbooking/models"
)

func searchFixture() []models.Hotel {
	return []models.Hotel{
		{ID: 1, Name: "Khách sạn Mường Thanh", Address: "Đà Nẵng", Amenities: []string{"wifi", "pool"}},
		{ID: 2, Name: "Sunrise Resort", Address: "Nha Trang"},
		{ID: 3, Name: "Hanoi Old Quarter Inn", Address: "Hà Nội"},
	}
}

func TestSearchHotelsIgnoresAccents(t *testing.T) {
	results := SearchHotels(searchFixture(), "muong thanh")
	if len(results) == 0 || results[0].Hotel.ID != 1 {
		t.Fatalf("results = %+v", results)
	}
}

func TestSearchHotelsByAddress(t *testing.T) {
	results := SearchHotels(searchFixture(), "Da Nang")
	if len(results) == 0 || results[0].Hotel.ID != 1 {
		t.Fatalf("results = %+v", results)
	}
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Fatalf("results not sorted by score: %+v", results)
		}
	}
}

func TestSearchHotelsEmptyQuery(t *testing.T) {
	if results := SearchHotels(searchFixture(), "  "); len(results) != 3 {
		t.Fatalf("empty query returned %d hotels", len(results))
	}
}

func TestCalculateSimilarity(t *testing.T) {
	if s := calculateSimilarity("resort", "resort"); s != 1 {
		t.Fatalf("identical strings scored %v", s)
	}
	if s := calculateSimilarity("", ""); s != 1 {
		t.Fatalf("empty strings scored %v", s)
	}
	if s := calculateSimilarity("resrt", "resort"); s < 0.8 {
		t.Fatalf("one typo scored %v", s)
	}
}
