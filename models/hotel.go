package models

import (
	"fmt"
	"time"

	"github.com/lib/pq"
)

type Hotel struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	OwnerID        uint           `json:"ownerId" gorm:"index"`
	Owner          *User          `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Name           string         `json:"name" gorm:"not null"`
	Address        string         `json:"address" gorm:"not null"`
	Photos         pq.StringArray `json:"photos" gorm:"type:text[]"`
	Description    string         `json:"description"`
	Amenities      pq.StringArray `json:"amenities" gorm:"type:text[]"`
	ExtraInfo      string         `json:"extraInfo"`
	CheckIn        int            `json:"checkIn"`  // giờ nhận phòng
	CheckOut       int            `json:"checkOut"` // giờ trả phòng
	MaxGuests      int            `json:"maxGuests"`
	PricePerNight  float64        `json:"pricePerNight" gorm:"not null"`
	TotalRooms     int            `json:"totalRooms" gorm:"not null"`
	AvailableRooms int            `json:"availableRooms" gorm:"not null;check:available_rooms >= 0"`
	AverageRating  float64        `json:"averageRating" gorm:"default:0"`
	TotalRatings   int            `json:"totalRatings" gorm:"default:0"`
	CreatedAt      time.Time      `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `json:"updatedAt" gorm:"autoUpdateTime"`
}

// CheckInventory reports whether the counters satisfy 0 <= available <= total.
func (h *Hotel) CheckInventory() error {
	if h.AvailableRooms < 0 || h.AvailableRooms > h.TotalRooms {
		return fmt.Errorf("hotel %d: available rooms %d outside [0, %d]", h.ID, h.AvailableRooms, h.TotalRooms)
	}
	return nil
}

// Summary là phần thông tin khách sạn đính kèm vào booking
func (h *Hotel) Summary() HotelSummary {
	return HotelSummary{
		ID:            h.ID,
		Name:          h.Name,
		Address:       h.Address,
		Photos:        h.Photos,
		PricePerNight: h.PricePerNight,
	}
}

type HotelSummary struct {
	ID            uint     `json:"id"`
	Name          string   `json:"name"`
	Address       string   `json:"address"`
	Photos        []string `json:"photos"`
	PricePerNight float64  `json:"pricePerNight"`
}
