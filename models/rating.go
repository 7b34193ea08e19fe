package models

import "time"

type Rating struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"userId" gorm:"uniqueIndex:idx_rating_hotel_user;not null"`
	HotelID   uint      `json:"hotelId" gorm:"uniqueIndex:idx_rating_hotel_user;not null"`
	Value     int       `json:"rating" gorm:"not null"` // 1..5 sao
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
