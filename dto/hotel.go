package dto

import "hotelbooking/models"

type CreateHotelRequest struct {
	Name          string   `json:"name" binding:"required"`
	Address       string   `json:"address" binding:"required"`
	Description   string   `json:"description" binding:"required"`
	Photos        []string `json:"photos"`
	Amenities     []string `json:"amenities"`
	ExtraInfo     string   `json:"extraInfo"`
	CheckIn       int      `json:"checkIn" binding:"min=0,max=23"`
	CheckOut      int      `json:"checkOut" binding:"min=0,max=23"`
	MaxGuests     int      `json:"maxGuests" binding:"required,gt=0"`
	PricePerNight float64  `json:"pricePerNight" binding:"required,gt=0"`
	TotalRooms    int      `json:"totalRooms" binding:"required,gt=0"`
}

func (r CreateHotelRequest) ToModel(ownerID uint) *models.Hotel {
	return &models.Hotel{
		OwnerID:        ownerID,
		Name:           r.Name,
		Address:        r.Address,
		Description:    r.Description,
		Photos:         r.Photos,
		Amenities:      r.Amenities,
		ExtraInfo:      r.ExtraInfo,
		CheckIn:        r.CheckIn,
		CheckOut:       r.CheckOut,
		MaxGuests:      r.MaxGuests,
		PricePerNight:  r.PricePerNight,
		TotalRooms:     r.TotalRooms,
		AvailableRooms: r.TotalRooms,
	}
}

// UpdateHotelRequest: nil fields are left unchanged. Room counts cannot be edited.
type UpdateHotelRequest struct {
	Name          *string  `json:"name"`
	Address       *string  `json:"address"`
	Description   *string  `json:"description"`
	Photos        []string `json:"photos"`
	Amenities     []string `json:"amenities"`
	ExtraInfo     *string  `json:"extraInfo"`
	CheckIn       *int     `json:"checkIn" binding:"omitempty,min=0,max=23"`
	CheckOut      *int     `json:"checkOut" binding:"omitempty,min=0,max=23"`
	MaxGuests     *int     `json:"maxGuests" binding:"omitempty,gt=0"`
	PricePerNight *float64 `json:"pricePerNight" binding:"omitempty,gt=0"`
}

func (r UpdateHotelRequest) Apply(h *models.Hotel) {
	if r.Name != nil {
		h.Name = *r.Name
	}
	if r.Address != nil {
		h.Address = *r.Address
	}
	if r.Description != nil {
		h.Description = *r.Description
	}
	if r.Photos != nil {
		h.Photos = r.Photos
	}
	if r.Amenities != nil {
		h.Amenities = r.Amenities
	}
	if r.ExtraInfo != nil {
		h.ExtraInfo = *r.ExtraInfo
	}
	if r.CheckIn != nil {
		h.CheckIn = *r.CheckIn
	}
	if r.CheckOut != nil {
		h.CheckOut = *r.CheckOut
	}
	if r.MaxGuests != nil {
		h.MaxGuests = *r.MaxGuests
	}
	if r.PricePerNight != nil {
		h.PricePerNight = *r.PricePerNight
	}
}

// ScoredHotel là kết quả tìm kiếm kèm điểm phù hợp
type ScoredHotel struct {
	Hotel models.Hotel
	Score int
}
