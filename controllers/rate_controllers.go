package controllers

import (
	"hotelbooking/dto"
	"hotelbooking/middleware"
	"hotelbooking/response"
	"hotelbooking/services"
	"hotelbooking/validator"

	"github.com/gin-gonic/gin"
)

type RatingController struct {
	ratings *services.RatingService
}

func NewRatingController(ratings *services.RatingService) *RatingController {
	return &RatingController{ratings: ratings}
}

// RateHotel lưu hoặc cập nhật đánh giá 1..5 sao của user hiện tại
func (rc *RatingController) RateHotel(c *gin.Context) {
	hotelID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, validator.BindError(err))
		return
	}

	summary, err := rc.ratings.Rate(c.Request.Context(), middleware.Requester(c).UserID, hotelID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, summary)
}

func (rc *RatingController) AverageRating(c *gin.Context) {
	hotelID, ok := parseID(c, "id")
	if !ok {
		return
	}
	summary, err := rc.ratings.Average(c.Request.Context(), hotelID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, summary)
}
