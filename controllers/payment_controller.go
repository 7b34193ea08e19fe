package controllers

import (
	"hotelbooking/dto"
	"hotelbooking/errors"
	"hotelbooking/middleware"
	"hotelbooking/response"
	"hotelbooking/services"
	"hotelbooking/validator"

	"github.com/gin-gonic/gin"
)

type PaymentController struct {
	bookings *services.BookingService
}

func NewPaymentController(bookings *services.BookingService) *PaymentController {
	return &PaymentController{bookings: bookings}
}

// CreateOrder godoc
// @Summary  Create a gateway order
// @Tags     payment
// @Accept   json
// @Produce  json
// @Param    body body dto.CreateOrderRequest true "amount in paise"
// @Success  200 {object} dto.GatewayOrder
// @Failure  400 {object} response.ErrorBody
// @Router   /payment/order [post]
func (pc *PaymentController) CreateOrder(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, validator.BindError(err))
		return
	}
	order, err := pc.bookings.CreateOrder(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, order)
}

// VerifyPayment godoc
// @Summary  Verify a checkout receipt and create or confirm the booking
// @Tags     payment
// @Accept   json
// @Produce  json
// @Param    body body dto.VerifyPaymentRequest true "receipt and booking"
// @Success  200 {object} dto.PaymentConfirmedResponse
// @Failure  400 {object} dto.PaymentFailedResponse
// @Router   /payment/verify [post]
func (pc *PaymentController) VerifyPayment(c *gin.Context) {
	var req dto.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		paymentFailed(c, validator.BindError(err))
		return
	}

	booking, err := pc.bookings.VerifyAndBook(c.Request.Context(), middleware.Requester(c), req)
	if err != nil {
		paymentFailed(c, err)
		return
	}
	response.Success(c, dto.PaymentConfirmedResponse{
		Success: true,
		Message: "Payment verified and booking created.",
		Booking: dto.NewBookingResponse(booking),
	})
}

func paymentFailed(c *gin.Context, err error) {
	appErr := errors.From(err)
	_ = c.Error(err)
	c.JSON(errors.HTTPStatus(appErr.Code), dto.PaymentFailedResponse{Success: false, Error: appErr.Message})
}
