package controllers

import (
	"strconv"

	"hotelbooking/dto"
	"hotelbooking/middleware"
	"hotelbooking/response"
	"hotelbooking/services"
	"hotelbooking/validator"

	"github.com/gin-gonic/gin"
)

type BookingController struct {
	bookings *services.BookingService
}

func NewBookingController(bookings *services.BookingService) *BookingController {
	return &BookingController{bookings: bookings}
}

func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "Invalid id.")
		return 0, false
	}
	return uint(id), true
}

// CreateBooking godoc
// @Summary  Reserve rooms and create a Pending booking
// @Tags     bookings
// @Accept   json
// @Produce  json
// @Param    body body dto.CreateBookingRequest true "booking"
// @Success  201 {object} dto.BookingCreatedResponse
// @Failure  400 {object} response.ErrorBody
// @Failure  404 {object} response.ErrorBody
// @Router   /bookings [post]
func (bc *BookingController) CreateBooking(c *gin.Context) {
	var req dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, validator.BindError(err))
		return
	}

	booking, err := bc.bookings.Create(c.Request.Context(), middleware.Requester(c).UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.BookingCreatedResponse{
		Message: "Booking successful.",
		Booking: dto.NewBookingResponse(booking),
	})
}

func (bc *BookingController) GetBooking(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	booking, err := bc.bookings.Get(c.Request.Context(), middleware.Requester(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewBookingResponse(booking))
}

func (bc *BookingController) GetUserBookings(c *gin.Context) {
	bookings, err := bc.bookings.ListForUser(c.Request.Context(), middleware.Requester(c).UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewBookingResponses(bookings))
}

// GetAllBookings chỉ dành cho admin
func (bc *BookingController) GetAllBookings(c *gin.Context) {
	bookings, err := bc.bookings.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewBookingResponses(bookings))
}

// UpdatePaymentStatus confirms payment of an existing booking.
func (bc *BookingController) UpdatePaymentStatus(c *gin.Context) {
	var req dto.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, validator.BindError(err))
		return
	}

	who := middleware.Requester(c)
	if _, err := bc.bookings.Get(c.Request.Context(), who, req.BookingID); err != nil {
		response.Error(c, err)
		return
	}
	booking, err := bc.bookings.ConfirmPayment(c.Request.Context(), req.BookingID, req.Receipt())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.PaymentConfirmedResponse{
		Success: true,
		Message: "Payment confirmed.",
		Booking: dto.NewBookingResponse(booking),
	})
}

// DeleteBooking godoc
// @Summary  Delete a booking and return its rooms
// @Tags     admin
// @Produce  json
// @Param    id path int true "booking id"
// @Success  200 {object} dto.MessageResponse
// @Failure  403 {object} response.ErrorBody
// @Failure  404 {object} response.ErrorBody
// @Router   /admin/bookings/{id} [delete]
func (bc *BookingController) DeleteBooking(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if _, err := bc.bookings.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.MessageResponse{Message: "Booking deleted successfully."})
}

// AdminGetBooking trả về booking kèm các payment đã ghi nhận
func (bc *BookingController) AdminGetBooking(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	booking, err := bc.bookings.Get(ctx, middleware.Requester(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	payments, err := bc.bookings.Payments(ctx, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.AdminBookingResponse{
		Booking:  dto.NewBookingResponse(booking),
		Payments: payments,
	})
}
