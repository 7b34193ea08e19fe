package controllers

import (
	"io"
	"mime/multipart"

	"hotelbooking/dto"
	"hotelbooking/middleware"
	"hotelbooking/response"
	"hotelbooking/services"
	"hotelbooking/validator"

	"github.com/gin-gonic/gin"
)

type HotelController struct {
	hotels *services.HotelService
}

func NewHotelController(hotels *services.HotelService) *HotelController {
	return &HotelController{hotels: hotels}
}

func (hc *HotelController) CreateHotel(c *gin.Context) {
	var req dto.CreateHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, validator.BindError(err))
		return
	}
	hotel, err := hc.hotels.Create(c.Request.Context(), middleware.Requester(c).UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, hotel)
}

// GetHotels godoc
// @Summary  List hotels, optionally fuzzy-searched with q
// @Tags     hotels
// @Produce  json
// @Param    q     query string false "search text"
// @Param    page  query int    false "page"
// @Param    limit query int    false "page size"
// @Success  200 {object} response.PageBody
// @Router   /hotels [get]
func (hc *HotelController) GetHotels(c *gin.Context) {
	var query dto.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, validator.BindError(err))
		return
	}
	query.Normalize()

	hotels, total, err := hc.hotels.List(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, hotels, query.Page, query.Limit, int(total))
}

// GetUserPlaces trả về khách sạn thuộc user hiện tại
func (hc *HotelController) GetUserPlaces(c *gin.Context) {
	var query dto.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, validator.BindError(err))
		return
	}
	query.Normalize()

	hotels, total, err := hc.hotels.ListByOwner(c.Request.Context(), middleware.Requester(c).UserID, query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, hotels, query.Page, query.Limit, int(total))
}

func (hc *HotelController) GetHotel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	hotel, err := hc.hotels.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, hotel)
}

func (hc *HotelController) UpdateHotel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, validator.BindError(err))
		return
	}
	hotel, err := hc.hotels.Update(c.Request.Context(), middleware.Requester(c), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, hotel)
}

// UploadPhotos nhận multipart field "photos"
func (hc *HotelController) UploadPhotos(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	form, err := c.MultipartForm()
	if err != nil {
		response.BadRequest(c, "Invalid multipart form.")
		return
	}

	files := form.File["photos"]
	uploads := make([]services.Upload, 0, len(files))
	for _, fh := range files {
		fh := fh
		uploads = append(uploads, services.Upload{
			Filename: fh.Filename,
			Open:     func() (io.ReadCloser, error) { return openPart(fh) },
		})
	}

	hotel, err := hc.hotels.AddPhotos(c.Request.Context(), middleware.Requester(c), id, uploads)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, hotel)
}

func openPart(fh *multipart.FileHeader) (io.ReadCloser, error) {
	return fh.Open()
}
