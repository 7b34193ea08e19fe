package services

import (
	"context"
	"io"
	"time"

	"hotelbooking/constants"
	"hotelbooking/dto"
	"hotelbooking/errors"
	"hotelbooking/models"
	"hotelbooking/services/logger"
	"hotelbooking/storage"
)

// searchWindow giới hạn số khách sạn được chấm điểm cho một truy vấn ?q=
const searchWindow = 500

type HotelService struct {
	hotels  storage.HotelStore
	photos  ObjectStorage
	logger  logger.Logger
	timeout time.Duration
}

func NewHotelService(hotels storage.HotelStore, photos ObjectStorage, log logger.Logger) *HotelService {
	if log == nil {
		log = logger.Nop{}
	}
	if photos == nil {
		photos = NewMemoryStorage()
	}
	return &HotelService{hotels: hotels, photos: photos, logger: log, timeout: DefaultOperationTimeout}
}

func (s *HotelService) Create(ctx context.Context, ownerID uint, req dto.CreateHotelRequest) (*models.Hotel, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	hotel := req.ToModel(ownerID)
	if err := s.hotels.Create(ctx, hotel); err != nil {
		return nil, err
	}
	s.logger.Info("hotel %d created by user %d with %d rooms", hotel.ID, ownerID, hotel.TotalRooms)
	return hotel, nil
}

func (s *HotelService) Get(ctx context.Context, id uint) (*models.Hotel, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.hotels.GetByID(ctx, id)
}

// List trả về một trang khách sạn. Khi có q, kết quả được xếp theo điểm phù hợp.
func (s *HotelService) List(ctx context.Context, query dto.ListQuery) ([]models.Hotel, int64, error) {
	query.Normalize()
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if query.Q == "" {
		return s.hotels.List(ctx, storage.HotelFilter{Offset: query.Offset(), Limit: query.Limit})
	}

	candidates, _, err := s.hotels.List(ctx, storage.HotelFilter{Limit: searchWindow})
	if err != nil {
		return nil, 0, err
	}
	scored := SearchHotels(candidates, query.Q)
	total := int64(len(scored))

	start := query.Offset()
	if start > len(scored) {
		start = len(scored)
	}
	end := start + query.Limit
	if end > len(scored) {
		end = len(scored)
	}
	page := make([]models.Hotel, 0, end-start)
	for _, sh := range scored[start:end] {
		page = append(page, sh.Hotel)
	}
	return page, total, nil
}

func (s *HotelService) ListByOwner(ctx context.Context, ownerID uint, query dto.ListQuery) ([]models.Hotel, int64, error) {
	query.Normalize()
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.hotels.List(ctx, storage.HotelFilter{OwnerID: ownerID, Offset: query.Offset(), Limit: query.Limit})
}

func (s *HotelService) editable(ctx context.Context, who Requester, id uint) (*models.Hotel, error) {
	hotel, err := s.hotels.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !who.IsAdmin && hotel.OwnerID != who.UserID {
		return nil, errors.ErrForbidden
	}
	return hotel, nil
}

// Update edits the descriptive fields of a hotel. Room counts are never changed here.
func (s *HotelService) Update(ctx context.Context, who Requester, id uint, req dto.UpdateHotelRequest) (*models.Hotel, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	hotel, err := s.editable(ctx, who, id)
	if err != nil {
		return nil, err
	}
	req.Apply(hotel)
	if err := s.hotels.Update(ctx, hotel); err != nil {
		return nil, err
	}
	return s.hotels.GetByID(ctx, id)
}

// Upload is one photo of an AddPhotos call.
type Upload struct {
	Filename string
	Open     func() (io.ReadCloser, error)
}

// AddPhotos uploads the files and appends their URLs to the hotel.
func (s *HotelService) AddPhotos(ctx context.Context, who Requester, id uint, files []Upload) (*models.Hotel, error) {
	if len(files) == 0 {
		return nil, errors.Validation("No files uploaded.")
	}
	if len(files) > constants.MaxUploadPhotos {
		return nil, errors.Validation("Too many files.")
	}
	for _, f := range files {
		if !IsAllowedPhoto(f.Filename) {
			return nil, errors.Validation("Only jpg, jpeg, png and webp images are allowed.")
		}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	hotel, err := s.editable(ctx, who, id)
	if err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(files))
	for _, f := range files {
		url, err := s.upload(ctx, f)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}

	hotel.Photos = append(hotel.Photos, urls...)
	if err := s.hotels.Update(ctx, hotel); err != nil {
		return nil, err
	}
	return hotel, nil
}

func (s *HotelService) upload(ctx context.Context, f Upload) (string, error) {
	src, err := f.Open()
	if err != nil {
		return "", errors.Validation("Cannot read uploaded file.")
	}
	defer src.Close()
	return s.photos.Upload(ctx, src, f.Filename)
}
