package storage

import (
	"context"
	"fmt"
	"time"

	"hotelbooking/models"
	"hotelbooking/services/logger"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// GetFromRedis lấy data từ Redis. found is false on a cache miss.
func GetFromRedis(ctx context.Context, rdb *redis.Client, key string, target interface{}) (bool, error) {
	cachedData, err := rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(cachedData, target); err != nil {
		return false, err
	}
	return true, nil
}

// SetToRedis lưu dữ liệu vào Redis
func SetToRedis(ctx context.Context, rdb *redis.Client, key string, value interface{}, ttl time.Duration) error {
	dataJSON, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return rdb.Set(ctx, key, dataJSON, ttl).Err()
}

// DeleteFromRedis xóa cache Redis
func DeleteFromRedis(ctx context.Context, rdb *redis.Client, keys ...string) error {
	return rdb.Del(ctx, keys...).Err()
}

const (
	hotelKeyPrefix   = "hotel:"
	hotelListVersion = "hotels:list:version"
	defaultHotelTTL  = 10 * time.Minute
)

// CachedHotelStore is a read-through cache in front of a HotelStore. Every
// write, reserve and release goes to the inner store first and then drops the
// cached copies. Inventory decisions never read from the cache.
type CachedHotelStore struct {
	HotelStore
	rdb    *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedHotelStore(inner HotelStore, rdb *redis.Client, ttl time.Duration, log logger.Logger) *CachedHotelStore {
	if ttl <= 0 {
		ttl = defaultHotelTTL
	}
	if log == nil {
		log = logger.Nop{}
	}
	return &CachedHotelStore{HotelStore: inner, rdb: rdb, ttl: ttl, logger: log}
}

func hotelKey(id uint) string {
	return fmt.Sprintf("%s%d", hotelKeyPrefix, id)
}

func (s *CachedHotelStore) listKey(ctx context.Context, filter HotelFilter) string {
	version, err := s.rdb.Get(ctx, hotelListVersion).Int64()
	if err != nil && err != redis.Nil {
		s.logger.Warn("read hotel list version: %v", err)
	}
	return fmt.Sprintf("hotels:list:v%d:%d:%d:%d", version, filter.OwnerID, filter.Offset, filter.Limit)
}

func (s *CachedHotelStore) GetByID(ctx context.Context, id uint) (*models.Hotel, error) {
	var hotel models.Hotel
	if found, err := GetFromRedis(ctx, s.rdb, hotelKey(id), &hotel); err != nil {
		s.logger.Warn("hotel cache read %d: %v", id, err)
	} else if found {
		return &hotel, nil
	}

	fresh, err := s.HotelStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := SetToRedis(ctx, s.rdb, hotelKey(id), fresh, s.ttl); err != nil {
		s.logger.Warn("hotel cache write %d: %v", id, err)
	}
	return fresh, nil
}

type cachedHotelPage struct {
	Hotels []models.Hotel `json:"hotels"`
	Total  int64          `json:"total"`
}

func (s *CachedHotelStore) List(ctx context.Context, filter HotelFilter) ([]models.Hotel, int64, error) {
	key := s.listKey(ctx, filter)
	var page cachedHotelPage
	if found, err := GetFromRedis(ctx, s.rdb, key, &page); err != nil {
		s.logger.Warn("hotel list cache read: %v", err)
	} else if found {
		return page.Hotels, page.Total, nil
	}

	hotels, total, err := s.HotelStore.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	if err := SetToRedis(ctx, s.rdb, key, cachedHotelPage{Hotels: hotels, Total: total}, s.ttl); err != nil {
		s.logger.Warn("hotel list cache write: %v", err)
	}
	return hotels, total, nil
}

func (s *CachedHotelStore) invalidate(ctx context.Context, id uint) {
	if id != 0 {
		if err := DeleteFromRedis(ctx, s.rdb, hotelKey(id)); err != nil {
			s.logger.Warn("hotel cache invalidate %d: %v", id, err)
		}
	}
	if err := s.rdb.Incr(ctx, hotelListVersion).Err(); err != nil {
		s.logger.Warn("hotel list cache invalidate: %v", err)
	}
}

func (s *CachedHotelStore) Reserve(ctx context.Context, hotelID uint, count int) (*models.Hotel, error) {
	hotel, err := s.HotelStore.Reserve(ctx, hotelID, count)
	if err == nil {
		s.invalidate(ctx, hotelID)
	}
	return hotel, err
}

func (s *CachedHotelStore) Release(ctx context.Context, hotelID uint, count int) (*models.Hotel, error) {
	hotel, err := s.HotelStore.Release(ctx, hotelID, count)
	if err == nil {
		s.invalidate(ctx, hotelID)
	}
	return hotel, err
}

func (s *CachedHotelStore) Create(ctx context.Context, hotel *models.Hotel) error {
	if err := s.HotelStore.Create(ctx, hotel); err != nil {
		return err
	}
	s.invalidate(ctx, 0)
	return nil
}

func (s *CachedHotelStore) Update(ctx context.Context, hotel *models.Hotel) error {
	if err := s.HotelStore.Update(ctx, hotel); err != nil {
		return err
	}
	s.invalidate(ctx, hotel.ID)
	return nil
}

func (s *CachedHotelStore) UpdateRating(ctx context.Context, id uint, average float64, total int) error {
	if err := s.HotelStore.UpdateRating(ctx, id, average, total); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}
