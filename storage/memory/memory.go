// Package memory provides in-process implementations of the storage contracts.
// They back local runs without Postgres (STORAGE_DRIVER=memory) and the tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"hotelbooking/constants"
	"hotelbooking/errors"
	"hotelbooking/models"
	"hotelbooking/services/logger"
	"hotelbooking/storage"
)

// DB is the shared state behind every memory store. One mutex guards all of
// it, which makes each store operation a critical section.
type DB struct {
	mu       sync.Mutex
	now      func() time.Time
	logger   logger.Logger
	seq      uint
	hotels   map[uint]models.Hotel
	bookings map[uint]models.Booking
	payments []models.Payment
	users    map[uint]models.User
	ratings  map[ratingKey]models.Rating
}

type ratingKey struct {
	hotelID uint
	userID  uint
}

func New(log logger.Logger) *DB {
	if log == nil {
		log = logger.Nop{}
	}
	return &DB{
		now:      time.Now,
		logger:   log,
		hotels:   make(map[uint]models.Hotel),
		bookings: make(map[uint]models.Booking),
		users:    make(map[uint]models.User),
		ratings:  make(map[ratingKey]models.Rating),
	}
}

func (db *DB) nextID() uint {
	db.seq++
	return db.seq
}

func (db *DB) Hotels() *HotelStore     { return &HotelStore{db: db} }
func (db *DB) Bookings() *BookingStore { return &BookingStore{db: db} }
func (db *DB) Payments() *PaymentStore { return &PaymentStore{db: db} }
func (db *DB) Users() *UserStore       { return &UserStore{db: db} }
func (db *DB) Ratings() *RatingStore   { return &RatingStore{db: db} }

var (
	_ storage.HotelStore   = (*HotelStore)(nil)
	_ storage.BookingStore = (*BookingStore)(nil)
	_ storage.PaymentStore = (*PaymentStore)(nil)
	_ storage.UserStore    = (*UserStore)(nil)
	_ storage.RatingStore  = (*RatingStore)(nil)
)

// HotelStore

type HotelStore struct {
	db *DB
}

func (s *HotelStore) Reserve(ctx context.Context, hotelID uint, count int) (*models.Hotel, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Storage("reserve rooms", err)
	}
	if count <= 0 {
		return nil, errors.Validation("Number of rooms must be positive.")
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	hotel, ok := s.db.hotels[hotelID]
	if !ok {
		return nil, errors.ErrHotelNotFound
	}
	if hotel.AvailableRooms < count {
		return nil, errors.ErrInsufficientInventory
	}
	hotel.AvailableRooms -= count
	s.db.hotels[hotelID] = hotel
	return &hotel, nil
}

func (s *HotelStore) Release(ctx context.Context, hotelID uint, count int) (*models.Hotel, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Storage("release rooms", err)
	}
	if count <= 0 {
		return nil, errors.Validation("Number of rooms must be positive.")
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	hotel, ok := s.db.hotels[hotelID]
	if !ok {
		return nil, errors.ErrHotelNotFound
	}
	next := hotel.AvailableRooms + count
	if next > hotel.TotalRooms {
		s.db.logger.Error("inventory overflow on hotel %d: %d available + %d released exceeds %d total, clamping",
			hotel.ID, hotel.AvailableRooms, count, hotel.TotalRooms)
		next = hotel.TotalRooms
	}
	hotel.AvailableRooms = next
	s.db.hotels[hotelID] = hotel
	return &hotel, nil
}

func (s *HotelStore) Create(ctx context.Context, hotel *models.Hotel) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	hotel.ID = s.db.nextID()
	hotel.AvailableRooms = hotel.TotalRooms
	hotel.CreatedAt = s.db.now()
	hotel.UpdatedAt = hotel.CreatedAt
	stored := *hotel
	stored.Owner = nil
	s.db.hotels[hotel.ID] = stored
	return nil
}

func (s *HotelStore) GetByID(ctx context.Context, id uint) (*models.Hotel, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	hotel, ok := s.db.hotels[id]
	if !ok {
		return nil, errors.ErrHotelNotFound
	}
	s.db.attachOwner(&hotel)
	return &hotel, nil
}

func (s *HotelStore) List(ctx context.Context, filter storage.HotelFilter) ([]models.Hotel, int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	var all []models.Hotel
	for _, h := range s.db.hotels {
		if filter.OwnerID != 0 && h.OwnerID != filter.OwnerID {
			continue
		}
		s.db.attachOwner(&h)
		all = append(all, h)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })

	total := int64(len(all))
	if filter.Offset >= len(all) {
		return []models.Hotel{}, total, nil
	}
	all = all[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(all) {
		all = all[:filter.Limit]
	}
	return all, total, nil
}

func (s *HotelStore) Update(ctx context.Context, hotel *models.Hotel) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	current, ok := s.db.hotels[hotel.ID]
	if !ok {
		return errors.ErrHotelNotFound
	}
	current.Name = hotel.Name
	current.Address = hotel.Address
	current.Photos = hotel.Photos
	current.Description = hotel.Description
	current.Amenities = hotel.Amenities
	current.ExtraInfo = hotel.ExtraInfo
	current.CheckIn = hotel.CheckIn
	current.CheckOut = hotel.CheckOut
	current.MaxGuests = hotel.MaxGuests
	current.PricePerNight = hotel.PricePerNight
	current.UpdatedAt = s.db.now()
	s.db.hotels[hotel.ID] = current
	return nil
}

func (s *HotelStore) UpdateRating(ctx context.Context, id uint, average float64, total int) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	hotel, ok := s.db.hotels[id]
	if !ok {
		return errors.ErrHotelNotFound
	}
	hotel.AverageRating = average
	hotel.TotalRatings = total
	s.db.hotels[id] = hotel
	return nil
}

func (db *DB) attachOwner(h *models.Hotel) {
	if u, ok := db.users[h.OwnerID]; ok {
		h.Owner = &u
	}
}

// BookingStore

type BookingStore struct {
	db *DB
}

func (s *BookingStore) Create(ctx context.Context, booking *models.Booking) error {
	if err := ctx.Err(); err != nil {
		return errors.Storage("create booking", err)
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	booking.ID = s.db.nextID()
	if booking.PaymentStatus == "" {
		booking.PaymentStatus = constants.PaymentStatusPending
	}
	booking.CreatedAt = s.db.now()
	booking.UpdatedAt = booking.CreatedAt
	stored := *booking
	stored.Hotel, stored.User = nil, nil
	s.db.bookings[booking.ID] = stored
	return nil
}

func (s *BookingStore) GetByID(ctx context.Context, id uint) (*models.Booking, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	b, ok := s.db.bookings[id]
	if !ok {
		return nil, errors.ErrBookingNotFound
	}
	s.db.populate(&b)
	return &b, nil
}

func (s *BookingStore) ListByUser(ctx context.Context, userID uint) ([]models.Booking, error) {
	return s.list(func(b models.Booking) bool { return b.UserID == userID }), nil
}

func (s *BookingStore) ListAll(ctx context.Context) ([]models.Booking, error) {
	return s.list(func(models.Booking) bool { return true }), nil
}

func (s *BookingStore) ListOrphaned(ctx context.Context) ([]models.Booking, error) {
	s.db.mu.Lock()
	users := make(map[uint]bool, len(s.db.users))
	for id := range s.db.users {
		users[id] = true
	}
	s.db.mu.Unlock()
	return s.list(func(b models.Booking) bool { return !users[b.UserID] }), nil
}

func (s *BookingStore) list(keep func(models.Booking) bool) []models.Booking {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	out := []models.Booking{}
	for _, b := range s.db.bookings {
		if keep(b) {
			s.db.populate(&b)
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (s *BookingStore) MarkPaid(ctx context.Context, id uint) error {
	if err := ctx.Err(); err != nil {
		return errors.Storage("mark booking paid", err)
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if err := s.db.checkPending(id); err != nil {
		return err
	}
	s.db.markPaid(id)
	return nil
}

// ConfirmPaid kiểm tra cả hai điều kiện trước khi ghi gì
func (s *BookingStore) ConfirmPaid(ctx context.Context, payment *models.Payment) error {
	if err := ctx.Err(); err != nil {
		return errors.Storage("confirm payment", err)
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if err := s.db.checkPending(payment.BookingID); err != nil {
		return err
	}
	if s.db.paymentExists(payment.PaymentID) {
		return errors.ErrPaymentRecorded
	}
	s.db.markPaid(payment.BookingID)
	s.db.appendPayment(payment)
	return nil
}

func (db *DB) checkPending(id uint) error {
	b, ok := db.bookings[id]
	if !ok {
		return errors.ErrBookingNotFound
	}
	if b.PaymentStatus != constants.PaymentStatusPending {
		return errors.ErrBookingAlreadyPaid
	}
	return nil
}

func (db *DB) markPaid(id uint) {
	b := db.bookings[id]
	b.PaymentStatus = constants.PaymentStatusPaid
	b.UpdatedAt = db.now()
	db.bookings[id] = b
}

func (s *BookingStore) Delete(ctx context.Context, id uint) (*models.Booking, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	b, ok := s.db.bookings[id]
	if !ok {
		return nil, errors.ErrBookingNotFound
	}
	delete(s.db.bookings, id)
	return &b, nil
}

func (db *DB) populate(b *models.Booking) {
	if h, ok := db.hotels[b.HotelID]; ok {
		b.Hotel = &h
	}
	if u, ok := db.users[b.UserID]; ok {
		b.User = &u
	}
}

// PaymentStore

type PaymentStore struct {
	db *DB
}

func (s *PaymentStore) Record(ctx context.Context, payment *models.Payment) error {
	if err := ctx.Err(); err != nil {
		return errors.Storage("record payment", err)
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if s.db.paymentExists(payment.PaymentID) {
		return errors.ErrPaymentRecorded
	}
	s.db.appendPayment(payment)
	return nil
}

func (db *DB) paymentExists(paymentID string) bool {
	for _, p := range db.payments {
		if p.PaymentID == paymentID {
			return true
		}
	}
	return false
}

func (db *DB) appendPayment(payment *models.Payment) {
	payment.ID = db.nextID()
	payment.CreatedAt = db.now()
	db.payments = append(db.payments, *payment)
}

func (s *PaymentStore) ListByBooking(ctx context.Context, bookingID uint) ([]models.Payment, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	out := []models.Payment{}
	for _, p := range s.db.payments {
		if p.BookingID == bookingID {
			out = append(out, p)
		}
	}
	return out, nil
}

// UserStore

type UserStore struct {
	db *DB
}

func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	user.Email = strings.ToLower(user.Email)
	for _, u := range s.db.users {
		if u.Email == user.Email {
			return errors.ErrUserExists
		}
	}
	user.ID = s.db.nextID()
	user.CreatedAt = s.db.now()
	user.UpdatedAt = user.CreatedAt
	s.db.users[user.ID] = *user
	return nil
}

func (s *UserStore) GetByID(ctx context.Context, id uint) (*models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	u, ok := s.db.users[id]
	if !ok {
		return nil, errors.ErrUserNotFound
	}
	return &u, nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	email = strings.ToLower(email)
	for _, u := range s.db.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, errors.ErrUserNotFound
}

// Delete only drops the user row; their bookings stay until the orphan sweep.
func (s *UserStore) Delete(ctx context.Context, id uint) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.users[id]; !ok {
		return errors.ErrUserNotFound
	}
	delete(s.db.users, id)
	return nil
}

// RatingStore

type RatingStore struct {
	db *DB
}

func (s *RatingStore) Upsert(ctx context.Context, rating *models.Rating) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	key := ratingKey{hotelID: rating.HotelID, userID: rating.UserID}
	if existing, ok := s.db.ratings[key]; ok {
		rating.ID = existing.ID
		rating.CreatedAt = existing.CreatedAt
	} else {
		rating.ID = s.db.nextID()
		rating.CreatedAt = s.db.now()
	}
	rating.UpdatedAt = s.db.now()
	s.db.ratings[key] = *rating
	return nil
}

func (s *RatingStore) Summary(ctx context.Context, hotelID uint) (float64, int, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	sum, total := 0, 0
	for k, r := range s.db.ratings {
		if k.hotelID == hotelID {
			sum += r.Value
			total++
		}
	}
	if total == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(total), total, nil
}

