package services

import (
	"context"
	"time"

	"hotelbooking/builders"
	"hotelbooking/commands"
	"hotelbooking/constants"
	"hotelbooking/dto"
	"hotelbooking/errors"
	"hotelbooking/models"
	"hotelbooking/queue"
	"hotelbooking/services/logger"
	"hotelbooking/services/notification"
	"hotelbooking/storage"
	"hotelbooking/validator"

	"github.com/goccy/go-json"
	"gorm.io/datatypes"
)

const DefaultOperationTimeout = 10 * time.Second

// Requester is the authenticated caller of an operation.
type Requester struct {
	UserID  uint
	IsAdmin bool
}

type BookingServiceOptions struct {
	Hotels   storage.HotelStore
	Bookings storage.BookingStore
	Payments storage.PaymentStore
	Gateway  PaymentGateway
	Notifier notification.Notifier
	Events   queue.Publisher
	Logger   logger.Logger
	// Timeout bounds every store and gateway call made by one operation.
	Timeout time.Duration
}

// BookingService điều phối vòng đời booking: giữ phòng, lưu booking, xác nhận
// thanh toán và xóa booking.
type BookingService struct {
	hotels   storage.HotelStore
	bookings storage.BookingStore
	payments storage.PaymentStore
	gateway  PaymentGateway
	notifier notification.Notifier
	events   queue.Publisher
	logger   logger.Logger
	timeout  time.Duration
	saga     commands.Saga
}

func NewBookingService(opts BookingServiceOptions) *BookingService {
	s := &BookingService{
		hotels:   opts.Hotels,
		bookings: opts.Bookings,
		payments: opts.Payments,
		gateway:  opts.Gateway,
		notifier: opts.Notifier,
		events:   opts.Events,
		logger:   opts.Logger,
		timeout:  opts.Timeout,
	}
	if s.notifier == nil {
		s.notifier = notification.Nop{}
	}
	if s.events == nil {
		s.events = queue.NopPublisher{}
	}
	if s.logger == nil {
		s.logger = logger.Nop{}
	}
	if s.timeout <= 0 {
		s.timeout = DefaultOperationTimeout
	}
	s.saga = commands.Saga{
		UndoTimeout: s.timeout,
		OnUndoError: func(cmd commands.BookingCommand, err error) {
			s.logger.Error("compensation %q failed: %v", cmd.Name(), err)
		},
	}
	return s
}

func (s *BookingService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

// Create validates the request, reserves the rooms and stores a Pending
// booking. If the booking cannot be stored the rooms are released again.
func (s *BookingService) Create(ctx context.Context, userID uint, req dto.CreateBookingRequest) (*models.Booking, error) {
	valid, err := validator.ValidateBookingRequest(req)
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	booking, steps, err := s.prepare(ctx, userID, valid)
	if err != nil {
		return nil, err
	}
	if err := s.saga.Run(ctx, steps...); err != nil {
		s.logger.Warn("create booking for user %d on hotel %d failed: %v", userID, valid.Request.HotelID, err)
		return nil, err
	}

	s.logger.Info("booking %d created: hotel %d, %d rooms, total %.2f", booking.ID, booking.HotelID, booking.NumberOfRooms, booking.TotalPrice)
	s.notify(constants.EventBookingCreated, booking)
	return booking, nil
}

// prepare loads the hotel and returns the unsaved booking together with the
// reserve and persist steps that create it.
func (s *BookingService) prepare(ctx context.Context, userID uint, valid *validator.ValidBooking) (*models.Booking, []commands.BookingCommand, error) {
	req := valid.Request
	hotel, err := s.hotels.GetByID(ctx, req.HotelID)
	if err != nil {
		return nil, nil, err
	}

	booking := builders.NewBookingBuilder().
		WithUser(userID).
		WithHotel(hotel).
		WithStay(valid.CheckIn, valid.CheckOut, valid.Nights).
		WithRooms(req.RoomType, req.NumberOfRooms).
		WithGuestInfo(valid.Guests, req.Phone, req.SpecialRequests).
		Build()

	steps := []commands.BookingCommand{
		commands.NewReserveRoomsCommand(s.hotels, hotel.ID, req.NumberOfRooms),
		commands.NewCreateBookingCommand(s.bookings, booking),
	}
	return booking, steps, nil
}

// ConfirmPayment verifies the gateway receipt and moves a Pending booking to
// Paid, recording the payment.
func (s *BookingService) ConfirmPayment(ctx context.Context, bookingID uint, receipt dto.Receipt) (*models.Booking, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !s.gateway.VerifySignature(receipt.OrderID, receipt.PaymentID, receipt.Signature) {
		s.logger.Warn("invalid payment signature for booking %d (order %s)", bookingID, receipt.OrderID)
		return nil, errors.ErrInvalidSignature
	}
	if err := s.pay(ctx, booking, receipt); err != nil {
		return nil, err
	}
	return s.paid(ctx, booking, receipt), nil
}

// VerifyAndBook checks a checkout receipt and then either confirms the
// booking it names or creates and confirms a new one in a single workflow.
// Nothing is reserved or written when the signature is invalid. An existing
// booking can only be confirmed by its owner or an admin.
func (s *BookingService) VerifyAndBook(ctx context.Context, who Requester, req dto.VerifyPaymentRequest) (*models.Booking, error) {
	userID := who.UserID
	receipt := req.Receipt()
	if !s.gateway.VerifySignature(receipt.OrderID, receipt.PaymentID, receipt.Signature) {
		s.logger.Warn("invalid payment signature from user %d (order %s)", userID, receipt.OrderID)
		return nil, errors.ErrInvalidSignature
	}
	if req.BookingID != 0 {
		if _, err := s.Get(ctx, who, req.BookingID); err != nil {
			return nil, err
		}
		return s.ConfirmPayment(ctx, req.BookingID, receipt)
	}

	valid, err := validator.ValidateBookingRequest(req.BookingRequest())
	if err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	booking, steps, err := s.prepare(ctx, userID, valid)
	if err != nil {
		return nil, err
	}
	steps = append(steps, commands.Func("confirm payment", func(ctx context.Context) error {
		return s.pay(ctx, booking, receipt)
	}, nil))

	if err := s.saga.Run(ctx, steps...); err != nil {
		s.logger.Warn("verify and book for user %d failed: %v", userID, err)
		return nil, err
	}
	s.logger.Info("booking %d created and paid (payment %s)", booking.ID, receipt.PaymentID)
	return s.paid(ctx, booking, receipt), nil
}

// pay records the receipt and marks the booking Paid in one store call, so a
// failure leaves neither write behind and the same receipt can be retried.
func (s *BookingService) pay(ctx context.Context, booking *models.Booking, receipt dto.Receipt) error {
	next := *booking
	if err := models.GetBookingState(next.PaymentStatus).Pay(&next); err != nil {
		return err
	}

	raw, _ := json.Marshal(map[string]string{
		"razorpay_order_id":   receipt.OrderID,
		"razorpay_payment_id": receipt.PaymentID,
	})
	payment := &models.Payment{
		BookingID: booking.ID,
		OrderID:   receipt.OrderID,
		PaymentID: receipt.PaymentID,
		Signature: receipt.Signature,
		Amount:    booking.TotalPrice,
		Currency:  constants.DefaultCurrency,
		Status:    constants.ReceiptStatusSuccess,
		Phone:     booking.Phone,
		Raw:       datatypes.JSON(raw),
	}
	if err := s.bookings.ConfirmPaid(ctx, payment); err != nil {
		return err
	}
	*booking = next
	return nil
}

// paid reloads the booking with its hotel and user and fans out the paid
// events. The in-memory booking is returned if the reload fails.
func (s *BookingService) paid(ctx context.Context, booking *models.Booking, receipt dto.Receipt) *models.Booking {
	if fresh, err := s.bookings.GetByID(ctx, booking.ID); err == nil {
		booking = fresh
	} else {
		s.logger.Warn("reload paid booking %d: %v", booking.ID, err)
	}

	s.notify(constants.EventBookingPaid, booking)

	event := queue.BookingConfirmedEvent{
		BookingID:   booking.ID,
		UserID:      booking.UserID,
		HotelID:     booking.HotelID,
		CheckIn:     booking.CheckInDate,
		CheckOut:    booking.CheckOutDate,
		Rooms:       booking.NumberOfRooms,
		TotalPrice:  booking.TotalPrice,
		Currency:    constants.DefaultCurrency,
		PaymentID:   receipt.PaymentID,
		ConfirmedAt: time.Now().UTC(),
	}
	if booking.User != nil {
		event.UserName = booking.User.Name
		event.UserEmail = booking.User.Email
	}
	if booking.Hotel != nil {
		event.HotelName = booking.Hotel.Name
	}
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.events.PublishBookingConfirmed(pubCtx, event); err != nil {
		s.logger.Warn("publish %s for booking %d: %v", constants.EventBookingConfirmed, booking.ID, err)
	}
	return booking
}

// Delete removes a booking and returns its rooms to the hotel.
func (s *BookingService) Delete(ctx context.Context, bookingID uint) (*models.Booking, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	booking, err := s.bookings.Delete(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := s.release(ctx, booking); err != nil {
		return nil, err
	}

	s.logger.Info("booking %d deleted, %d rooms returned to hotel %d", booking.ID, booking.NumberOfRooms, booking.HotelID)
	s.notify(constants.EventBookingDeleted, booking)
	return booking, nil
}

// release runs on a detached context: the booking row is already gone, so
// giving up here would leak the rooms.
func (s *BookingService) release(ctx context.Context, booking *models.Booking) error {
	relCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	_, err := s.hotels.Release(relCtx, booking.HotelID, booking.NumberOfRooms)
	if err == nil {
		return nil
	}
	if errors.Is(err, errors.ErrHotelNotFound) {
		s.logger.Warn("booking %d deleted but hotel %d no longer exists", booking.ID, booking.HotelID)
		return nil
	}
	s.logger.Error("booking %d deleted but releasing %d rooms of hotel %d failed: %v",
		booking.ID, booking.NumberOfRooms, booking.HotelID, err)
	return err
}

// Get returns a booking to its owner or to an admin.
func (s *BookingService) Get(ctx context.Context, who Requester, bookingID uint) (*models.Booking, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !who.IsAdmin && booking.UserID != who.UserID {
		return nil, errors.ErrForbidden
	}
	return booking, nil
}

func (s *BookingService) Payments(ctx context.Context, bookingID uint) ([]models.Payment, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.payments.ListByBooking(ctx, bookingID)
}

func (s *BookingService) ListForUser(ctx context.Context, userID uint) ([]models.Booking, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.bookings.ListByUser(ctx, userID)
}

func (s *BookingService) ListAll(ctx context.Context) ([]models.Booking, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.bookings.ListAll(ctx)
}

// PurgeOrphans deletes bookings whose user no longer exists and returns their
// rooms. It keeps going past individual failures and reports the first one.
func (s *BookingService) PurgeOrphans(ctx context.Context) (int, error) {
	listCtx, cancel := s.withTimeout(ctx)
	orphans, err := s.bookings.ListOrphaned(listCtx)
	cancel()
	if err != nil {
		return 0, err
	}

	var firstErr error
	purged := 0
	for _, o := range orphans {
		if ctx.Err() != nil {
			return purged, ctx.Err()
		}
		if _, err := s.Delete(ctx, o.ID); err != nil {
			if errors.Is(err, errors.ErrBookingNotFound) {
				continue
			}
			s.logger.Error("purge orphaned booking %d: %v", o.ID, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		purged++
	}
	if purged > 0 {
		s.logger.Info("purged %d orphaned bookings", purged)
	}
	return purged, firstErr
}

func (s *BookingService) notify(kind string, booking *models.Booking) {
	err := s.notifier.Publish(notification.Event{
		Type:          kind,
		BookingID:     booking.ID,
		HotelID:       booking.HotelID,
		UserID:        booking.UserID,
		Rooms:         booking.NumberOfRooms,
		PaymentStatus: booking.PaymentStatus,
	})
	if err != nil {
		s.logger.Warn("notify %s for booking %d: %v", kind, booking.ID, err)
	}
}

// CreateOrder asks the gateway for a checkout order.
func (s *BookingService) CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (*dto.GatewayOrder, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.gateway.CreateOrder(ctx, req.Amount, req.Currency)
}
