package services

import (
	"context"
	"sync"
	"testing"

	"hotelbooking/constants"
	"hotelbooking/dto"
	"hotelbooking/errors"
	"hotelbooking/models"
	"hotelbooking/storage"
	"hotelbooking/storage/memory"
)

const testSecret = "secret"

type bookingFixture struct {
	db      *memory.DB
	service *BookingService
	hotel   *models.Hotel
	user    *models.User
}

func newBookingFixture(t *testing.T, bookings storage.BookingStore) *bookingFixture {
	t.Helper()
	db := memory.New(nil)
	if bookings == nil {
		bookings = db.Bookings()
	}

	user := &models.User{Name: "Minh", Email: "minh@example.com"}
	if err := db.Users().Create(context.Background(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	hotel := &models.Hotel{Name: "Hoi An Riverside", Address: "Hoi An", PricePerNight: 1000, TotalRooms: 5}
	if err := db.Hotels().Create(context.Background(), hotel); err != nil {
		t.Fatalf("create hotel: %v", err)
	}

	service := NewBookingService(BookingServiceOptions{
		Hotels:   db.Hotels(),
		Bookings: bookings,
		Payments: db.Payments(),
		Gateway:  NewRazorpayGateway("key", testSecret, "", 0),
	})
	return &bookingFixture{db: db, service: service, hotel: hotel, user: user}
}

func (f *bookingFixture) request(rooms int) dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		HotelID:       f.hotel.ID,
		CheckIn:       "2025-07-01",
		CheckOut:      "2025-07-04",
		RoomType:      constants.RoomTypeDouble,
		NumberOfRooms: rooms,
		Phone:         "0912345678",
	}
}

func (f *bookingFixture) available(t *testing.T) int {
	t.Helper()
	h, err := f.db.Hotels().GetByID(context.Background(), f.hotel.ID)
	if err != nil {
		t.Fatalf("get hotel: %v", err)
	}
	return h.AvailableRooms
}

func signedReceipt(orderID, paymentID string) dto.Receipt {
	return dto.Receipt{OrderID: orderID, PaymentID: paymentID, Signature: SignReceipt(testSecret, orderID, paymentID)}
}

func TestCreateBookingReservesRooms(t *testing.T) {
	f := newBookingFixture(t, nil)

	booking, err := f.service.Create(context.Background(), f.user.ID, f.request(2))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if booking.TotalPrice != 6000 {
		t.Fatalf("total = %v, want 6000", booking.TotalPrice)
	}
	if booking.PaymentStatus != constants.PaymentStatusPending {
		t.Fatalf("status = %s", booking.PaymentStatus)
	}
	if got := f.available(t); got != 3 {
		t.Fatalf("available = %d, want 3", got)
	}
}

func TestCreateBookingInsufficientInventory(t *testing.T) {
	f := newBookingFixture(t, nil)
	if _, err := f.service.Create(context.Background(), f.user.ID, f.request(2)); err != nil {
		t.Fatal(err)
	}

	_, err := f.service.Create(context.Background(), f.user.ID, f.request(4))
	if !errors.Is(err, errors.ErrInsufficientInventory) {
		t.Fatalf("expected ErrInsufficientInventory, got %v", err)
	}
	if got := f.available(t); got != 3 {
		t.Fatalf("available = %d, want 3", got)
	}
	all, _ := f.db.Bookings().ListAll(context.Background())
	if len(all) != 1 {
		t.Fatalf("%d bookings stored, want 1", len(all))
	}
}

func TestCreateBookingUnknownHotel(t *testing.T) {
	f := newBookingFixture(t, nil)
	req := f.request(1)
	req.HotelID = 404
	if _, err := f.service.Create(context.Background(), f.user.ID, req); !errors.Is(err, errors.ErrHotelNotFound) {
		t.Fatalf("expected ErrHotelNotFound, got %v", err)
	}
}

func TestCreateBookingValidationHasNoSideEffects(t *testing.T) {
	f := newBookingFixture(t, nil)
	req := f.request(2)
	req.Phone = "123"
	if _, err := f.service.Create(context.Background(), f.user.ID, req); errors.CodeOf(err) != errors.ErrCodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if got := f.available(t); got != 5 {
		t.Fatalf("available = %d, want 5", got)
	}
}

type failingCreate struct {
	storage.BookingStore
}

func (failingCreate) Create(ctx context.Context, b *models.Booking) error {
	return errors.Storage("create booking", errors.New("connection reset"))
}

func TestCreateBookingCompensatesOnStoreFailure(t *testing.T) {
	db := memory.New(nil)
	f := newBookingFixture(t, failingCreate{db.Bookings()})

	_, err := f.service.Create(context.Background(), f.user.ID, f.request(2))
	if errors.CodeOf(err) != errors.ErrCodeStorageUnavailable {
		t.Fatalf("expected storage error, got %v", err)
	}
	if got := f.available(t); got != 5 {
		t.Fatalf("rooms not released: available = %d", got)
	}
}

func TestConfirmPayment(t *testing.T) {
	f := newBookingFixture(t, nil)
	booking, err := f.service.Create(context.Background(), f.user.ID, f.request(2))
	if err != nil {
		t.Fatal(err)
	}

	paid, err := f.service.ConfirmPayment(context.Background(), booking.ID, signedReceipt("order_1", "pay_1"))
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if paid.PaymentStatus != constants.PaymentStatusPaid {
		t.Fatalf("status = %s", paid.PaymentStatus)
	}
	if paid.Hotel == nil || paid.User == nil {
		t.Fatal("paid booking should carry hotel and user")
	}
	payments, _ := f.service.Payments(context.Background(), booking.ID)
	if len(payments) != 1 || payments[0].PaymentID != "pay_1" || payments[0].Amount != 6000 {
		t.Fatalf("payments = %+v", payments)
	}
	if got := f.available(t); got != 3 {
		t.Fatalf("payment changed inventory: available = %d", got)
	}
}

func TestConfirmPaymentInvalidSignature(t *testing.T) {
	f := newBookingFixture(t, nil)
	booking, _ := f.service.Create(context.Background(), f.user.ID, f.request(2))

	receipt := dto.Receipt{OrderID: "order_1", PaymentID: "pay_1", Signature: "deadbeef"}
	if _, err := f.service.ConfirmPayment(context.Background(), booking.ID, receipt); !errors.Is(err, errors.ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
	got, _ := f.db.Bookings().GetByID(context.Background(), booking.ID)
	if got.PaymentStatus != constants.PaymentStatusPending {
		t.Fatalf("status = %s, want Pending", got.PaymentStatus)
	}
	if payments, _ := f.service.Payments(context.Background(), booking.ID); len(payments) != 0 {
		t.Fatalf("%d payments recorded", len(payments))
	}
}

func TestConfirmPaymentTwice(t *testing.T) {
	f := newBookingFixture(t, nil)
	booking, _ := f.service.Create(context.Background(), f.user.ID, f.request(1))
	if _, err := f.service.ConfirmPayment(context.Background(), booking.ID, signedReceipt("order_1", "pay_1")); err != nil {
		t.Fatal(err)
	}

	_, err := f.service.ConfirmPayment(context.Background(), booking.ID, signedReceipt("order_2", "pay_2"))
	if !errors.Is(err, errors.ErrBookingAlreadyPaid) {
		t.Fatalf("expected ErrBookingAlreadyPaid, got %v", err)
	}
}

func TestConfirmPaymentUnknownBooking(t *testing.T) {
	f := newBookingFixture(t, nil)
	if _, err := f.service.ConfirmPayment(context.Background(), 999, signedReceipt("o", "p")); !errors.Is(err, errors.ErrBookingNotFound) {
		t.Fatalf("expected ErrBookingNotFound, got %v", err)
	}
}

func TestVerifyAndBookCreatesPaidBooking(t *testing.T) {
	f := newBookingFixture(t, nil)
	receipt := signedReceipt("order_9", "pay_9")
	req := dto.VerifyPaymentRequest{
		RazorpayOrderID:   receipt.OrderID,
		RazorpayPaymentID: receipt.PaymentID,
		RazorpaySignature: receipt.Signature,
		HotelID:           f.hotel.ID,
		RoomType:          constants.RoomTypeSuite,
		CheckInDate:       "2025-08-10",
		CheckOutDate:      "2025-08-12",
		NumberOfRooms:     1,
		Phone:             "0912345678",
		TotalPrice:        1,
	}

	booking, err := f.service.VerifyAndBook(context.Background(), Requester{UserID: f.user.ID}, req)
	if err != nil {
		t.Fatalf("verify and book: %v", err)
	}
	if booking.PaymentStatus != constants.PaymentStatusPaid {
		t.Fatalf("status = %s", booking.PaymentStatus)
	}
	if booking.TotalPrice != 2000 {
		t.Fatalf("total = %v, want server-computed 2000", booking.TotalPrice)
	}
	if got := f.available(t); got != 4 {
		t.Fatalf("available = %d, want 4", got)
	}
}

func TestVerifyAndBookInvalidSignatureHasNoSideEffects(t *testing.T) {
	f := newBookingFixture(t, nil)
	req := dto.VerifyPaymentRequest{
		RazorpayOrderID:   "order_9",
		RazorpayPaymentID: "pay_9",
		RazorpaySignature: "forged",
		HotelID:           f.hotel.ID,
		RoomType:          constants.RoomTypeSuite,
		CheckInDate:       "2025-08-10",
		CheckOutDate:      "2025-08-12",
		NumberOfRooms:     1,
		Phone:             "0912345678",
	}

	if _, err := f.service.VerifyAndBook(context.Background(), Requester{UserID: f.user.ID}, req); !errors.Is(err, errors.ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
	if got := f.available(t); got != 5 {
		t.Fatalf("available = %d, want 5", got)
	}
	if all, _ := f.db.Bookings().ListAll(context.Background()); len(all) != 0 {
		t.Fatalf("%d bookings stored", len(all))
	}
}

func TestVerifyAndBookRollsBackOnDuplicatePayment(t *testing.T) {
	f := newBookingFixture(t, nil)
	first, _ := f.service.Create(context.Background(), f.user.ID, f.request(1))
	receipt := signedReceipt("order_1", "pay_1")
	if _, err := f.service.ConfirmPayment(context.Background(), first.ID, receipt); err != nil {
		t.Fatal(err)
	}

	req := dto.VerifyPaymentRequest{
		RazorpayOrderID:   receipt.OrderID,
		RazorpayPaymentID: receipt.PaymentID,
		RazorpaySignature: receipt.Signature,
		HotelID:           f.hotel.ID,
		RoomType:          constants.RoomTypeSingle,
		CheckInDate:       "2025-08-10",
		CheckOutDate:      "2025-08-11",
		NumberOfRooms:     2,
		Phone:             "0912345678",
	}
	if _, err := f.service.VerifyAndBook(context.Background(), Requester{UserID: f.user.ID}, req); !errors.Is(err, errors.ErrPaymentRecorded) {
		t.Fatalf("expected ErrPaymentRecorded, got %v", err)
	}
	if got := f.available(t); got != 4 {
		t.Fatalf("available = %d, want 4 after rollback", got)
	}
	if all, _ := f.db.Bookings().ListAll(context.Background()); len(all) != 1 {
		t.Fatalf("%d bookings stored, want 1", len(all))
	}
}

// flakyConfirm fails the first n ConfirmPaid calls before reaching the store.
type flakyConfirm struct {
	storage.BookingStore
	n int
}

func (f *flakyConfirm) ConfirmPaid(ctx context.Context, p *models.Payment) error {
	if f.n > 0 {
		f.n--
		return errors.Storage("confirm payment", context.DeadlineExceeded)
	}
	return f.BookingStore.ConfirmPaid(ctx, p)
}

func TestConfirmPaymentRetryAfterStoreFailure(t *testing.T) {
	f := newBookingFixture(t, nil)
	service := NewBookingService(BookingServiceOptions{
		Hotels:   f.db.Hotels(),
		Bookings: &flakyConfirm{BookingStore: f.db.Bookings(), n: 1},
		Payments: f.db.Payments(),
		Gateway:  NewRazorpayGateway("key", testSecret, "", 0),
	})
	booking, _ := service.Create(context.Background(), f.user.ID, f.request(1))
	receipt := signedReceipt("order_r", "pay_r")

	if _, err := service.ConfirmPayment(context.Background(), booking.ID, receipt); errors.CodeOf(err) != errors.ErrCodeStorageUnavailable {
		t.Fatalf("first attempt: expected storage error, got %v", err)
	}
	if list, _ := f.db.Payments().ListByBooking(context.Background(), booking.ID); len(list) != 0 {
		t.Fatalf("%d payments left by failed attempt", len(list))
	}

	paid, err := service.ConfirmPayment(context.Background(), booking.ID, receipt)
	if err != nil {
		t.Fatalf("retry with same receipt: %v", err)
	}
	if paid.PaymentStatus != constants.PaymentStatusPaid {
		t.Fatalf("status = %s", paid.PaymentStatus)
	}
	if list, _ := f.db.Payments().ListByBooking(context.Background(), booking.ID); len(list) != 1 {
		t.Fatalf("%d payments stored, want 1", len(list))
	}
}

func TestVerifyAndBookRejectsOtherUsersBooking(t *testing.T) {
	f := newBookingFixture(t, nil)
	booking, _ := f.service.Create(context.Background(), f.user.ID, f.request(1))
	receipt := signedReceipt("order_x", "pay_x")
	req := dto.VerifyPaymentRequest{
		RazorpayOrderID:   receipt.OrderID,
		RazorpayPaymentID: receipt.PaymentID,
		RazorpaySignature: receipt.Signature,
		BookingID:         booking.ID,
	}

	if _, err := f.service.VerifyAndBook(context.Background(), Requester{UserID: f.user.ID + 100}, req); !errors.Is(err, errors.ErrForbidden) {
		t.Fatalf("stranger: expected ErrForbidden, got %v", err)
	}
	got, _ := f.db.Bookings().GetByID(context.Background(), booking.ID)
	if got.PaymentStatus != constants.PaymentStatusPending {
		t.Fatalf("status = %s after rejected confirm", got.PaymentStatus)
	}
	if list, _ := f.db.Payments().ListByBooking(context.Background(), booking.ID); len(list) != 0 {
		t.Fatalf("%d payments stored for rejected confirm", len(list))
	}

	paid, err := f.service.VerifyAndBook(context.Background(), Requester{UserID: f.user.ID}, req)
	if err != nil || paid.PaymentStatus != constants.PaymentStatusPaid {
		t.Fatalf("owner: %v", err)
	}
}

func TestConcurrentCreateNeverOverbooks(t *testing.T) {
	f := newBookingFixture(t, nil)

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.service.Create(context.Background(), f.user.ID, f.request(1)); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	failed := 0
	for err := range errs {
		if !errors.Is(err, errors.ErrInsufficientInventory) {
			t.Fatalf("unexpected error: %v", err)
		}
		failed++
	}
	all, _ := f.db.Bookings().ListAll(context.Background())
	rooms := 0
	for _, b := range all {
		rooms += b.NumberOfRooms
	}
	if len(all) != 5 || rooms != 5 || failed != 15 {
		t.Fatalf("%d bookings, %d rooms, %d failures", len(all), rooms, failed)
	}
	if got := f.available(t); got != 0 {
		t.Fatalf("available = %d, want 0", got)
	}
}

func TestDeleteReleasesRooms(t *testing.T) {
	f := newBookingFixture(t, nil)
	booking, _ := f.service.Create(context.Background(), f.user.ID, f.request(2))

	if _, err := f.service.Delete(context.Background(), booking.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := f.available(t); got != 5 {
		t.Fatalf("available = %d, want 5", got)
	}
	if _, err := f.service.Delete(context.Background(), booking.ID); !errors.Is(err, errors.ErrBookingNotFound) {
		t.Fatalf("second delete: %v", err)
	}
}

func TestGetEnforcesOwnership(t *testing.T) {
	f := newBookingFixture(t, nil)
	booking, _ := f.service.Create(context.Background(), f.user.ID, f.request(1))

	if _, err := f.service.Get(context.Background(), Requester{UserID: f.user.ID}, booking.ID); err != nil {
		t.Fatalf("owner: %v", err)
	}
	if _, err := f.service.Get(context.Background(), Requester{UserID: 777, IsAdmin: true}, booking.ID); err != nil {
		t.Fatalf("admin: %v", err)
	}
	if _, err := f.service.Get(context.Background(), Requester{UserID: 777}, booking.ID); !errors.Is(err, errors.ErrForbidden) {
		t.Fatalf("stranger: expected ErrForbidden, got %v", err)
	}
}

func TestPurgeOrphans(t *testing.T) {
	f := newBookingFixture(t, nil)
	if _, err := f.service.Create(context.Background(), f.user.ID, f.request(2)); err != nil {
		t.Fatal(err)
	}
	_ = f.db.Users().Delete(context.Background(), f.user.ID)

	n, err := f.service.PurgeOrphans(context.Background())
	if err != nil || n != 1 {
		t.Fatalf("purged %d, err %v", n, err)
	}
	if got := f.available(t); got != 5 {
		t.Fatalf("available = %d, want 5", got)
	}
}
