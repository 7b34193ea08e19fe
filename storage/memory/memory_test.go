package memory

import (
	"context"
	"sync"
	"testing"

	"hotelbooking/errors"
	"hotelbooking/models"
)

func seedHotel(t *testing.T, db *DB, rooms int) *models.Hotel {
	t.Helper()
	h := &models.Hotel{Name: "Sea View", Address: "Da Nang", PricePerNight: 1000, TotalRooms: rooms}
	if err := db.Hotels().Create(context.Background(), h); err != nil {
		t.Fatalf("create hotel: %v", err)
	}
	return h
}

func TestCreateStartsFullyAvailable(t *testing.T) {
	db := New(nil)
	h := seedHotel(t, db, 5)
	if h.AvailableRooms != 5 {
		t.Fatalf("available = %d, want 5", h.AvailableRooms)
	}
}

func TestConcurrentReserveNeverOverbooks(t *testing.T) {
	db := New(nil)
	h := seedHotel(t, db, 10)
	hotels := db.Hotels()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := hotels.Reserve(context.Background(), h.ID, 1); err == nil {
				mu.Lock()
				success++
				mu.Unlock()
			} else if !errors.Is(err, errors.ErrInsufficientInventory) {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if success != 10 {
		t.Fatalf("%d reservations succeeded, want 10", success)
	}
	got, _ := hotels.GetByID(context.Background(), h.ID)
	if got.AvailableRooms != 0 {
		t.Fatalf("available = %d, want 0", got.AvailableRooms)
	}
	if err := got.CheckInventory(); err != nil {
		t.Fatal(err)
	}
}

func TestReserveFailureLeavesCounter(t *testing.T) {
	db := New(nil)
	h := seedHotel(t, db, 3)
	if _, err := db.Hotels().Reserve(context.Background(), h.ID, 4); !errors.Is(err, errors.ErrInsufficientInventory) {
		t.Fatalf("expected ErrInsufficientInventory, got %v", err)
	}
	got, _ := db.Hotels().GetByID(context.Background(), h.ID)
	if got.AvailableRooms != 3 {
		t.Fatalf("available = %d, want 3", got.AvailableRooms)
	}
}

func TestReleaseClampsAtTotal(t *testing.T) {
	db := New(nil)
	h := seedHotel(t, db, 5)
	hotels := db.Hotels()
	if _, err := hotels.Reserve(context.Background(), h.ID, 1); err != nil {
		t.Fatal(err)
	}
	got, err := hotels.Release(context.Background(), h.ID, 3)
	if err != nil {
		t.Fatalf("release: %v", err)
	}
	if got.AvailableRooms != 5 {
		t.Fatalf("available = %d, want clamp at 5", got.AvailableRooms)
	}
}

func TestReserveRejectsBadInput(t *testing.T) {
	db := New(nil)
	h := seedHotel(t, db, 5)
	if _, err := db.Hotels().Reserve(context.Background(), h.ID, 0); errors.CodeOf(err) != errors.ErrCodeValidation {
		t.Fatalf("zero count: %v", err)
	}
	if _, err := db.Hotels().Reserve(context.Background(), 999, 1); !errors.Is(err, errors.ErrHotelNotFound) {
		t.Fatalf("missing hotel: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := db.Hotels().Reserve(ctx, h.ID, 1); errors.CodeOf(err) != errors.ErrCodeTimeout {
		t.Fatalf("cancelled ctx: %v", err)
	}
}

func TestMarkPaidOnlyFromPending(t *testing.T) {
	db := New(nil)
	bookings := db.Bookings()
	b := &models.Booking{UserID: 1, HotelID: 1, NumberOfRooms: 1}
	if err := bookings.Create(context.Background(), b); err != nil {
		t.Fatal(err)
	}
	if err := bookings.MarkPaid(context.Background(), b.ID); err != nil {
		t.Fatalf("first MarkPaid: %v", err)
	}
	if err := bookings.MarkPaid(context.Background(), b.ID); !errors.Is(err, errors.ErrBookingAlreadyPaid) {
		t.Fatalf("second MarkPaid: %v", err)
	}
}

func TestConfirmPaidWritesBothOrNothing(t *testing.T) {
	db := New(nil)
	ctx := context.Background()
	b := &models.Booking{UserID: 1, HotelID: 1, NumberOfRooms: 1}
	_ = db.Bookings().Create(ctx, b)
	_ = db.Payments().Record(ctx, &models.Payment{BookingID: 99, PaymentID: "pay_taken"})

	// payment id đã tồn tại: booking vẫn Pending
	err := db.Bookings().ConfirmPaid(ctx, &models.Payment{BookingID: b.ID, PaymentID: "pay_taken"})
	if !errors.Is(err, errors.ErrPaymentRecorded) {
		t.Fatalf("duplicate payment: %v", err)
	}
	got, _ := db.Bookings().GetByID(ctx, b.ID)
	if got.PaymentStatus != "Pending" {
		t.Fatalf("status = %s after failed confirm", got.PaymentStatus)
	}

	if err := db.Bookings().ConfirmPaid(ctx, &models.Payment{BookingID: b.ID, PaymentID: "pay_1"}); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	// booking đã Paid: không ghi thêm payment
	err = db.Bookings().ConfirmPaid(ctx, &models.Payment{BookingID: b.ID, PaymentID: "pay_2"})
	if !errors.Is(err, errors.ErrBookingAlreadyPaid) {
		t.Fatalf("second confirm: %v", err)
	}
	list, _ := db.Payments().ListByBooking(ctx, b.ID)
	if len(list) != 1 || list[0].PaymentID != "pay_1" {
		t.Fatalf("payments = %+v", list)
	}

	err = db.Bookings().ConfirmPaid(ctx, &models.Payment{BookingID: 12345, PaymentID: "pay_3"})
	if !errors.Is(err, errors.ErrBookingNotFound) {
		t.Fatalf("missing booking: %v", err)
	}
	if list, _ := db.Payments().ListByBooking(ctx, 12345); len(list) != 0 {
		t.Fatalf("payment stored for missing booking")
	}
}

func TestDeleteReturnsRowOnce(t *testing.T) {
	db := New(nil)
	bookings := db.Bookings()
	b := &models.Booking{UserID: 1, HotelID: 1, NumberOfRooms: 2}
	_ = bookings.Create(context.Background(), b)

	removed, err := bookings.Delete(context.Background(), b.ID)
	if err != nil || removed.NumberOfRooms != 2 {
		t.Fatalf("first delete: %v %+v", err, removed)
	}
	if _, err := bookings.Delete(context.Background(), b.ID); !errors.Is(err, errors.ErrBookingNotFound) {
		t.Fatalf("second delete: %v", err)
	}
}

func TestPaymentRecordRejectsDuplicate(t *testing.T) {
	db := New(nil)
	payments := db.Payments()
	p := &models.Payment{BookingID: 1, OrderID: "order_1", PaymentID: "pay_1", Signature: "sig"}
	if err := payments.Record(context.Background(), p); err != nil {
		t.Fatal(err)
	}
	dup := &models.Payment{BookingID: 1, OrderID: "order_1", PaymentID: "pay_1", Signature: "sig"}
	if err := payments.Record(context.Background(), dup); !errors.Is(err, errors.ErrPaymentRecorded) {
		t.Fatalf("expected ErrPaymentRecorded, got %v", err)
	}
	list, _ := payments.ListByBooking(context.Background(), 1)
	if len(list) != 1 {
		t.Fatalf("%d payments stored", len(list))
	}
}

func TestListOrphaned(t *testing.T) {
	db := New(nil)
	u := &models.User{Name: "An", Email: "an@example.com"}
	_ = db.Users().Create(context.Background(), u)
	_ = db.Bookings().Create(context.Background(), &models.Booking{UserID: u.ID, HotelID: 1, NumberOfRooms: 1})

	orphans, _ := db.Bookings().ListOrphaned(context.Background())
	if len(orphans) != 0 {
		t.Fatalf("%d orphans before delete", len(orphans))
	}
	if err := db.Users().Delete(context.Background(), u.ID); err != nil {
		t.Fatal(err)
	}
	orphans, _ = db.Bookings().ListOrphaned(context.Background())
	if len(orphans) != 1 {
		t.Fatalf("%d orphans after delete, want 1", len(orphans))
	}
}

func TestUserDelete(t *testing.T) {
	db := New(nil)
	u := &models.User{Name: "Lan", Email: "lan@example.com"}
	_ = db.Users().Create(context.Background(), u)

	if err := db.Users().Delete(context.Background(), u.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := db.Users().GetByID(context.Background(), u.ID); !errors.Is(err, errors.ErrUserNotFound) {
		t.Fatalf("get after delete: %v", err)
	}
	if err := db.Users().Delete(context.Background(), u.ID); !errors.Is(err, errors.ErrUserNotFound) {
		t.Fatalf("second delete: %v", err)
	}
}
