package validator

import (
	"strings"
	"testing"

	"hotelbooking/dto"
	"hotelbooking/errors"
)

func validRequest() dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		HotelID:       1,
		CheckIn:       "2025-05-01",
		CheckOut:      "2025-05-04",
		RoomType:      "Double",
		NumberOfRooms: 2,
		Phone:         "9876543210",
	}
}

func TestValidateBookingRequest(t *testing.T) {
	v, err := ValidateBookingRequest(validRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Nights != 3 {
		t.Fatalf("nights = %d, want 3", v.Nights)
	}
	if v.Guests != 1 {
		t.Fatalf("guests defaulted to %d, want 1", v.Guests)
	}
}

func TestValidateBookingRequestErrors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(r *dto.CreateBookingRequest)
		want   string
	}{
		{"bad phone", func(r *dto.CreateBookingRequest) { r.Phone = "12345" }, "Invalid phone number"},
		{"phone checked before missing fields", func(r *dto.CreateBookingRequest) { r.Phone = ""; r.HotelID = 0 }, "Invalid phone number"},
		{"missing fields", func(r *dto.CreateBookingRequest) { r.HotelID = 0; r.RoomType = "" }, "All required fields must be provided: hotelId, roomType"},
		{"bad room type", func(r *dto.CreateBookingRequest) { r.RoomType = "Penthouse" }, "Invalid room type."},
		{"zero rooms", func(r *dto.CreateBookingRequest) { r.NumberOfRooms = 0 }, "All required fields must be provided: numberOfRooms"},
		{"same day", func(r *dto.CreateBookingRequest) { r.CheckOut = r.CheckIn }, "Check-out date must be after check-in date."},
		{"reversed dates", func(r *dto.CreateBookingRequest) { r.CheckOut = "2025-04-20" }, "Check-out date must be after check-in date."},
		{"unparseable date", func(r *dto.CreateBookingRequest) { r.CheckIn = "soon" }, "Invalid check-in date."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)
			_, err := ValidateBookingRequest(req)
			if err == nil {
				t.Fatal("expected error")
			}
			if errors.CodeOf(err) != errors.ErrCodeValidation {
				t.Fatalf("code = %s", errors.CodeOf(err))
			}
			if msg := errors.From(err).Message; !strings.HasPrefix(msg, tc.want) {
				t.Fatalf("message = %q, want prefix %q", msg, tc.want)
			}
		})
	}
}

func TestIsValidPhone(t *testing.T) {
	for phone, want := range map[string]bool{
		"0123456789":  true,
		"012345678":   false,
		"01234567890": false,
		"01234abcde":  false,
	} {
		if got := IsValidPhone(phone); got != want {
			t.Errorf("IsValidPhone(%q) = %v", phone, got)
		}
	}
}
