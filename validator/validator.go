package validator

import (
	"reflect"
	"regexp"
	"strings"
	"time"

	"hotelbooking/constants"
	"hotelbooking/dto"
	"hotelbooking/errors"
	"hotelbooking/utils"

	"github.com/gin-gonic/gin/binding"
	playground "github.com/go-playground/validator/v10"
)

var phoneRegex = regexp.MustCompile(`^[0-9]{10}$`)

var validate = newValidate()

func newValidate() *playground.Validate {
	v := playground.New()
	configure(v)
	return v
}

// RegisterGin installs the json tag names and the custom tags on gin's
// binding validator.
func RegisterGin() {
	if v, ok := binding.Validator.Engine().(*playground.Validate); ok {
		configure(v)
	}
}

func configure(v *playground.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("phone10", func(fl playground.FieldLevel) bool {
		return IsValidPhone(fl.Field().String())
	})
	_ = v.RegisterValidation("roomtype", func(fl playground.FieldLevel) bool {
		return IsValidRoomType(fl.Field().String())
	})
}

// ValidBooking is a booking request that passed validation, with dates parsed.
type ValidBooking struct {
	Request  dto.CreateBookingRequest
	CheckIn  time.Time
	CheckOut time.Time
	Nights   int
	Guests   int
}

// ValidateBookingRequest checks the request in a fixed order: phone, required
// fields, room type, then dates. It has no side effects.
func ValidateBookingRequest(req dto.CreateBookingRequest) (*ValidBooking, error) {
	if !IsValidPhone(req.Phone) {
		return nil, errors.Validation("Invalid phone number. Please enter a valid 10-digit phone number.")
	}

	if err := validate.Struct(req); err != nil {
		return nil, translate(err)
	}

	checkIn, err := utils.ParseDate(req.CheckIn)
	if err != nil {
		return nil, errors.Validation("Invalid check-in date.")
	}
	checkOut, err := utils.ParseDate(req.CheckOut)
	if err != nil {
		return nil, errors.Validation("Invalid check-out date.")
	}
	if !checkOut.After(checkIn) {
		return nil, errors.Validation("Check-out date must be after check-in date.")
	}
	nights := utils.CalendarDayDifference(checkOut, checkIn)
	if nights <= 0 {
		return nil, errors.Validation("Booking must cover at least one night.")
	}

	guests := req.NumberOfGuests
	if guests == 0 {
		guests = 1
	}

	return &ValidBooking{
		Request:  req,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Nights:   nights,
		Guests:   guests,
	}, nil
}

func IsValidPhone(phone string) bool {
	return phoneRegex.MatchString(phone)
}

func IsValidRoomType(roomType string) bool {
	for _, t := range constants.RoomTypes {
		if t == roomType {
			return true
		}
	}
	return false
}

// BindError converts a gin binding failure into a VALIDATION_ERROR.
func BindError(err error) error {
	return translate(err)
}

// translate turns validator errors into a single VALIDATION_ERROR. Missing
// fields are reported together before any other rule.
func translate(err error) error {
	var verrs playground.ValidationErrors
	if !errors.As(err, &verrs) {
		return errors.NewAppError(errors.ErrCodeValidation, "Invalid request body.", err)
	}

	var missing []string
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
		}
	}
	if len(missing) > 0 {
		return errors.NewAppError(errors.ErrCodeValidation,
			"All required fields must be provided: "+strings.Join(missing, ", "), err)
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "roomtype":
		return errors.NewAppError(errors.ErrCodeValidation, "Invalid room type.", err)
	case "email":
		return errors.NewAppError(errors.ErrCodeValidation, "Invalid email address.", err)
	case "min":
		if fe.Field() == "password" {
			return errors.NewAppError(errors.ErrCodeValidation, "Password must be at least 8 characters.", err)
		}
		return errors.NewAppError(errors.ErrCodeValidation, "Invalid value for "+fe.Field()+".", err)
	case "phone10":
		return errors.NewAppError(errors.ErrCodeValidation, "Invalid phone number. Please enter a valid 10-digit phone number.", err)
	default:
		return errors.NewAppError(errors.ErrCodeValidation, "Invalid value for "+fe.Field()+".", err)
	}
}
