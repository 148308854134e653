package validator

import (
	"errors"
	"testing"

	"tablebook/pkg/logger"
	"tablebook/pkg/model"
)

func testValidator() *BookingValidator {
	return NewBookingValidator(logger.New(logger.Config{
		Level:   logger.ERROR,
		Format:  logger.JSON,
		Service: "test",
	}))
}

func validBooking() *model.Booking {
	return &model.Booking{
		Name:   "Ada Lovelace",
		Email:  "ada@example.com",
		Phone:  "+15551234567",
		Date:   "2025-06-01",
		Time:   "18:00",
		Guests: 2,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(b *model.Booking)
		wantError bool
	}{
		{
			name:      "valid booking",
			mutate:    func(b *model.Booking) {},
			wantError: false,
		},
		{
			name:      "missing name",
			mutate:    func(b *model.Booking) { b.Name = "" },
			wantError: true,
		},
		{
			name:      "missing email",
			mutate:    func(b *model.Booking) { b.Email = "" },
			wantError: true,
		},
		{
			name:      "malformed email",
			mutate:    func(b *model.Booking) { b.Email = "not-an-email" },
			wantError: true,
		},
		{
			name:      "missing phone",
			mutate:    func(b *model.Booking) { b.Phone = "" },
			wantError: true,
		},
		{
			name:      "bad date format",
			mutate:    func(b *model.Booking) { b.Date = "01/06/2025" },
			wantError: true,
		},
		{
			name:      "impossible date",
			mutate:    func(b *model.Booking) { b.Date = "2025-13-45" },
			wantError: true,
		},
		{
			name:      "time off the slot grid",
			mutate:    func(b *model.Booking) { b.Time = "18:15" },
			wantError: true,
		},
		{
			name:      "time before opening",
			mutate:    func(b *model.Booking) { b.Time = "10:30" },
			wantError: true,
		},
		{
			name:      "last grid slot",
			mutate:    func(b *model.Booking) { b.Time = "21:30" },
			wantError: false,
		},
		{
			name:      "zero guests",
			mutate:    func(b *model.Booking) { b.Guests = 0 },
			wantError: true,
		},
		{
			name:      "too many guests",
			mutate:    func(b *model.Booking) { b.Guests = 11 },
			wantError: true,
		},
		{
			name:      "max guests",
			mutate:    func(b *model.Booking) { b.Guests = 10 },
			wantError: false,
		},
	}

	v := testValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := validBooking()
			tt.mutate(b)
			err := v.Validate(b)
			if (err != nil) != tt.wantError {
				t.Errorf("Validate() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func TestMissingFieldsAreReported(t *testing.T) {
	v := testValidator()

	err := v.Validate(&model.Booking{})
	if err == nil {
		t.Fatal("expected error for empty booking")
	}

	var validationErrs ValidationErrors
	if !errors.As(err, &validationErrs) {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}
	if !validationErrs.HasMissingFields() {
		t.Error("empty booking must report missing fields")
	}
	if len(validationErrs) < 6 {
		t.Errorf("expected a failure per required field, got %d", len(validationErrs))
	}
}
