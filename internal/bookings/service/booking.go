package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	bookingserrors "tablebook/internal/bookings/errors"
	"tablebook/internal/bookings/repository"
	"tablebook/internal/bookings/validator"
	"tablebook/pkg/config"
	apperrors "tablebook/pkg/errors"
	"tablebook/pkg/events"
	"tablebook/pkg/model"
)

type BookingService interface {
	Create(ctx context.Context, booking *model.Booking) error
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	List(ctx context.Context, date string) ([]*model.Booking, error)
	Delete(ctx context.Context, id string) error
}

type bookingService struct {
	repo      repository.BookingRepository
	validator *validator.BookingValidator
	publisher events.Publisher
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	validator *validator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *bookingService) Create(ctx context.Context, booking *model.Booking) error {
	s.sanitize(booking)
	if err := s.validate(booking); err != nil {
		return err
	}

	booking.ID = newBookingID()
	booking.CreatedAt = time.Now().UTC().Format(time.RFC3339)

	// Conflict check and append happen inside the repository's critical
	// section; the repository reports a taken slot as ErrSlotTaken.
	if err := s.repo.Create(ctx, booking); err != nil {
		if errors.Is(err, bookingserrors.ErrSlotTaken) {
			return apperrors.Conflict("This time slot is already booked")
		}
		s.cfg.Log.Error("Failed to create booking", "error", err)
		return apperrors.Storage("Failed to create booking", err)
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"date", booking.Date,
		"time", booking.Time,
		"guests", booking.Guests,
	)
	s.publish(ctx, events.TypeBookingCreated, booking)
	return nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		return nil, apperrors.Storage("Failed to get booking", err)
	}
	return booking, nil
}

func (s *bookingService) List(ctx context.Context, date string) ([]*model.Booking, error) {
	var (
		bookings []*model.Booking
		err      error
	)
	if date != "" {
		bookings, err = s.repo.FindByDate(ctx, date)
	} else {
		bookings, err = s.repo.FindAll(ctx)
	}
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings", "date", date, "error", err)
		return nil, apperrors.Storage("Failed to get bookings", err)
	}
	return bookings, nil
}

func (s *bookingService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Booking", id)
		}
		return apperrors.Storage("Failed to delete booking", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Booking", id)
		}
		s.cfg.Log.Error("Failed to delete booking", "id", id, "error", err)
		return apperrors.Storage("Failed to delete booking", err)
	}

	s.cfg.Log.Info("Booking deleted successfully", "id", id)
	s.publish(ctx, events.TypeBookingCancelled, booking)
	return nil
}

// --- Helpers ---

func (s *bookingService) sanitize(b *model.Booking) {
	b.Name = strings.TrimSpace(b.Name)
	b.Email = strings.TrimSpace(b.Email)
	b.Phone = strings.TrimSpace(b.Phone)
	b.Date = strings.TrimSpace(b.Date)
	b.Time = strings.TrimSpace(b.Time)
}

func (s *bookingService) validate(booking *model.Booking) error {
	err := s.validator.Validate(booking)
	if err == nil {
		return nil
	}
	s.cfg.Log.Warn("Booking validation failed", "error", err)

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		message := "Invalid booking details"
		if validationErrs.HasMissingFields() {
			message = "All fields are required"
		}
		return apperrors.Validation(message, map[string]any{"error": validationErrs.Error()})
	}
	return apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
}

// publish emits a lifecycle event best-effort: a broker outage must never
// fail the booking operation itself.
func (s *bookingService) publish(ctx context.Context, eventType string, booking *model.Booking) {
	event := events.NewBookingEvent(eventType, booking)
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.cfg.Log.Warn("Failed to publish booking event",
			"event_type", eventType,
			"booking_id", booking.ID,
			"error", err,
		)
	}
}

// newBookingID keeps the historical id shape: creation timestamp in unix
// millis plus a short random suffix.
func newBookingID() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}
