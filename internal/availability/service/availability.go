package service

import (
	"context"
	"time"

	"tablebook/internal/bookings/repository"
	"tablebook/pkg/config"
	apperrors "tablebook/pkg/errors"
	"tablebook/pkg/model"
)

type AvailabilityService interface {
	ComputeAvailability(ctx context.Context, start, end string) ([]model.AvailabilitySummary, error)
}

// availabilityService recomputes slot availability from the booking list on
// every call; it holds no state between requests. The clock is injected so
// the "no past slots today" cutoff is testable.
type availabilityService struct {
	repo repository.BookingRepository
	cfg  *config.Config
	now  func() time.Time
}

func NewAvailabilityService(repo repository.BookingRepository, cfg *config.Config) AvailabilityService {
	return &availabilityService{
		repo: repo,
		cfg:  cfg,
		now:  time.Now,
	}
}

func (s *availabilityService) ComputeAvailability(ctx context.Context, start, end string) ([]model.AvailabilitySummary, error) {
	startDate, err := time.Parse(model.DateLayout, start)
	if err != nil {
		return nil, apperrors.InvalidInput("start must be a calendar date in YYYY-MM-DD format")
	}
	endDate, err := time.Parse(model.DateLayout, end)
	if err != nil {
		return nil, apperrors.InvalidInput("end must be a calendar date in YYYY-MM-DD format")
	}

	summaries := make([]model.AvailabilitySummary, 0)
	if endDate.Before(startDate) {
		return summaries, nil
	}

	bookings, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to load bookings for availability", "error", err)
		return nil, apperrors.Storage("Failed to get availability", err)
	}

	bookedTimes := make(map[string]map[string]struct{})
	for _, b := range bookings {
		if bookedTimes[b.Date] == nil {
			bookedTimes[b.Date] = make(map[string]struct{})
		}
		bookedTimes[b.Date][b.Time] = struct{}{}
	}

	// "Today" is defined by the server's local clock; no timezone is pinned
	// anywhere in the booking data, so client and server are assumed to share
	// one. The cutoff compares wall-clock HH:MM strings, which order
	// lexicographically because both sides are zero-padded.
	now := s.now()
	today := now.Format(model.DateLayout)
	cutoff := now.Format("15:04")

	for d := startDate; !d.After(endDate); d = d.AddDate(0, 0, 1) {
		dateStr := d.Format(model.DateLayout)
		summaries = append(summaries, summarizeDate(dateStr, today, cutoff, bookedTimes[dateStr]))
	}
	return summaries, nil
}

func summarizeDate(date, today, cutoff string, booked map[string]struct{}) model.AvailabilitySummary {
	available := make([]string, 0, model.SlotCount())

	// Past dates offer nothing; they must still produce a summary rather
	// than an error.
	if date >= today {
		for _, slot := range model.SlotGrid() {
			if _, taken := booked[slot]; taken {
				continue
			}
			// A slot today is only offerable if it starts strictly after now.
			if date == today && slot <= cutoff {
				continue
			}
			available = append(available, slot)
		}
	}

	return model.AvailabilitySummary{
		Date:           date,
		HasSlots:       len(available) > 0,
		AvailableSlots: len(available),
		AvailableTimes: available,
	}
}
