package service

import (
	"context"
	"testing"
	"time"

	"tablebook/pkg/config"
	apperrors "tablebook/pkg/errors"
	"tablebook/pkg/logger"
	"tablebook/pkg/model"
)

type mockBookingRepository struct {
	findAllFunc func(ctx context.Context) ([]*model.Booking, error)
}

func (m *mockBookingRepository) FindAll(ctx context.Context) ([]*model.Booking, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx)
	}
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) FindByDate(ctx context.Context, date string) ([]*model.Booking, error) {
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	return nil, nil
}

func (m *mockBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	return nil
}

func (m *mockBookingRepository) Delete(ctx context.Context, id string) error {
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:   logger.ERROR,
			Format:  logger.JSON,
			Service: "test",
		}),
	}
}

func newTestService(repo *mockBookingRepository, now time.Time) *availabilityService {
	return &availabilityService{
		repo: repo,
		cfg:  testConfig(),
		now:  func() time.Time { return now },
	}
}

// Clock fixed well before opening time on 2025-06-01.
var testNow = time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

func TestComputeAvailability_FutureDateNoBookings(t *testing.T) {
	svc := newTestService(&mockBookingRepository{}, testNow)

	summaries, err := svc.ComputeAvailability(context.Background(), "2025-06-02", "2025-06-02")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(summaries))
	}

	s := summaries[0]
	if s.Date != "2025-06-02" {
		t.Errorf("expected date 2025-06-02, got %s", s.Date)
	}
	if !s.HasSlots {
		t.Error("expected hasSlots true")
	}
	if s.AvailableSlots != 22 {
		t.Errorf("expected 22 available slots, got %d", s.AvailableSlots)
	}
	if len(s.AvailableTimes) != 22 {
		t.Errorf("expected 22 available times, got %d", len(s.AvailableTimes))
	}
	if s.AvailableTimes[0] != "11:00" || s.AvailableTimes[21] != "21:30" {
		t.Errorf("expected grid order 11:00..21:30, got %s..%s",
			s.AvailableTimes[0], s.AvailableTimes[len(s.AvailableTimes)-1])
	}
}

func TestComputeAvailability_BookedTimeExcluded(t *testing.T) {
	repo := &mockBookingRepository{
		findAllFunc: func(ctx context.Context) ([]*model.Booking, error) {
			return []*model.Booking{
				{ID: "1", Date: "2025-06-02", Time: "14:00"},
				{ID: "2", Date: "2025-06-03", Time: "18:30"},
			}, nil
		},
	}
	svc := newTestService(repo, testNow)

	summaries, err := svc.ComputeAvailability(context.Background(), "2025-06-02", "2025-06-03")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}

	first := summaries[0]
	if first.AvailableSlots != 21 {
		t.Errorf("expected 21 slots on 2025-06-02, got %d", first.AvailableSlots)
	}
	for _, slot := range first.AvailableTimes {
		if slot == "14:00" {
			t.Error("booked time 14:00 must not be offered")
		}
	}

	second := summaries[1]
	if second.AvailableSlots != 21 {
		t.Errorf("expected 21 slots on 2025-06-03, got %d", second.AvailableSlots)
	}
}

func TestComputeAvailability_TodayCutoff(t *testing.T) {
	tests := []struct {
		name      string
		now       time.Time
		wantSlots int
		wantFirst string
	}{
		{
			name:      "before opening",
			now:       time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
			wantSlots: 22,
			wantFirst: "11:00",
		},
		{
			name: "mid afternoon drops earlier slots",
			now:  time.Date(2025, 6, 1, 14, 10, 0, 0, time.UTC),
			// 11:00 through 14:00 are gone
			wantSlots: 15,
			wantFirst: "14:30",
		},
		{
			name: "exactly on a slot excludes that slot",
			now:  time.Date(2025, 6, 1, 21, 0, 0, 0, time.UTC),
			// only 21:30 starts strictly after 21:00
			wantSlots: 1,
			wantFirst: "21:30",
		},
		{
			name:      "after closing",
			now:       time.Date(2025, 6, 1, 22, 0, 0, 0, time.UTC),
			wantSlots: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(&mockBookingRepository{}, tt.now)

			summaries, err := svc.ComputeAvailability(context.Background(), "2025-06-01", "2025-06-01")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			s := summaries[0]
			if s.AvailableSlots != tt.wantSlots {
				t.Errorf("expected %d slots, got %d", tt.wantSlots, s.AvailableSlots)
			}
			if s.HasSlots != (tt.wantSlots > 0) {
				t.Errorf("hasSlots = %v inconsistent with %d slots", s.HasSlots, s.AvailableSlots)
			}
			if tt.wantSlots > 0 && s.AvailableTimes[0] != tt.wantFirst {
				t.Errorf("expected first slot %s, got %s", tt.wantFirst, s.AvailableTimes[0])
			}
		})
	}
}

func TestComputeAvailability_PastDateHasNoSlots(t *testing.T) {
	svc := newTestService(&mockBookingRepository{}, testNow)

	summaries, err := svc.ComputeAvailability(context.Background(), "2025-05-30", "2025-05-31")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}
	for _, s := range summaries {
		if s.HasSlots || s.AvailableSlots != 0 {
			t.Errorf("past date %s must have no slots, got %d", s.Date, s.AvailableSlots)
		}
		if s.AvailableTimes == nil || len(s.AvailableTimes) != 0 {
			t.Errorf("past date %s must report an empty times list", s.Date)
		}
	}
}

func TestComputeAvailability_RangeSpansPastTodayFuture(t *testing.T) {
	svc := newTestService(&mockBookingRepository{}, testNow)

	summaries, err := svc.ComputeAvailability(context.Background(), "2025-05-31", "2025-06-02")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summaries) != 3 {
		t.Fatalf("expected 3 summaries, got %d", len(summaries))
	}
	if summaries[0].AvailableSlots != 0 {
		t.Errorf("past date: expected 0 slots, got %d", summaries[0].AvailableSlots)
	}
	if summaries[1].AvailableSlots != 22 {
		t.Errorf("today before opening: expected 22 slots, got %d", summaries[1].AvailableSlots)
	}
	if summaries[2].AvailableSlots != 22 {
		t.Errorf("future date: expected 22 slots, got %d", summaries[2].AvailableSlots)
	}
}

func TestComputeAvailability_StartAfterEnd(t *testing.T) {
	svc := newTestService(&mockBookingRepository{}, testNow)

	summaries, err := svc.ComputeAvailability(context.Background(), "2025-06-10", "2025-06-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summaries) != 0 {
		t.Errorf("expected empty sequence, got %d summaries", len(summaries))
	}
}

func TestComputeAvailability_InvalidDates(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
	}{
		{"garbage start", "not-a-date", "2025-06-01"},
		{"garbage end", "2025-06-01", "01/06/2025"},
		{"empty start", "", "2025-06-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(&mockBookingRepository{}, testNow)

			_, err := svc.ComputeAvailability(context.Background(), tt.start, tt.end)
			if err == nil {
				t.Fatal("expected error for invalid dates")
			}
			appErr, ok := err.(*apperrors.AppError)
			if !ok || appErr.Code != apperrors.CodeInvalidInput {
				t.Errorf("expected INVALID_INPUT, got %v", err)
			}
		})
	}
}

func TestComputeAvailability_Idempotent(t *testing.T) {
	repo := &mockBookingRepository{
		findAllFunc: func(ctx context.Context) ([]*model.Booking, error) {
			return []*model.Booking{
				{ID: "1", Date: "2025-06-02", Time: "12:30"},
			}, nil
		},
	}
	svc := newTestService(repo, testNow)

	first, err := svc.ComputeAvailability(context.Background(), "2025-06-01", "2025-06-03")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.ComputeAvailability(context.Background(), "2025-06-01", "2025-06-03")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("summary counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Date != second[i].Date ||
			first[i].AvailableSlots != second[i].AvailableSlots ||
			first[i].HasSlots != second[i].HasSlots {
			t.Errorf("summary %d differs between identical calls", i)
		}
	}
}
