package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	bookingserrors "tablebook/internal/bookings/errors"
	"tablebook/pkg/config"
	"tablebook/pkg/logger"
	"tablebook/pkg/model"
)

type BookingRepository interface {
	FindAll(ctx context.Context) ([]*model.Booking, error)
	FindByDate(ctx context.Context, date string) ([]*model.Booking, error)
	FindByID(ctx context.Context, id string) (*model.Booking, error)
	Create(ctx context.Context, booking *model.Booking) error
	Delete(ctx context.Context, id string) error
}

// fileBookingRepository persists the booking list as a single pretty-printed
// JSON array. Every operation reads the whole file; every mutation rewrites
// it. The mutex makes the conflict check and append one critical section, so
// two concurrent creates cannot both claim the same slot.
type fileBookingRepository struct {
	path string
	mu   sync.RWMutex
	log  *logger.Logger
}

func NewFileBookingRepository(cfg *config.Config) BookingRepository {
	return &fileBookingRepository{
		path: cfg.BookingsFile,
		log:  cfg.Log,
	}
}

func (r *fileBookingRepository) FindAll(ctx context.Context) ([]*model.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.load(), nil
}

func (r *fileBookingRepository) FindByDate(ctx context.Context, date string) ([]*model.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*model.Booking, 0)
	for _, b := range r.load() {
		if b.Date == date {
			matched = append(matched, b)
		}
	}
	return matched, nil
}

func (r *fileBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, b := range r.load() {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, bookingserrors.ErrNotFound
}

func (r *fileBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	bookings := r.load()
	for _, b := range bookings {
		if b.Date == booking.Date && b.Time == booking.Time {
			return bookingserrors.ErrSlotTaken
		}
	}

	bookings = append(bookings, booking)
	return r.save(bookings)
}

func (r *fileBookingRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	bookings := r.load()
	for i, b := range bookings {
		if b.ID == id {
			bookings = append(bookings[:i], bookings[i+1:]...)
			return r.save(bookings)
		}
	}
	return bookingserrors.ErrNotFound
}

// load reads the full booking list. Unreadable or corrupt storage is treated
// as an empty list: availability must keep answering even if the file is
// damaged, so reads fail open and the error is only logged.
func (r *fileBookingRepository) load() []*model.Booking {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if !os.IsNotExist(err) {
			r.log.Error("Failed to read bookings file", "path", r.path, "error", err)
		}
		return []*model.Booking{}
	}

	var bookings []*model.Booking
	if err := json.Unmarshal(data, &bookings); err != nil {
		r.log.Error("Failed to parse bookings file", "path", r.path, "error", err)
		return []*model.Booking{}
	}
	if bookings == nil {
		bookings = []*model.Booking{}
	}
	return bookings
}

// save rewrites the whole file, creating the parent directory on first write.
func (r *fileBookingRepository) save(bookings []*model.Booking) error {
	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create bookings directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(bookings, "", "  ")
	if err != nil {
		return fmt.Errorf("encode bookings: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("write bookings file: %w", err)
	}
	return nil
}
