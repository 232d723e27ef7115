// Package service implements business logic, validation, and orchestration
// between HTTP handlers and the repository layer: the slot scheduler, the
// booking allocator, the availability query and venue/sport management.
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/slotbook/venue-booking/internal/calendar"
	"github.com/slotbook/venue-booking/internal/model"
)

// ErrInvalidRange is returned when a supplied time range has
// start >= end. It maps to a 400 at the HTTP layer.
var ErrInvalidRange = errors.New("start time must be before end time")

// ErrInvalidInput is wrapped by all request validation failures.
var ErrInvalidInput = errors.New("invalid input")

// VenueStore is the venue persistence consumed by the services.
// *repository.VenueRepository and the in-memory store both satisfy it.
type VenueStore interface {
	Create(ctx context.Context, req model.CreateVenueRequest) (*model.Venue, error)
	List(ctx context.Context) ([]model.Venue, error)
	GetByID(ctx context.Context, id string) (*model.Venue, error)
	Delete(ctx context.Context, id string) error
	FindAvailableBySport(ctx context.Context, sportCode string, date calendar.Date, start, end calendar.Clock) ([]model.Venue, error)
}

// SlotStore is the slot persistence consumed by the slot scheduler. Create
// must perform the same-venue same-date overlap check and the insert as
// one atomic unit.
type SlotStore interface {
	Create(ctx context.Context, venueID string, req model.CreateSlotRequest) (*model.Slot, error)
	ListByVenue(ctx context.Context, venueID string) ([]model.Slot, error)
}

// BookingStore is the booking persistence consumed by the allocator.
// Create must claim the slot exactly once under concurrency; Cancel must
// release it atomically.
type BookingStore interface {
	Create(ctx context.Context, req model.CreateBookingRequest) (*model.Booking, error)
	Cancel(ctx context.Context, id string) (*model.Booking, error)
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	List(ctx context.Context) ([]model.Booking, error)
}

// SportStore is the seeded sport catalog persistence.
type SportStore interface {
	CreateIfAbsent(ctx context.Context, code, name string) (bool, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	List(ctx context.Context) ([]model.Sport, error)
}

// isValidEmail does a basic structural check (no external deps).
func isValidEmail(email string) bool {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}
	return len(parts[0]) > 0 && strings.Contains(parts[1], ".")
}
