package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/slotbook/venue-booking/internal/calendar"
	"github.com/slotbook/venue-booking/internal/model"
)

// AvailabilityService answers which venues of a sport can serve a
// requested window. Read-only consumer of slot state.
type AvailabilityService struct {
	venues VenueStore
}

// NewAvailabilityService constructs an AvailabilityService.
func NewAvailabilityService(venues VenueStore) *AvailabilityService {
	return &AvailabilityService{venues: venues}
}

// FindAvailableVenues returns the distinct venues of the sport that have
// at least one available slot on the date fully covering the window.
// A slot that merely overlaps the window does not qualify.
func (s *AvailabilityService) FindAvailableVenues(ctx context.Context, q model.AvailabilityQuery) ([]model.Venue, error) {
	q.SportCode = strings.ToUpper(strings.TrimSpace(q.SportCode))
	if q.SportCode == "" {
		return nil, fmt.Errorf("%w: sport code is required", ErrInvalidInput)
	}
	if q.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if !calendar.ValidRange(q.StartTime, q.EndTime) {
		return nil, ErrInvalidRange
	}
	return s.venues.FindAvailableBySport(ctx, q.SportCode, q.Date, q.StartTime, q.EndTime)
}
