package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/slotbook/venue-booking/internal/calendar"
	"github.com/slotbook/venue-booking/internal/events"
	"github.com/slotbook/venue-booking/internal/model"
)

// SlotService is the slot scheduler: it governs slot existence and the
// non-overlap invariant within a venue.
type SlotService struct {
	venues VenueStore
	slots  SlotStore
	pub    events.Publisher
	logger *zap.Logger
}

// NewSlotService constructs a SlotService with its dependencies.
func NewSlotService(venues VenueStore, slots SlotStore, pub events.Publisher, logger *zap.Logger) *SlotService {
	return &SlotService{venues: venues, slots: slots, pub: pub, logger: logger}
}

// CreateSlot validates the request and inserts a new slot for the venue.
// The store rejects ranges overlapping an existing slot on the same venue
// and date; cross-date and cross-venue ranges never conflict.
func (s *SlotService) CreateSlot(ctx context.Context, venueID string, req model.CreateSlotRequest) (*model.Slot, error) {
	if venueID == "" {
		return nil, fmt.Errorf("%w: venue id is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if !calendar.ValidRange(req.StartTime, req.EndTime) {
		return nil, ErrInvalidRange
	}
	if req.Price != nil && *req.Price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrInvalidInput)
	}

	slot, err := s.slots.Create(ctx, venueID, req)
	if err != nil {
		return nil, err
	}

	_ = s.pub.Publish(ctx, events.SlotCreated, map[string]any{
		"slot_id":  slot.ID,
		"venue_id": slot.VenueID,
		"date":     slot.Date.String(),
		"start":    slot.StartTime.String(),
		"end":      slot.EndTime.String(),
	})
	s.logger.Info("slot created",
		zap.String("slot_id", slot.ID),
		zap.String("venue_id", slot.VenueID),
		zap.String("date", slot.Date.String()),
		zap.String("range", slot.StartTime.String()+"-"+slot.EndTime.String()),
	)
	return slot, nil
}

// ListSlots returns all slots for the venue with current availability.
func (s *SlotService) ListSlots(ctx context.Context, venueID string) ([]model.Slot, error) {
	if _, err := s.venues.GetByID(ctx, venueID); err != nil {
		return nil, err
	}
	return s.slots.ListByVenue(ctx, venueID)
}
