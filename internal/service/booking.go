package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/slotbook/venue-booking/internal/events"
	"github.com/slotbook/venue-booking/internal/model"
)

// BookingService is the booking allocator: it governs the binding between
// a slot and a booking and the mutual-exclusion invariant. The store does
// the actual locking; this layer validates, publishes and logs.
type BookingService struct {
	bookings BookingStore
	pub      events.Publisher
	logger   *zap.Logger
}

// NewBookingService constructs a BookingService with its dependencies.
func NewBookingService(bookings BookingStore, pub events.Publisher, logger *zap.Logger) *BookingService {
	return &BookingService{bookings: bookings, pub: pub, logger: logger}
}

// CreateBooking claims the slot for the customer. Of N concurrent calls
// against the same slot exactly one succeeds; the rest see the slot as
// missing or taken. A non-existent and an unavailable slot are reported
// identically.
func (s *BookingService) CreateBooking(ctx context.Context, req model.CreateBookingRequest) (*model.Booking, error) {
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.CustomerEmail = strings.TrimSpace(strings.ToLower(req.CustomerEmail))
	req.CustomerPhone = strings.TrimSpace(req.CustomerPhone)

	if req.SlotID == "" {
		return nil, fmt.Errorf("%w: slot_id is required", ErrInvalidInput)
	}
	if req.CustomerName == "" {
		return nil, fmt.Errorf("%w: customer_name is required", ErrInvalidInput)
	}
	if req.CustomerEmail == "" {
		return nil, fmt.Errorf("%w: customer_email is required", ErrInvalidInput)
	}
	if !isValidEmail(req.CustomerEmail) {
		return nil, fmt.Errorf("%w: customer_email is not a valid email address", ErrInvalidInput)
	}

	booking, err := s.bookings.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	_ = s.pub.Publish(ctx, events.BookingCreated, map[string]any{
		"booking_id": booking.ID,
		"slot_id":    booking.SlotID,
		"customer":   booking.CustomerEmail,
	})
	s.logger.Info("booking created",
		zap.String("booking_id", booking.ID),
		zap.String("slot_id", booking.SlotID),
	)
	return booking, nil
}

// CancelBooking cancels a confirmed booking and releases its slot.
// Cancelling an already cancelled booking is a conflict.
func (s *BookingService) CancelBooking(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: booking id is required", ErrInvalidInput)
	}

	booking, err := s.bookings.Cancel(ctx, id)
	if err != nil {
		return nil, err
	}

	_ = s.pub.Publish(ctx, events.BookingCancelled, map[string]any{
		"booking_id": booking.ID,
		"slot_id":    booking.SlotID,
	})
	s.logger.Info("booking cancelled",
		zap.String("booking_id", booking.ID),
		zap.String("slot_id", booking.SlotID),
	)
	return booking, nil
}

// GetBooking returns a single booking by ID.
func (s *BookingService) GetBooking(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: booking id is required", ErrInvalidInput)
	}
	return s.bookings.GetByID(ctx, id)
}

// ListBookings returns all bookings.
func (s *BookingService) ListBookings(ctx context.Context) ([]model.Booking, error) {
	return s.bookings.List(ctx)
}
