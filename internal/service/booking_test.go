package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/slotbook/venue-booking/internal/model"
	"github.com/slotbook/venue-booking/internal/repository"
)

func bookingRequest(slotID string) model.CreateBookingRequest {
	return model.CreateBookingRequest{
		SlotID:        slotID,
		CustomerName:  "Priya Sharma",
		CustomerEmail: "priya@example.com",
		CustomerPhone: "+91-9876543210",
	}
}

func TestBookingLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	venue := f.createVenue(t, "Kick Off Arena", "FOOTBALL")
	slot := f.createSlot(t, venue.ID, "2024-06-01", "10:00", "11:00", floatPtr(500))

	// Booking succeeds, snapshots the price and takes the slot.
	booking, err := f.bookings.CreateBooking(ctx, bookingRequest(slot.ID))
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	if booking.Status != model.BookingConfirmed {
		t.Fatalf("expected CONFIRMED, got %s", booking.Status)
	}
	if booking.TotalAmount == nil || *booking.TotalAmount != 500 {
		t.Fatalf("expected total amount 500, got %v", booking.TotalAmount)
	}

	slots, err := f.slots.ListSlots(ctx, venue.ID)
	if err != nil {
		t.Fatalf("list slots: %v", err)
	}
	if slots[0].IsAvailable {
		t.Fatalf("expected slot to be unavailable after booking")
	}

	// A second booking attempt reads as "not found": unavailability and
	// non-existence are indistinguishable.
	if _, err := f.bookings.CreateBooking(ctx, bookingRequest(slot.ID)); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for booked slot, got %v", err)
	}

	// Cancellation releases the slot.
	cancelled, err := f.bookings.CancelBooking(ctx, booking.ID)
	if err != nil {
		t.Fatalf("cancel booking: %v", err)
	}
	if cancelled.Status != model.BookingCancelled {
		t.Fatalf("expected CANCELLED, got %s", cancelled.Status)
	}
	if cancelled.CancelledAt == nil {
		t.Fatalf("expected cancelled_at to be stamped")
	}

	slots, err = f.slots.ListSlots(ctx, venue.ID)
	if err != nil {
		t.Fatalf("list slots: %v", err)
	}
	if !slots[0].IsAvailable {
		t.Fatalf("expected slot to be available again after cancellation")
	}

	// Second cancellation is a conflict, not a no-op.
	if _, err := f.bookings.CancelBooking(ctx, booking.ID); !errors.Is(err, repository.ErrBookingCancelled) {
		t.Fatalf("expected ErrBookingCancelled, got %v", err)
	}
}

func TestCancelledSlotCannotBeRebooked(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	venue := f.createVenue(t, "Kick Off Arena", "FOOTBALL")
	slot := f.createSlot(t, venue.ID, "2024-06-01", "10:00", "11:00", nil)

	booking, err := f.bookings.CreateBooking(ctx, bookingRequest(slot.ID))
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	if _, err := f.bookings.CancelBooking(ctx, booking.ID); err != nil {
		t.Fatalf("cancel booking: %v", err)
	}

	// The slot shows as available again, but the one-booking-per-slot
	// constraint forbids a fresh booking row.
	_, err = f.bookings.CreateBooking(ctx, bookingRequest(slot.ID))
	if !errors.Is(err, repository.ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken for rebooking, got %v", err)
	}
}

func TestCreateBookingUnknownSlot(t *testing.T) {
	f := newFixture(t)

	_, err := f.bookings.CreateBooking(context.Background(), bookingRequest("no-such-slot"))
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateBookingValidation(t *testing.T) {
	f := newFixture(t)
	venue := f.createVenue(t, "Kick Off Arena", "FOOTBALL")
	slot := f.createSlot(t, venue.ID, "2024-06-01", "10:00", "11:00", nil)

	tests := []struct {
		name string
		req  model.CreateBookingRequest
	}{
		{"missing slot id", model.CreateBookingRequest{CustomerName: "A", CustomerEmail: "a@b.com"}},
		{"missing name", model.CreateBookingRequest{SlotID: slot.ID, CustomerEmail: "a@b.com"}},
		{"missing email", model.CreateBookingRequest{SlotID: slot.ID, CustomerName: "A"}},
		{"bad email", model.CreateBookingRequest{SlotID: slot.ID, CustomerName: "A", CustomerEmail: "not-an-email"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.bookings.CreateBooking(context.Background(), tt.req); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestCancelBookingUnknown(t *testing.T) {
	f := newFixture(t)

	_, err := f.bookings.CancelBooking(context.Background(), "no-such-booking")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// TestConcurrentBookingExactlyOneWins drives N goroutines at the same
// slot: exactly one must succeed, the rest must fail with the not-found /
// taken outcomes.
func TestConcurrentBookingExactlyOneWins(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	venue := f.createVenue(t, "Kick Off Arena", "FOOTBALL")
	slot := f.createSlot(t, venue.ID, "2024-06-01", "10:00", "11:00", floatPtr(500))

	const attempts = 64

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		failures  []error
	)
	start := make(chan struct{})

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := f.bookings.CreateBooking(ctx, bookingRequest(slot.ID))
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures = append(failures, err)
			} else {
				successes++
			}
		}()
	}
	close(start)
	wg.Wait()

	if successes != 1 {
		t.Fatalf("expected exactly 1 successful booking, got %d", successes)
	}
	if len(failures) != attempts-1 {
		t.Fatalf("expected %d failures, got %d", attempts-1, len(failures))
	}
	for _, err := range failures {
		if !errors.Is(err, repository.ErrNotFound) && !errors.Is(err, repository.ErrSlotTaken) {
			t.Fatalf("unexpected failure kind: %v", err)
		}
	}

	bookings, err := f.bookings.ListBookings(ctx)
	if err != nil {
		t.Fatalf("list bookings: %v", err)
	}
	if len(bookings) != 1 {
		t.Fatalf("expected exactly 1 booking row, got %d", len(bookings))
	}
}
