package service

import (
	"context"
	"errors"
	"testing"

	"github.com/slotbook/venue-booking/internal/model"
)

func (f *fixture) query(t *testing.T, sport, date, start, end string) ([]model.Venue, error) {
	t.Helper()
	return f.availability.FindAvailableVenues(context.Background(), model.AvailabilityQuery{
		SportCode: sport,
		Date:      mustDate(t, date),
		StartTime: mustClock(t, start),
		EndTime:   mustClock(t, end),
	})
}

func TestFindAvailableVenuesCoversNotOverlaps(t *testing.T) {
	f := newFixture(t)
	venue := f.createVenue(t, "Kick Off Arena", "FOOTBALL")

	// 09:00-11:00 only partially covers a 10:00-12:00 ask.
	f.createSlot(t, venue.ID, "2024-06-01", "09:00", "11:00", nil)

	venues, err := f.query(t, "FOOTBALL", "2024-06-01", "10:00", "12:00")
	if err != nil {
		t.Fatalf("availability query: %v", err)
	}
	if len(venues) != 0 {
		t.Fatalf("partial coverage must not qualify, got %d venues", len(venues))
	}

	// A covering slot does qualify.
	f.createSlot(t, venue.ID, "2024-06-01", "11:00", "13:30", nil)
	venues, err = f.query(t, "FOOTBALL", "2024-06-01", "11:30", "13:00")
	if err != nil {
		t.Fatalf("availability query: %v", err)
	}
	if len(venues) != 1 || venues[0].ID != venue.ID {
		t.Fatalf("expected venue %s, got %v", venue.ID, venues)
	}
}

func TestFindAvailableVenuesFiltersSportDateAndAvailability(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	football := f.createVenue(t, "Kick Off Arena", "FOOTBALL")
	badminton := f.createVenue(t, "Shuttle Point", "BADMINTON")

	footballSlot := f.createSlot(t, football.ID, "2024-06-01", "10:00", "12:00", nil)
	f.createSlot(t, badminton.ID, "2024-06-01", "10:00", "12:00", nil)
	f.createSlot(t, football.ID, "2024-06-02", "10:00", "12:00", nil)

	// Wrong sport and wrong date return nothing.
	if venues, _ := f.query(t, "TENNIS", "2024-06-01", "10:00", "11:00"); len(venues) != 0 {
		t.Fatalf("expected no venues for unseeded sport, got %d", len(venues))
	}
	if venues, _ := f.query(t, "FOOTBALL", "2024-06-03", "10:00", "11:00"); len(venues) != 0 {
		t.Fatalf("expected no venues on empty date, got %d", len(venues))
	}

	// The matching sport on the matching date qualifies.
	venues, err := f.query(t, "FOOTBALL", "2024-06-01", "10:00", "11:00")
	if err != nil {
		t.Fatalf("availability query: %v", err)
	}
	if len(venues) != 1 || venues[0].ID != football.ID {
		t.Fatalf("expected only %s, got %v", football.ID, venues)
	}

	// Booking the covering slot removes the venue from the result.
	if _, err := f.bookings.CreateBooking(ctx, bookingRequest(footballSlot.ID)); err != nil {
		t.Fatalf("create booking: %v", err)
	}
	venues, err = f.query(t, "FOOTBALL", "2024-06-01", "10:00", "11:00")
	if err != nil {
		t.Fatalf("availability query: %v", err)
	}
	if len(venues) != 0 {
		t.Fatalf("expected booked slot to disqualify the venue, got %d", len(venues))
	}
}

func TestFindAvailableVenuesDistinct(t *testing.T) {
	f := newFixture(t)
	venue := f.createVenue(t, "Kick Off Arena", "FOOTBALL")

	// Two covering slots on the same venue still yield one venue.
	f.createSlot(t, venue.ID, "2024-06-01", "08:00", "12:00", nil)
	f.createSlot(t, venue.ID, "2024-06-01", "12:00", "18:00", nil)

	venues, err := f.query(t, "FOOTBALL", "2024-06-01", "09:00", "10:00")
	if err != nil {
		t.Fatalf("availability query: %v", err)
	}
	if len(venues) != 1 {
		t.Fatalf("expected distinct venue set of size 1, got %d", len(venues))
	}
}

func TestFindAvailableVenuesInvalidRange(t *testing.T) {
	f := newFixture(t)

	_, err := f.query(t, "FOOTBALL", "2024-06-01", "12:00", "10:00")
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}
