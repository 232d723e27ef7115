package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/slotbook/venue-booking/internal/calendar"
	"github.com/slotbook/venue-booking/internal/catalog"
	"github.com/slotbook/venue-booking/internal/events"
	"github.com/slotbook/venue-booking/internal/model"
	"github.com/slotbook/venue-booking/internal/repository/memory"
)

// fixture wires the full service layer over the in-memory store.
type fixture struct {
	store        *memory.Store
	sports       *SportService
	venues       *VenueService
	slots        *SlotService
	bookings     *BookingService
	availability *AvailabilityService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	logger := zap.NewNop()
	cat := catalog.Static{
		{ID: "1", Code: "FOOTBALL", Name: "Football"},
		{ID: "2", Code: "BADMINTON", Name: "Badminton"},
	}

	sports := NewSportService(cat, store.Sports(), logger)
	if err := sports.Seed(context.Background()); err != nil {
		t.Fatalf("seed sports: %v", err)
	}

	return &fixture{
		store:        store,
		sports:       sports,
		venues:       NewVenueService(store.Venues(), sports, logger),
		slots:        NewSlotService(store.Venues(), store.Slots(), events.Nop{}, logger),
		bookings:     NewBookingService(store.Bookings(), events.Nop{}, logger),
		availability: NewAvailabilityService(store.Venues()),
	}
}

func (f *fixture) createVenue(t *testing.T, name, sportCode string) *model.Venue {
	t.Helper()
	venue, err := f.venues.CreateVenue(context.Background(), model.CreateVenueRequest{
		Name:      name,
		Location:  "Indiranagar, Bangalore",
		SportCode: sportCode,
	})
	if err != nil {
		t.Fatalf("create venue %s: %v", name, err)
	}
	return venue
}

func (f *fixture) createSlot(t *testing.T, venueID, date, start, end string, price *float64) *model.Slot {
	t.Helper()
	slot, err := f.slots.CreateSlot(context.Background(), venueID, model.CreateSlotRequest{
		Date:      mustDate(t, date),
		StartTime: mustClock(t, start),
		EndTime:   mustClock(t, end),
		Price:     price,
	})
	if err != nil {
		t.Fatalf("create slot %s %s-%s: %v", date, start, end, err)
	}
	return slot
}

func mustDate(t *testing.T, s string) calendar.Date {
	t.Helper()
	d, err := calendar.ParseDate(s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func mustClock(t *testing.T, s string) calendar.Clock {
	t.Helper()
	c, err := calendar.ParseClock(s)
	if err != nil {
		t.Fatalf("parse clock %q: %v", s, err)
	}
	return c
}

func floatPtr(v float64) *float64 { return &v }
