// Package memory provides in-memory implementations of the persistence
// interfaces consumed by the service layer. A single mutex stands in for
// the database's row locks, which preserves the claim-exactly-once and
// non-overlap guarantees the Postgres repositories get from
// SELECT ... FOR UPDATE. Used by tests; handy for local runs without a
// database.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/slotbook/venue-booking/internal/calendar"
	"github.com/slotbook/venue-booking/internal/model"
	"github.com/slotbook/venue-booking/internal/repository"
)

// Store holds all entities behind one mutex.
type Store struct {
	mu       sync.Mutex
	venues   map[string]model.Venue
	slots    map[string]model.Slot
	bookings map[string]model.Booking
	sports   map[string]model.Sport // keyed by code
}

// NewStore constructs an empty Store.
func NewStore() *Store {
	return &Store{
		venues:   make(map[string]model.Venue),
		slots:    make(map[string]model.Slot),
		bookings: make(map[string]model.Booking),
		sports:   make(map[string]model.Sport),
	}
}

// Venues returns the venue view of the store.
func (s *Store) Venues() *VenueStore { return &VenueStore{s: s} }

// Slots returns the slot view of the store.
func (s *Store) Slots() *SlotStore { return &SlotStore{s: s} }

// Bookings returns the booking view of the store.
func (s *Store) Bookings() *BookingStore { return &BookingStore{s: s} }

// Sports returns the sport view of the store.
func (s *Store) Sports() *SportStore { return &SportStore{s: s} }

// VenueStore implements venue persistence on the shared store.
type VenueStore struct {
	s *Store
}

func (v *VenueStore) Create(_ context.Context, req model.CreateVenueRequest) (*model.Venue, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()

	now := time.Now().UTC()
	venue := model.Venue{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Location:    req.Location,
		SportCode:   req.SportCode,
		Description: req.Description,
		Capacity:    req.Capacity,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	v.s.venues[venue.ID] = venue
	return &venue, nil
}

func (v *VenueStore) List(_ context.Context) ([]model.Venue, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()

	venues := make([]model.Venue, 0, len(v.s.venues))
	for _, ven := range v.s.venues {
		venues = append(venues, ven)
	}
	sort.Slice(venues, func(i, j int) bool { return venues[i].CreatedAt.After(venues[j].CreatedAt) })
	return venues, nil
}

func (v *VenueStore) GetByID(_ context.Context, id string) (*model.Venue, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()

	venue, ok := v.s.venues[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &venue, nil
}

func (v *VenueStore) Delete(_ context.Context, id string) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()

	if _, ok := v.s.venues[id]; !ok {
		return repository.ErrNotFound
	}
	// Mirror the foreign key: a slot with a booking blocks venue deletion.
	for slotID, slot := range v.s.slots {
		if slot.VenueID != id {
			continue
		}
		for _, b := range v.s.bookings {
			if b.SlotID == slotID {
				return fmt.Errorf("delete venue %s: slot %s is referenced by booking %s", id, slotID, b.ID)
			}
		}
	}
	for slotID, slot := range v.s.slots {
		if slot.VenueID == id {
			delete(v.s.slots, slotID)
		}
	}
	delete(v.s.venues, id)
	return nil
}

func (v *VenueStore) FindAvailableBySport(_ context.Context, sportCode string, date calendar.Date, start, end calendar.Clock) ([]model.Venue, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()

	seen := make(map[string]bool)
	var venues []model.Venue
	for _, slot := range v.s.slots {
		if !slot.IsAvailable || !slot.Date.Equal(date) {
			continue
		}
		if !calendar.Covers(slot.StartTime, slot.EndTime, start, end) {
			continue
		}
		venue, ok := v.s.venues[slot.VenueID]
		if !ok || venue.SportCode != sportCode || seen[venue.ID] {
			continue
		}
		seen[venue.ID] = true
		venues = append(venues, venue)
	}
	return venues, nil
}

// SlotStore implements slot persistence on the shared store.
type SlotStore struct {
	s *Store
}

func (sl *SlotStore) Create(_ context.Context, venueID string, req model.CreateSlotRequest) (*model.Slot, error) {
	sl.s.mu.Lock()
	defer sl.s.mu.Unlock()

	if _, ok := sl.s.venues[venueID]; !ok {
		return nil, repository.ErrNotFound
	}

	var colliding []string
	for id, existing := range sl.s.slots {
		if existing.VenueID != venueID || !existing.Date.Equal(req.Date) {
			continue
		}
		if calendar.Overlaps(existing.StartTime, existing.EndTime, req.StartTime, req.EndTime) {
			colliding = append(colliding, id)
		}
	}
	if len(colliding) > 0 {
		sort.Strings(colliding)
		return nil, &repository.OverlapError{SlotIDs: colliding}
	}

	now := time.Now().UTC()
	slot := model.Slot{
		ID:          uuid.New().String(),
		VenueID:     venueID,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		IsAvailable: true,
		Price:       req.Price,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	sl.s.slots[slot.ID] = slot
	return &slot, nil
}

func (sl *SlotStore) ListByVenue(_ context.Context, venueID string) ([]model.Slot, error) {
	sl.s.mu.Lock()
	defer sl.s.mu.Unlock()

	var slots []model.Slot
	for _, slot := range sl.s.slots {
		if slot.VenueID == venueID {
			slots = append(slots, slot)
		}
	}
	sort.Slice(slots, func(i, j int) bool {
		if !slots[i].Date.Equal(slots[j].Date) {
			return slots[i].Date.Before(slots[j].Date.Time)
		}
		return slots[i].StartTime < slots[j].StartTime
	})
	return slots, nil
}

// BookingStore implements booking persistence on the shared store. The
// store mutex serialises Create the way the row lock does in Postgres.
type BookingStore struct {
	s *Store
}

func (b *BookingStore) Create(_ context.Context, req model.CreateBookingRequest) (*model.Booking, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()

	slot, ok := b.s.slots[req.SlotID]
	if !ok || !slot.IsAvailable {
		return nil, repository.ErrNotFound
	}
	for _, existing := range b.s.bookings {
		if existing.SlotID == req.SlotID {
			return nil, repository.ErrSlotTaken
		}
	}

	now := time.Now().UTC()
	booking := model.Booking{
		ID:            uuid.New().String(),
		SlotID:        req.SlotID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Status:        model.BookingConfirmed,
		TotalAmount:   slot.Price,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	b.s.bookings[booking.ID] = booking

	slot.IsAvailable = false
	slot.UpdatedAt = now
	b.s.slots[slot.ID] = slot
	return &booking, nil
}

func (b *BookingStore) Cancel(_ context.Context, id string) (*model.Booking, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()

	booking, ok := b.s.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if booking.Status == model.BookingCancelled {
		return nil, repository.ErrBookingCancelled
	}

	now := time.Now().UTC()
	booking.Status = model.BookingCancelled
	booking.UpdatedAt = now
	booking.CancelledAt = &now
	b.s.bookings[id] = booking

	if slot, ok := b.s.slots[booking.SlotID]; ok {
		slot.IsAvailable = true
		slot.UpdatedAt = now
		b.s.slots[slot.ID] = slot
	}
	return &booking, nil
}

func (b *BookingStore) GetByID(_ context.Context, id string) (*model.Booking, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()

	booking, ok := b.s.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &booking, nil
}

func (b *BookingStore) List(_ context.Context) ([]model.Booking, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()

	bookings := make([]model.Booking, 0, len(b.s.bookings))
	for _, booking := range b.s.bookings {
		bookings = append(bookings, booking)
	}
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].CreatedAt.After(bookings[j].CreatedAt) })
	return bookings, nil
}

// SportStore implements sport catalog persistence on the shared store.
type SportStore struct {
	s *Store
}

func (sp *SportStore) CreateIfAbsent(_ context.Context, code, name string) (bool, error) {
	sp.s.mu.Lock()
	defer sp.s.mu.Unlock()

	if _, ok := sp.s.sports[code]; ok {
		return false, nil
	}
	sp.s.sports[code] = model.Sport{
		ID:        uuid.New().String(),
		Code:      code,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	return true, nil
}

func (sp *SportStore) ExistsByCode(_ context.Context, code string) (bool, error) {
	sp.s.mu.Lock()
	defer sp.s.mu.Unlock()

	_, ok := sp.s.sports[code]
	return ok, nil
}

func (sp *SportStore) List(_ context.Context) ([]model.Sport, error) {
	sp.s.mu.Lock()
	defer sp.s.mu.Unlock()

	sports := make([]model.Sport, 0, len(sp.s.sports))
	for _, s := range sp.s.sports {
		sports = append(sports, s)
	}
	sort.Slice(sports, func(i, j int) bool { return sports[i].Code < sports[j].Code })
	return sports, nil
}
