// Package model defines the core domain types for the venue booking system.
package model

import (
	"time"

	"github.com/slotbook/venue-booking/internal/calendar"
)

// Sport is a catalog entry venues reference by code. The catalog is seeded
// from the external sports API at startup.
type Sport struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Venue is a bookable facility for a single sport. It owns its slots.
type Venue struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	SportCode   string    `json:"sport_code"`
	Description string    `json:"description,omitempty"`
	Capacity    *int      `json:"capacity,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Slot is a bookable half-open time window [StartTime, EndTime) on a given
// date at a venue. IsAvailable flips to false while a confirmed booking
// holds the slot and back to true when that booking is cancelled.
type Slot struct {
	ID          string         `json:"id"`
	VenueID     string         `json:"venue_id"`
	Date        calendar.Date  `json:"date"`
	StartTime   calendar.Clock `json:"start_time"`
	EndTime     calendar.Clock `json:"end_time"`
	IsAvailable bool           `json:"is_available"`
	Price       *float64       `json:"price,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
)

// Booking claims exactly one slot for a customer. Bookings are never
// deleted; cancellation flips the status and frees the slot's availability
// flag, but the slot reference stays fixed.
type Booking struct {
	ID            string        `json:"id"`
	SlotID        string        `json:"slot_id"`
	CustomerName  string        `json:"customer_name"`
	CustomerEmail string        `json:"customer_email"`
	CustomerPhone string        `json:"customer_phone,omitempty"`
	Status        BookingStatus `json:"status"`
	TotalAmount   *float64      `json:"total_amount,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
	CancelledAt   *time.Time    `json:"cancelled_at,omitempty"`
}

// CreateVenueRequest is the payload for creating a venue.
type CreateVenueRequest struct {
	Name        string `json:"name"`
	Location    string `json:"location"`
	SportCode   string `json:"sport_code"`
	Description string `json:"description"`
	Capacity    *int   `json:"capacity"`
}

// CreateSlotRequest is the payload for publishing a slot on a venue.
type CreateSlotRequest struct {
	Date      calendar.Date  `json:"date"`
	StartTime calendar.Clock `json:"start_time"`
	EndTime   calendar.Clock `json:"end_time"`
	Price     *float64       `json:"price"`
}

// CreateBookingRequest is the payload for claiming a slot.
type CreateBookingRequest struct {
	SlotID        string `json:"slot_id"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
}

// AvailabilityQuery asks which venues of a sport can serve the requested
// window on a date. A venue qualifies only when one of its available slots
// fully covers the window.
type AvailabilityQuery struct {
	SportCode string
	Date      calendar.Date
	StartTime calendar.Clock
	EndTime   calendar.Clock
}

// ErrorResponse is a standard JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}
