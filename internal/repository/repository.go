// Package repository implements all database queries for the venue booking
// system. It uses pgx directly (no ORM) for transparency and performance.
//
// The two operations with real concurrency hazards live here: claiming a
// slot for a booking and releasing it on cancellation. Both run inside a
// single transaction that takes a row-level lock, so racing requests are
// serialised by the database rather than by application code.
package repository

import "errors"

// ErrNotFound is returned when a requested resource does not exist. For
// booking creation it also covers the "slot exists but is unavailable"
// case on purpose: callers cannot distinguish the two.
var ErrNotFound = errors.New("not found")

// ErrSlotTaken is returned when a booking row already references the slot.
// The availability flag makes this unreachable in normal flow; it guards
// the race window and the rebooking of a cancelled slot, which the unique
// constraint on bookings.slot_id forbids.
var ErrSlotTaken = errors.New("slot already has a booking")

// ErrBookingCancelled is returned when cancelling a booking that is
// already cancelled. Cancellation is deliberately not idempotent.
var ErrBookingCancelled = errors.New("booking already cancelled")

// OverlapError reports a slot creation that collides with existing slots
// on the same venue and date. SlotIDs lists every colliding slot.
type OverlapError struct {
	SlotIDs []string
}

func (e *OverlapError) Error() string {
	msg := "slot overlaps existing slot(s):"
	for _, id := range e.SlotIDs {
		msg += " " + id
	}
	return msg
}
