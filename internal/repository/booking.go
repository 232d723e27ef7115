package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/slotbook/venue-booking/internal/model"
)

// BookingRepository handles persistence for bookings.
type BookingRepository struct {
	db *pgxpool.Pool
}

// NewBookingRepository constructs a BookingRepository.
func NewBookingRepository(db *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{db: db}
}

// Create claims a slot for a booking inside a single transaction.
//
// The SELECT ... FOR UPDATE on the slot row is the mutual-exclusion
// boundary of the whole system: of N concurrent attempts on the same slot,
// the database lets exactly one transaction through the "is_available"
// filter; the rest block on the row lock and, once it commits, see the
// flag already flipped and get no row back. A missing row and an
// unavailable slot are reported identically as ErrNotFound.
func (r *BookingRepository) Create(ctx context.Context, req model.CreateBookingRequest) (*model.Booking, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	// Step 1: lock the slot, but only if it is still available.
	var (
		slotID string
		price  *float64
	)
	err = tx.QueryRow(ctx,
		`SELECT id, price
		 FROM slots
		 WHERE id = $1 AND is_available = TRUE
		 FOR UPDATE`,
		req.SlotID,
	).Scan(&slotID, &price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lock slot row: %w", err)
	}

	// Step 2: defensive re-check. Unreachable through normal flow, but the
	// unique constraint on slot_id is the final arbiter and this turns a
	// constraint violation into a clean conflict.
	var taken bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM bookings WHERE slot_id = $1)`,
		slotID,
	).Scan(&taken)
	if err != nil {
		return nil, fmt.Errorf("check existing booking: %w", err)
	}
	if taken {
		err = ErrSlotTaken
		return nil, err
	}

	// Step 3: insert the booking with the price snapshot.
	now := time.Now().UTC()
	booking := &model.Booking{
		ID:            uuid.New().String(),
		SlotID:        slotID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Status:        model.BookingConfirmed,
		TotalAmount:   price,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO bookings (id, slot_id, customer_name, customer_email, customer_phone, status, total_amount, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		booking.ID, booking.SlotID, booking.CustomerName, booking.CustomerEmail,
		booking.CustomerPhone, booking.Status, booking.TotalAmount,
		booking.CreatedAt, booking.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert booking: %w", err)
	}

	// Step 4: flip the availability flag in the same transaction.
	_, err = tx.Exec(ctx,
		`UPDATE slots SET is_available = FALSE, updated_at = $2 WHERE id = $1`,
		slotID, now,
	)
	if err != nil {
		return nil, fmt.Errorf("mark slot unavailable: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return booking, nil
}

// Cancel flips a booking to CANCELLED and releases its slot, atomically.
// Cancelling twice is a conflict, not a no-op.
func (r *BookingRepository) Cancel(ctx context.Context, id string) (*model.Booking, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	var b model.Booking
	err = tx.QueryRow(ctx,
		`SELECT id, slot_id, customer_name, customer_email, customer_phone, status, total_amount, created_at, updated_at, cancelled_at
		 FROM bookings
		 WHERE id = $1
		 FOR UPDATE`,
		id,
	).Scan(&b.ID, &b.SlotID, &b.CustomerName, &b.CustomerEmail, &b.CustomerPhone,
		&b.Status, &b.TotalAmount, &b.CreatedAt, &b.UpdatedAt, &b.CancelledAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lock booking row: %w", err)
	}

	if b.Status == model.BookingCancelled {
		err = ErrBookingCancelled
		return nil, err
	}

	now := time.Now().UTC()
	_, err = tx.Exec(ctx,
		`UPDATE bookings SET status = $2, updated_at = $3, cancelled_at = $3 WHERE id = $1`,
		b.ID, model.BookingCancelled, now,
	)
	if err != nil {
		return nil, fmt.Errorf("cancel booking: %w", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE slots SET is_available = TRUE, updated_at = $2 WHERE id = $1`,
		b.SlotID, now,
	)
	if err != nil {
		return nil, fmt.Errorf("release slot: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	b.Status = model.BookingCancelled
	b.UpdatedAt = now
	b.CancelledAt = &now
	return &b, nil
}

// GetByID returns a single booking or ErrNotFound. No locking: plain read.
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	var b model.Booking
	err := r.db.QueryRow(ctx,
		`SELECT id, slot_id, customer_name, customer_email, customer_phone, status, total_amount, created_at, updated_at, cancelled_at
		 FROM bookings WHERE id = $1`,
		id,
	).Scan(&b.ID, &b.SlotID, &b.CustomerName, &b.CustomerEmail, &b.CustomerPhone,
		&b.Status, &b.TotalAmount, &b.CreatedAt, &b.UpdatedAt, &b.CancelledAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return &b, nil
}

// List returns all bookings ordered by creation time descending.
func (r *BookingRepository) List(ctx context.Context) ([]model.Booking, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, slot_id, customer_name, customer_email, customer_phone, status, total_amount, created_at, updated_at, cancelled_at
		 FROM bookings
		 ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []model.Booking
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(&b.ID, &b.SlotID, &b.CustomerName, &b.CustomerEmail, &b.CustomerPhone,
			&b.Status, &b.TotalAmount, &b.CreatedAt, &b.UpdatedAt, &b.CancelledAt); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}
