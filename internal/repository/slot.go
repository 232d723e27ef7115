package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/slotbook/venue-booking/internal/calendar"
	"github.com/slotbook/venue-booking/internal/model"
)

// SlotRepository handles persistence for slots.
type SlotRepository struct {
	db *pgxpool.Pool
}

// NewSlotRepository constructs a SlotRepository.
func NewSlotRepository(db *pgxpool.Pool) *SlotRepository {
	return &SlotRepository{db: db}
}

// Create inserts a slot after checking it against every existing slot on
// the same venue and date. The whole check-then-insert runs in one
// transaction that first locks the venue row, so two concurrent creations
// for the same venue cannot both pass the overlap check. The venue lock
// doubles as the existence check: no row means ErrNotFound.
func (r *SlotRepository) Create(ctx context.Context, venueID string, req model.CreateSlotRequest) (*model.Slot, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	var lockedID string
	err = tx.QueryRow(ctx,
		`SELECT id FROM venues WHERE id = $1 FOR UPDATE`,
		venueID,
	).Scan(&lockedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lock venue row: %w", err)
	}

	rows, err := tx.Query(ctx,
		`SELECT id, start_min, end_min
		 FROM slots
		 WHERE venue_id = $1 AND slot_date = $2`,
		venueID, req.Date.Time,
	)
	if err != nil {
		return nil, fmt.Errorf("load slots for date: %w", err)
	}

	var colliding []string
	for rows.Next() {
		var (
			id         string
			start, end int
		)
		if err = rows.Scan(&id, &start, &end); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		if calendar.Overlaps(calendar.Clock(start), calendar.Clock(end), req.StartTime, req.EndTime) {
			colliding = append(colliding, id)
		}
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("load slots for date: %w", err)
	}
	if len(colliding) > 0 {
		err = &OverlapError{SlotIDs: colliding}
		return nil, err
	}

	now := time.Now().UTC()
	slot := &model.Slot{
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
	_, err = tx.Exec(ctx,
		`INSERT INTO slots (id, venue_id, slot_date, start_min, end_min, is_available, price, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		slot.ID, slot.VenueID, slot.Date.Time, int(slot.StartTime), int(slot.EndTime),
		slot.IsAvailable, slot.Price, slot.CreatedAt, slot.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert slot: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return slot, nil
}

// ListByVenue returns all slots for a venue with their current
// availability, ordered by date and start time.
func (r *SlotRepository) ListByVenue(ctx context.Context, venueID string) ([]model.Slot, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, venue_id, slot_date, start_min, end_min, is_available, price, created_at, updated_at
		 FROM slots
		 WHERE venue_id = $1
		 ORDER BY slot_date, start_min`,
		venueID,
	)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	defer rows.Close()

	var slots []model.Slot
	for rows.Next() {
		var (
			s          model.Slot
			start, end int
		)
		if err := rows.Scan(&s.ID, &s.VenueID, &s.Date.Time, &start, &end, &s.IsAvailable, &s.Price, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		s.StartTime = calendar.Clock(start)
		s.EndTime = calendar.Clock(end)
		slots = append(slots, s)
	}
	return slots, rows.Err()
}
