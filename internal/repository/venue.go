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

// VenueRepository handles persistence for venues.
type VenueRepository struct {
	db *pgxpool.Pool
}

// NewVenueRepository constructs a VenueRepository.
func NewVenueRepository(db *pgxpool.Pool) *VenueRepository {
	return &VenueRepository{db: db}
}

// Create inserts a new venue and returns it with a generated UUID.
func (r *VenueRepository) Create(ctx context.Context, req model.CreateVenueRequest) (*model.Venue, error) {
	now := time.Now().UTC()
	venue := &model.Venue{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Location:    req.Location,
		SportCode:   req.SportCode,
		Description: req.Description,
		Capacity:    req.Capacity,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO venues (id, name, location, sport_code, description, capacity, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		venue.ID, venue.Name, venue.Location, venue.SportCode,
		venue.Description, venue.Capacity, venue.CreatedAt, venue.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert venue: %w", err)
	}
	return venue, nil
}

// List returns all venues ordered by creation time descending.
func (r *VenueRepository) List(ctx context.Context) ([]model.Venue, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, location, sport_code, description, capacity, created_at, updated_at
		 FROM venues
		 ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	defer rows.Close()

	return scanVenues(rows)
}

// GetByID returns a single venue or ErrNotFound.
func (r *VenueRepository) GetByID(ctx context.Context, id string) (*model.Venue, error) {
	var v model.Venue
	err := r.db.QueryRow(ctx,
		`SELECT id, name, location, sport_code, description, capacity, created_at, updated_at
		 FROM venues WHERE id = $1`,
		id,
	).Scan(&v.ID, &v.Name, &v.Location, &v.SportCode, &v.Description, &v.Capacity, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get venue: %w", err)
	}
	return &v, nil
}

// Delete removes a venue and all of its slots as an explicit two-step
// inside one transaction. Slots that carry bookings keep their foreign key
// and make the whole transaction fail, so a venue with booked slots cannot
// be deleted.
func (r *VenueRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if _, err = tx.Exec(ctx, `DELETE FROM slots WHERE venue_id = $1`, id); err != nil {
		return fmt.Errorf("delete venue slots: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM venues WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete venue: %w", err)
	}
	if tag.RowsAffected() == 0 {
		err = ErrNotFound
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// FindAvailableBySport returns the distinct venues of a sport that have at
// least one available slot on the date whose interval fully covers the
// requested window. Coverage, not mere overlap: a 2-hour ask needs a slot
// at least 2 hours long.
func (r *VenueRepository) FindAvailableBySport(ctx context.Context, sportCode string, date calendar.Date, start, end calendar.Clock) ([]model.Venue, error) {
	rows, err := r.db.Query(ctx,
		`SELECT DISTINCT v.id, v.name, v.location, v.sport_code, v.description, v.capacity, v.created_at, v.updated_at
		 FROM venues v
		 JOIN slots s ON s.venue_id = v.id
		 WHERE v.sport_code = $1
		   AND s.slot_date = $2
		   AND s.is_available = TRUE
		   AND s.start_min <= $3
		   AND s.end_min >= $4`,
		sportCode, date.Time, int(start), int(end),
	)
	if err != nil {
		return nil, fmt.Errorf("find available venues: %w", err)
	}
	defer rows.Close()

	return scanVenues(rows)
}

func scanVenues(rows pgx.Rows) ([]model.Venue, error) {
	var venues []model.Venue
	for rows.Next() {
		var v model.Venue
		if err := rows.Scan(&v.ID, &v.Name, &v.Location, &v.SportCode, &v.Description, &v.Capacity, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan venue: %w", err)
		}
		venues = append(venues, v)
	}
	return venues, rows.Err()
}
