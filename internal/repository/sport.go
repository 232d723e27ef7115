package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/slotbook/venue-booking/internal/model"
)

// SportRepository handles persistence for the seeded sport catalog.
type SportRepository struct {
	db *pgxpool.Pool
}

// NewSportRepository constructs a SportRepository.
func NewSportRepository(db *pgxpool.Pool) *SportRepository {
	return &SportRepository{db: db}
}

// CreateIfAbsent inserts a sport unless its code is already seeded.
// It reports whether a row was actually inserted.
func (r *SportRepository) CreateIfAbsent(ctx context.Context, code, name string) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`INSERT INTO sports (id, code, name, created_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (code) DO NOTHING`,
		uuid.New().String(), code, name, time.Now().UTC(),
	)
	if err != nil {
		return false, fmt.Errorf("insert sport: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ExistsByCode reports whether a sport with the given code is seeded.
func (r *SportRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM sports WHERE code = $1)`,
		code,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check sport exists: %w", err)
	}
	return exists, nil
}

// List returns all seeded sports ordered by code.
func (r *SportRepository) List(ctx context.Context) ([]model.Sport, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, code, name, created_at FROM sports ORDER BY code`,
	)
	if err != nil {
		return nil, fmt.Errorf("list sports: %w", err)
	}
	defer rows.Close()

	var sports []model.Sport
	for rows.Next() {
		var s model.Sport
		if err := rows.Scan(&s.ID, &s.Code, &s.Name, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sport: %w", err)
		}
		sports = append(sports, s)
	}
	return sports, rows.Err()
}
