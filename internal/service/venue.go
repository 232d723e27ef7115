package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/slotbook/venue-booking/internal/model"
)

// VenueService manages venue CRUD. Venue creation validates the sport
// code against the seeded catalog.
type VenueService struct {
	venues VenueStore
	sports *SportService
	logger *zap.Logger
}

// NewVenueService constructs a VenueService with its dependencies.
func NewVenueService(venues VenueStore, sports *SportService, logger *zap.Logger) *VenueService {
	return &VenueService{venues: venues, sports: sports, logger: logger}
}

// CreateVenue validates the request and creates the venue.
func (s *VenueService) CreateVenue(ctx context.Context, req model.CreateVenueRequest) (*model.Venue, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Location = strings.TrimSpace(req.Location)
	req.SportCode = strings.ToUpper(strings.TrimSpace(req.SportCode))

	if req.Name == "" {
		return nil, fmt.Errorf("%w: venue name is required", ErrInvalidInput)
	}
	if req.Location == "" {
		return nil, fmt.Errorf("%w: location is required", ErrInvalidInput)
	}
	if req.Capacity != nil && *req.Capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity must be a positive integer", ErrInvalidInput)
	}

	valid, err := s.sports.IsValidSportCode(ctx, req.SportCode)
	if err != nil {
		return nil, fmt.Errorf("validate sport code: %w", err)
	}
	if !valid {
		return nil, fmt.Errorf("%w: unknown sport code %q", ErrInvalidInput, req.SportCode)
	}

	venue, err := s.venues.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("venue created",
		zap.String("venue_id", venue.ID),
		zap.String("sport_code", venue.SportCode),
	)
	return venue, nil
}

// ListVenues returns all venues.
func (s *VenueService) ListVenues(ctx context.Context) ([]model.Venue, error) {
	return s.venues.List(ctx)
}

// GetVenue returns a single venue by ID.
func (s *VenueService) GetVenue(ctx context.Context, id string) (*model.Venue, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: venue id is required", ErrInvalidInput)
	}
	return s.venues.GetByID(ctx, id)
}

// DeleteVenue removes a venue together with its slots.
func (s *VenueService) DeleteVenue(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: venue id is required", ErrInvalidInput)
	}
	if err := s.venues.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("venue deleted", zap.String("venue_id", id))
	return nil
}
