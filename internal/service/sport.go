package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/slotbook/venue-booking/internal/catalog"
	"github.com/slotbook/venue-booking/internal/model"
)

// SportService seeds the sport catalog from the external API and answers
// sport code validity. After seeding, the local table is the source of
// truth; the external catalog is never consulted on the request path.
type SportService struct {
	catalog catalog.Client
	sports  SportStore
	logger  *zap.Logger
}

// NewSportService constructs a SportService with its dependencies.
func NewSportService(cat catalog.Client, sports SportStore, logger *zap.Logger) *SportService {
	return &SportService{catalog: cat, sports: sports, logger: logger}
}

// Seed fetches the external catalog and inserts any sport codes not yet
// present. An empty catalog is logged but not an error: venue creation
// then rejects unseeded codes.
func (s *SportService) Seed(ctx context.Context) error {
	fetched, err := s.catalog.Sports(ctx)
	if err != nil {
		return err
	}
	if len(fetched) == 0 {
		s.logger.Warn("sport catalog returned no sports; venue creation will reject all codes")
		return nil
	}

	seeded := 0
	for _, sp := range fetched {
		code := strings.ToUpper(strings.TrimSpace(sp.Code))
		if code == "" {
			continue
		}
		inserted, err := s.sports.CreateIfAbsent(ctx, code, sp.Name)
		if err != nil {
			return err
		}
		if inserted {
			seeded++
		}
	}
	s.logger.Info("sport catalog seeded",
		zap.Int("fetched", len(fetched)),
		zap.Int("inserted", seeded),
	)
	return nil
}

// IsValidSportCode reports whether the code is in the seeded catalog.
func (s *SportService) IsValidSportCode(ctx context.Context, code string) (bool, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return false, nil
	}
	return s.sports.ExistsByCode(ctx, code)
}

// ListSports returns the seeded catalog.
func (s *SportService) ListSports(ctx context.Context) ([]model.Sport, error) {
	return s.sports.List(ctx)
}
