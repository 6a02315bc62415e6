package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/nutridash/nutridash-server/internal/aggregate"
	"github.com/nutridash/nutridash-server/internal/model"
	"github.com/nutridash/nutridash-server/internal/store"
)

// MealService handles meal reads and manual meal entry. Meals are immutable
// once created; there is no edit operation.
type MealService struct {
	store store.Store
	loc   *time.Location
}

func NewMealService(s store.Store, loc *time.Location) *MealService {
	return &MealService{store: s, loc: loc}
}

func (s *MealService) ListByOwner(ctx context.Context, ownerID string) ([]*model.Meal, error) {
	if ownerID == "" {
		return nil, model.NewValidationError("ownerId", "owner ID is required")
	}
	return s.store.Meals().ListByOwner(ctx, ownerID)
}

// ListRecent returns the owner's meals whose dates parse into the trailing
// window of `days` ending at `now`. Meals with unparseable dates are
// excluded: they cannot be placed in the window.
func (s *MealService) ListRecent(ctx context.Context, ownerID string, days int, now time.Time) ([]*model.Meal, error) {
	all, err := s.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	cutoff := now.In(s.loc).AddDate(0, 0, -days)
	out := []*model.Meal{}
	for _, m := range all {
		t, ok := aggregate.ParseDay(m.Date, s.loc)
		if !ok || t.Before(cutoff) || t.After(now.In(s.loc).AddDate(0, 0, 1)) {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

// Create appends a manual meal entry. The ingestion pipeline is the usual
// writer; this path exists for admin corrections.
func (s *MealService) Create(ctx context.Context, m *model.Meal) (*model.Meal, error) {
	if m.OwnerID == "" {
		return nil, model.NewValidationError("ownerId", "owner ID is required")
	}
	if m.Description == "" {
		return nil, model.NewValidationError("description", "description is required")
	}
	if m.Date == "" {
		m.Date = time.Now().In(s.loc).Format("2006-01-02")
	}
	log.Info().Str("ownerID", m.OwnerID).Str("description", m.Description).Msg("Creating meal")
	return s.store.Meals().Create(ctx, m)
}
