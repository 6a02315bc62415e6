package services

import (
	"context"
	"time"

	"github.com/nutridash/nutridash-server/internal/model"
	"github.com/nutridash/nutridash-server/internal/store"
)

// WaterService handles water log reads and manual entry.
type WaterService struct {
	store store.Store
	loc   *time.Location
}

func NewWaterService(s store.Store, loc *time.Location) *WaterService {
	return &WaterService{store: s, loc: loc}
}

func (s *WaterService) ListByOwner(ctx context.Context, ownerID string) ([]*model.WaterLog, error) {
	if ownerID == "" {
		return nil, model.NewValidationError("ownerId", "owner ID is required")
	}
	return s.store.Water().ListByOwner(ctx, ownerID)
}

func (s *WaterService) Create(ctx context.Context, w *model.WaterLog) (*model.WaterLog, error) {
	if w.OwnerID == "" {
		return nil, model.NewValidationError("ownerId", "owner ID is required")
	}
	if w.AmountML <= 0 {
		return nil, model.NewValidationError("amountMl", "amount must be positive")
	}
	if w.Date == "" {
		w.Date = time.Now().In(s.loc).Format("2006-01-02")
	}
	return s.store.Water().Create(ctx, w)
}
