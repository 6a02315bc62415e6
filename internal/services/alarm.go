package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/nutridash/nutridash-server/internal/model"
	"github.com/nutridash/nutridash-server/internal/notify"
	"github.com/nutridash/nutridash-server/internal/store"
)

// AlarmService handles reminder CRUD and on-demand delivery through the
// WhatsApp gateway.
type AlarmService struct {
	store    store.Store
	notifier notify.Notifier
	loc      *time.Location
	now      func() time.Time
}

func NewAlarmService(s store.Store, n notify.Notifier, loc *time.Location) *AlarmService {
	return &AlarmService{store: s, notifier: n, loc: loc, now: time.Now}
}

func (s *AlarmService) ListByOwner(ctx context.Context, ownerID string) ([]*model.Alarm, error) {
	if ownerID == "" {
		return nil, model.NewValidationError("ownerId", "owner ID is required")
	}
	return s.store.Alarms().ListByOwner(ctx, ownerID)
}

func (s *AlarmService) Get(ctx context.Context, uniqueID string) (*model.Alarm, error) {
	if uniqueID == "" {
		return nil, model.NewValidationError("uniqueId", "alarm ID is required")
	}
	return s.store.Alarms().Get(ctx, uniqueID)
}

// Create registers a new alarm for an existing patient and assigns its
// unique id.
func (s *AlarmService) Create(ctx context.Context, a *model.Alarm) (*model.Alarm, error) {
	if a.OwnerID == "" {
		return nil, model.NewValidationError("ownerId", "owner ID is required")
	}
	if a.Text == "" {
		return nil, model.NewValidationError("text", "reminder text is required")
	}
	if _, err := s.store.Patients().Get(ctx, a.OwnerID); err != nil {
		return nil, err
	}
	a.UniqueID = uuid.New().String()
	a.Active = true
	if a.Date == "" {
		a.Date = s.now().In(s.loc).Format("2006-01-02")
	}
	log.Info().Str("ownerID", a.OwnerID).Str("alarmID", a.UniqueID).Msg("Creating alarm")
	return s.store.Alarms().Create(ctx, a)
}

func (s *AlarmService) Update(ctx context.Context, uniqueID string, patch model.AlarmPatch) (*model.Alarm, error) {
	if uniqueID == "" {
		return nil, model.NewValidationError("uniqueId", "alarm ID is required")
	}
	if patch.Text != nil && *patch.Text == "" {
		return nil, model.NewValidationError("text", "reminder text cannot be empty")
	}
	return s.store.Alarms().Update(ctx, uniqueID, patch)
}

func (s *AlarmService) Delete(ctx context.Context, uniqueID string) error {
	if uniqueID == "" {
		return model.NewValidationError("uniqueId", "alarm ID is required")
	}
	log.Info().Str("alarmID", uniqueID).Msg("Deleting alarm")
	return s.store.Alarms().Delete(ctx, uniqueID)
}

// SendNow delivers the alarm immediately through the gateway and records the
// send time. The lastSent update happens only after the gateway accepted the
// message.
func (s *AlarmService) SendNow(ctx context.Context, uniqueID string) error {
	if s.notifier == nil {
		return model.NewValidationError("gateway", "no WhatsApp gateway configured")
	}
	a, err := s.Get(ctx, uniqueID)
	if err != nil {
		return err
	}
	p, err := s.store.Patients().Get(ctx, a.OwnerID)
	if err != nil {
		return err
	}
	if err := s.notifier.Send(ctx, p.Phone(), a.Text); err != nil {
		log.Error().Err(err).Str("alarmID", uniqueID).Msg("Reminder delivery failed")
		return err
	}
	return s.store.Alarms().MarkSent(ctx, uniqueID, s.now().In(s.loc).Format(time.RFC3339))
}
