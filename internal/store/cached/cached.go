// Package cached decorates a store.Store with a short-TTL read cache per
// tab. Dashboard views hit several tabs per render; the cache collapses those
// bursts into one remote read per tab. Every mutation invalidates its tab so
// the next view re-reads fresh rows.
package cached

import (
	"context"
	"sync"
	"time"

	"github.com/nutridash/nutridash-server/internal/model"
	"github.com/nutridash/nutridash-server/internal/store"
)

const (
	keyPatients   = "patients"
	keyMeals      = "meals"
	keyWater      = "water"
	keyAlarms     = "alarms"
	keyCategories = "categories"
)

type entry struct {
	value interface{}
	at    time.Time
}

// Store is the caching store.Store decorator.
type Store struct {
	inner store.Store
	ttl   time.Duration
	now   func() time.Time

	mu      sync.Mutex
	entries map[string]entry
}

// New wraps inner with a cache holding list reads for ttl.
func New(inner store.Store, ttl time.Duration) *Store {
	return &Store{
		inner:   inner,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

var _ store.Store = (*Store)(nil)

func (s *Store) Patients() store.Patients     { return patients{s} }
func (s *Store) Meals() store.Meals           { return meals{s} }
func (s *Store) Water() store.Water           { return water{s} }
func (s *Store) Alarms() store.Alarms         { return alarms{s} }
func (s *Store) Categories() store.Categories { return categories{s} }

func (s *Store) Ping(ctx context.Context) error { return s.inner.Ping(ctx) }

// Invalidate drops the cached rows for the given tabs.
func (s *Store) Invalidate(keys ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.entries, k)
	}
}

func (s *Store) cached(key string) (interface{}, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok || s.now().Sub(e.at) > s.ttl {
		return nil, false
	}
	return e.value, true
}

func (s *Store) put(key string, value interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry{value: value, at: s.now()}
}

// --- Patients ---

type patients struct{ s *Store }

func (p patients) List(ctx context.Context) ([]*model.Patient, error) {
	if v, ok := p.s.cached(keyPatients); ok {
		return v.([]*model.Patient), nil
	}
	lst, err := p.s.inner.Patients().List(ctx)
	if err != nil {
		return nil, err
	}
	p.s.put(keyPatients, lst)
	return lst, nil
}

func (p patients) Get(ctx context.Context, userID string) (*model.Patient, error) {
	lst, err := p.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, rec := range lst {
		if rec.UserID == userID {
			return rec, nil
		}
	}
	return nil, model.NewNotFoundError("userId", "patient "+userID+" not found")
}

func (p patients) Update(ctx context.Context, userID string, patch model.PatientPatch) (*model.Patient, error) {
	rec, err := p.s.inner.Patients().Update(ctx, userID, patch)
	if err != nil {
		return nil, err
	}
	p.s.Invalidate(keyPatients)
	return rec, nil
}

func (p patients) Delete(ctx context.Context, userID string) error {
	if err := p.s.inner.Patients().Delete(ctx, userID); err != nil {
		return err
	}
	p.s.Invalidate(keyPatients)
	return nil
}

// --- Meals ---

type meals struct{ s *Store }

func (m meals) List(ctx context.Context) ([]*model.Meal, error) {
	if v, ok := m.s.cached(keyMeals); ok {
		return v.([]*model.Meal), nil
	}
	lst, err := m.s.inner.Meals().List(ctx)
	if err != nil {
		return nil, err
	}
	m.s.put(keyMeals, lst)
	return lst, nil
}

func (m meals) ListByOwner(ctx context.Context, ownerID string) ([]*model.Meal, error) {
	lst, err := m.List(ctx)
	if err != nil {
		return nil, err
	}
	out := []*model.Meal{}
	for _, rec := range lst {
		if rec.OwnerID == ownerID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m meals) Create(ctx context.Context, rec *model.Meal) (*model.Meal, error) {
	created, err := m.s.inner.Meals().Create(ctx, rec)
	if err != nil {
		return nil, err
	}
	m.s.Invalidate(keyMeals)
	return created, nil
}

// --- Water ---

type water struct{ s *Store }

func (w water) List(ctx context.Context) ([]*model.WaterLog, error) {
	if v, ok := w.s.cached(keyWater); ok {
		return v.([]*model.WaterLog), nil
	}
	lst, err := w.s.inner.Water().List(ctx)
	if err != nil {
		return nil, err
	}
	w.s.put(keyWater, lst)
	return lst, nil
}

func (w water) ListByOwner(ctx context.Context, ownerID string) ([]*model.WaterLog, error) {
	lst, err := w.List(ctx)
	if err != nil {
		return nil, err
	}
	out := []*model.WaterLog{}
	for _, rec := range lst {
		if rec.OwnerID == ownerID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (w water) Create(ctx context.Context, rec *model.WaterLog) (*model.WaterLog, error) {
	created, err := w.s.inner.Water().Create(ctx, rec)
	if err != nil {
		return nil, err
	}
	w.s.Invalidate(keyWater)
	return created, nil
}

// --- Alarms ---

type alarms struct{ s *Store }

func (a alarms) List(ctx context.Context) ([]*model.Alarm, error) {
	if v, ok := a.s.cached(keyAlarms); ok {
		return v.([]*model.Alarm), nil
	}
	lst, err := a.s.inner.Alarms().List(ctx)
	if err != nil {
		return nil, err
	}
	a.s.put(keyAlarms, lst)
	return lst, nil
}

func (a alarms) ListByOwner(ctx context.Context, ownerID string) ([]*model.Alarm, error) {
	lst, err := a.List(ctx)
	if err != nil {
		return nil, err
	}
	out := []*model.Alarm{}
	for _, rec := range lst {
		if rec.OwnerID == ownerID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (a alarms) Get(ctx context.Context, uniqueID string) (*model.Alarm, error) {
	lst, err := a.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, rec := range lst {
		if rec.UniqueID == uniqueID {
			return rec, nil
		}
	}
	return nil, model.NewNotFoundError("uniqueId", "alarm "+uniqueID+" not found")
}

func (a alarms) Create(ctx context.Context, rec *model.Alarm) (*model.Alarm, error) {
	created, err := a.s.inner.Alarms().Create(ctx, rec)
	if err != nil {
		return nil, err
	}
	a.s.Invalidate(keyAlarms)
	return created, nil
}

func (a alarms) Update(ctx context.Context, uniqueID string, patch model.AlarmPatch) (*model.Alarm, error) {
	rec, err := a.s.inner.Alarms().Update(ctx, uniqueID, patch)
	if err != nil {
		return nil, err
	}
	a.s.Invalidate(keyAlarms)
	return rec, nil
}

func (a alarms) MarkSent(ctx context.Context, uniqueID, sentAt string) error {
	if err := a.s.inner.Alarms().MarkSent(ctx, uniqueID, sentAt); err != nil {
		return err
	}
	a.s.Invalidate(keyAlarms)
	return nil
}

func (a alarms) Delete(ctx context.Context, uniqueID string) error {
	if err := a.s.inner.Alarms().Delete(ctx, uniqueID); err != nil {
		return err
	}
	a.s.Invalidate(keyAlarms)
	return nil
}

// --- Categories ---

type categories struct{ s *Store }

func (c categories) List(ctx context.Context) ([]*model.CategoryRecord, error) {
	if v, ok := c.s.cached(keyCategories); ok {
		return v.([]*model.CategoryRecord), nil
	}
	lst, err := c.s.inner.Categories().List(ctx)
	if err != nil {
		return nil, err
	}
	c.s.put(keyCategories, lst)
	return lst, nil
}

func (c categories) Get(ctx context.Context, categoryID string) (*model.CategoryRecord, error) {
	lst, err := c.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, rec := range lst {
		if rec.CategoryID == categoryID {
			return rec, nil
		}
	}
	return nil, model.NewNotFoundError("categoryId", "category "+categoryID+" not found")
}

func (c categories) Create(ctx context.Context, rec *model.CategoryRecord) (*model.CategoryRecord, error) {
	created, err := c.s.inner.Categories().Create(ctx, rec)
	if err != nil {
		return nil, err
	}
	c.s.Invalidate(keyCategories)
	return created, nil
}

func (c categories) Rename(ctx context.Context, categoryID, newName string) (*model.CategoryRecord, error) {
	rec, err := c.s.inner.Categories().Rename(ctx, categoryID, newName)
	if err != nil {
		return nil, err
	}
	c.s.Invalidate(keyCategories)
	return rec, nil
}

func (c categories) Delete(ctx context.Context, categoryID string) error {
	if err := c.s.inner.Categories().Delete(ctx, categoryID); err != nil {
		return err
	}
	c.s.Invalidate(keyCategories)
	return nil
}
