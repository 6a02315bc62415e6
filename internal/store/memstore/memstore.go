// Package memstore is an in-memory store.Store used by tests and by nothing
// else. It mirrors the spreadsheet semantics: linear scans by business key,
// last write wins, no cross-tab transactions.
package memstore

import (
	"context"
	"sync"

	"github.com/nutridash/nutridash-server/internal/model"
	"github.com/nutridash/nutridash-server/internal/store"
)

type Store struct {
	mu         sync.Mutex
	patients   []*model.Patient
	meals      []*model.Meal
	water      []*model.WaterLog
	alarms     []*model.Alarm
	categories []*model.CategoryRecord
}

func New() *Store { return &Store{} }

var _ store.Store = (*Store)(nil)

func (s *Store) Patients() store.Patients     { return patients{s} }
func (s *Store) Meals() store.Meals           { return meals{s} }
func (s *Store) Water() store.Water           { return water{s} }
func (s *Store) Alarms() store.Alarms         { return alarms{s} }
func (s *Store) Categories() store.Categories { return categories{s} }

func (s *Store) Ping(context.Context) error { return nil }

// Seed helpers for tests.

func (s *Store) SeedPatient(p *model.Patient) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.patients = append(s.patients, p)
	return s
}

func (s *Store) SeedMeal(m *model.Meal) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meals = append(s.meals, m)
	return s
}

func (s *Store) SeedWater(w *model.WaterLog) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.water = append(s.water, w)
	return s
}

func (s *Store) SeedAlarm(a *model.Alarm) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alarms = append(s.alarms, a)
	return s
}

func (s *Store) SeedCategory(c *model.CategoryRecord) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = append(s.categories, c)
	return s
}

// --- Patients ---

type patients struct{ s *Store }

func (p patients) List(context.Context) ([]*model.Patient, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	out := make([]*model.Patient, len(p.s.patients))
	for i, rec := range p.s.patients {
		cp := *rec
		out[i] = &cp
	}
	return out, nil
}

func (p patients) Get(_ context.Context, userID string) (*model.Patient, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	for _, rec := range p.s.patients {
		if rec.UserID == userID {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, model.NewNotFoundError("userId", "patient "+userID+" not found")
}

func (p patients) Update(_ context.Context, userID string, patch model.PatientPatch) (*model.Patient, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	for _, rec := range p.s.patients {
		if rec.UserID != userID {
			continue
		}
		if patch.Name != nil {
			rec.Name = *patch.Name
		}
		if patch.Height != nil {
			rec.Height = *patch.Height
		}
		if patch.Weight != nil {
			rec.Weight = *patch.Weight
		}
		if patch.Age != nil {
			rec.Age = *patch.Age
		}
		if patch.CaloriesTarget != nil {
			rec.CaloriesTarget = *patch.CaloriesTarget
		}
		if patch.ProteinTarget != nil {
			rec.ProteinTarget = *patch.ProteinTarget
		}
		if patch.CarbsTarget != nil {
			rec.CarbsTarget = *patch.CarbsTarget
		}
		if patch.FatTarget != nil {
			rec.FatTarget = *patch.FatTarget
		}
		if patch.WeightTarget != nil {
			rec.WeightTarget = *patch.WeightTarget
		}
		if patch.Email != nil {
			rec.Email = patch.Email
		}
		cp := *rec
		return &cp, nil
	}
	return nil, model.NewNotFoundError("userId", "patient "+userID+" not found")
}

func (p patients) Delete(_ context.Context, userID string) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	for i, rec := range p.s.patients {
		if rec.UserID == userID {
			p.s.patients = append(p.s.patients[:i], p.s.patients[i+1:]...)
			return nil
		}
	}
	return model.NewNotFoundError("userId", "patient "+userID+" not found")
}

// --- Meals ---

type meals struct{ s *Store }

func (m meals) List(context.Context) ([]*model.Meal, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	return append([]*model.Meal(nil), m.s.meals...), nil
}

func (m meals) ListByOwner(_ context.Context, ownerID string) ([]*model.Meal, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	out := []*model.Meal{}
	for _, rec := range m.s.meals {
		if rec.OwnerID == ownerID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m meals) Create(_ context.Context, rec *model.Meal) (*model.Meal, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.meals = append(m.s.meals, rec)
	return rec, nil
}

// --- Water ---

type water struct{ s *Store }

func (w water) List(context.Context) ([]*model.WaterLog, error) {
	w.s.mu.Lock()
	defer w.s.mu.Unlock()
	return append([]*model.WaterLog(nil), w.s.water...), nil
}

func (w water) ListByOwner(_ context.Context, ownerID string) ([]*model.WaterLog, error) {
	w.s.mu.Lock()
	defer w.s.mu.Unlock()
	out := []*model.WaterLog{}
	for _, rec := range w.s.water {
		if rec.OwnerID == ownerID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (w water) Create(_ context.Context, rec *model.WaterLog) (*model.WaterLog, error) {
	w.s.mu.Lock()
	defer w.s.mu.Unlock()
	w.s.water = append(w.s.water, rec)
	return rec, nil
}

// --- Alarms ---

type alarms struct{ s *Store }

func (a alarms) List(context.Context) ([]*model.Alarm, error) {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	return append([]*model.Alarm(nil), a.s.alarms...), nil
}

func (a alarms) ListByOwner(_ context.Context, ownerID string) ([]*model.Alarm, error) {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	out := []*model.Alarm{}
	for _, rec := range a.s.alarms {
		if rec.OwnerID == ownerID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (a alarms) Get(_ context.Context, uniqueID string) (*model.Alarm, error) {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	for _, rec := range a.s.alarms {
		if rec.UniqueID == uniqueID {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, model.NewNotFoundError("uniqueId", "alarm "+uniqueID+" not found")
}

func (a alarms) Create(_ context.Context, rec *model.Alarm) (*model.Alarm, error) {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	a.s.alarms = append(a.s.alarms, rec)
	return rec, nil
}

func (a alarms) Update(_ context.Context, uniqueID string, patch model.AlarmPatch) (*model.Alarm, error) {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	for _, rec := range a.s.alarms {
		if rec.UniqueID != uniqueID {
			continue
		}
		if patch.Text != nil {
			rec.Text = *patch.Text
		}
		if patch.TimeOfDay != nil {
			rec.TimeOfDay = *patch.TimeOfDay
		}
		if patch.IntervalMinutes != nil {
			rec.IntervalMinutes = *patch.IntervalMinutes
		}
		if patch.Active != nil {
			rec.Active = *patch.Active
		}
		cp := *rec
		return &cp, nil
	}
	return nil, model.NewNotFoundError("uniqueId", "alarm "+uniqueID+" not found")
}

func (a alarms) MarkSent(_ context.Context, uniqueID, sentAt string) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	for _, rec := range a.s.alarms {
		if rec.UniqueID == uniqueID {
			rec.LastSent = sentAt
			return nil
		}
	}
	return model.NewNotFoundError("uniqueId", "alarm "+uniqueID+" not found")
}

func (a alarms) Delete(_ context.Context, uniqueID string) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	for i, rec := range a.s.alarms {
		if rec.UniqueID == uniqueID {
			a.s.alarms = append(a.s.alarms[:i], a.s.alarms[i+1:]...)
			return nil
		}
	}
	return model.NewNotFoundError("uniqueId", "alarm "+uniqueID+" not found")
}

// --- Categories ---

type categories struct{ s *Store }

func (c categories) List(context.Context) ([]*model.CategoryRecord, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	return append([]*model.CategoryRecord(nil), c.s.categories...), nil
}

func (c categories) Get(_ context.Context, categoryID string) (*model.CategoryRecord, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	for _, rec := range c.s.categories {
		if rec.CategoryID == categoryID {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, model.NewNotFoundError("categoryId", "category "+categoryID+" not found")
}

func (c categories) Create(_ context.Context, rec *model.CategoryRecord) (*model.CategoryRecord, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	c.s.categories = append(c.s.categories, rec)
	return rec, nil
}

func (c categories) Rename(_ context.Context, categoryID, newName string) (*model.CategoryRecord, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	for _, rec := range c.s.categories {
		if rec.CategoryID == categoryID {
			rec.Name = newName
			cp := *rec
			return &cp, nil
		}
	}
	return nil, model.NewNotFoundError("categoryId", "category "+categoryID+" not found")
}

func (c categories) Delete(_ context.Context, categoryID string) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	for i, rec := range c.s.categories {
		if rec.CategoryID == categoryID {
			c.s.categories = append(c.s.categories[:i], c.s.categories[i+1:]...)
			return nil
		}
	}
	return model.NewNotFoundError("categoryId", "category "+categoryID+" not found")
}
