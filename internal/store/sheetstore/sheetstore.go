// Package sheetstore implements store.Store over the remote spreadsheet.
// Every mutation re-reads the tab and locates its target row by business key
// before writing: the ingestion pipeline appends rows concurrently, so row
// positions are only valid within a single read.
package sheetstore

import (
	"context"

	"github.com/nutridash/nutridash-server/internal/model"
	"github.com/nutridash/nutridash-server/internal/rowmap"
	"github.com/nutridash/nutridash-server/internal/sheets"
	"github.com/nutridash/nutridash-server/internal/store"
)

// Store is the sheets-backed store.Store.
type Store struct {
	patients   patients
	meals      meals
	water      water
	alarms     alarms
	categories categories
}

// New builds a Store over the given tabular client.
func New(tab sheets.Tabular) *Store {
	return &Store{
		patients:   patients{tab},
		meals:      meals{tab},
		water:      water{tab},
		alarms:     alarms{tab},
		categories: categories{tab},
	}
}

var _ store.Store = (*Store)(nil)

func (s *Store) Patients() store.Patients     { return s.patients }
func (s *Store) Meals() store.Meals           { return s.meals }
func (s *Store) Water() store.Water           { return s.water }
func (s *Store) Alarms() store.Alarms         { return s.alarms }
func (s *Store) Categories() store.Categories { return s.categories }

// Ping verifies the spreadsheet is reachable by reading the smallest tab.
func (s *Store) Ping(ctx context.Context) error {
	_, err := s.categories.tab.ReadTab(ctx, sheets.TabCategories)
	return err
}

// findRow reads a tab and returns the index of the first row matching the
// predicate, or -1 when no row matches.
func findRow(rows [][]string, match func(row []string) bool) int {
	for i, row := range rows {
		if match(row) {
			return i
		}
	}
	return -1
}

func keyAt(col int, key string) func(row []string) bool {
	return func(row []string) bool {
		return col < len(row) && row[col] == key
	}
}

// --- Patients ---

type patients struct{ tab sheets.Tabular }

func (p patients) List(ctx context.Context) ([]*model.Patient, error) {
	rows, err := p.tab.ReadTab(ctx, sheets.TabProfile)
	if err != nil {
		return nil, err
	}
	out := make([]*model.Patient, 0, len(rows))
	for _, row := range rows {
		if rec := rowmap.Patient(row); rec != nil {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (p patients) Get(ctx context.Context, userID string) (*model.Patient, error) {
	rows, err := p.tab.ReadTab(ctx, sheets.TabProfile)
	if err != nil {
		return nil, err
	}
	i := findRow(rows, keyAt(0, userID))
	if i < 0 {
		return nil, model.NewNotFoundError("userId", "patient "+userID+" not found")
	}
	return rowmap.Patient(rows[i]), nil
}

func (p patients) Update(ctx context.Context, userID string, patch model.PatientPatch) (*model.Patient, error) {
	rows, err := p.tab.ReadTab(ctx, sheets.TabProfile)
	if err != nil {
		return nil, err
	}
	i := findRow(rows, keyAt(0, userID))
	if i < 0 {
		return nil, model.NewNotFoundError("userId", "patient "+userID+" not found")
	}
	rec := rowmap.Patient(rows[i])
	applyPatientPatch(rec, patch)
	if err := p.tab.UpdateRow(ctx, sheets.TabProfile, i, rowmap.PatientRow(rec)); err != nil {
		return nil, err
	}
	return rec, nil
}

func (p patients) Delete(ctx context.Context, userID string) error {
	rows, err := p.tab.ReadTab(ctx, sheets.TabProfile)
	if err != nil {
		return err
	}
	i := findRow(rows, keyAt(0, userID))
	if i < 0 {
		return model.NewNotFoundError("userId", "patient "+userID+" not found")
	}
	return p.tab.DeleteRow(ctx, sheets.TabProfile, i)
}

func applyPatientPatch(rec *model.Patient, patch model.PatientPatch) {
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
}

// --- Meals ---

type meals struct{ tab sheets.Tabular }

func (m meals) List(ctx context.Context) ([]*model.Meal, error) {
	rows, err := m.tab.ReadTab(ctx, sheets.TabMeals)
	if err != nil {
		return nil, err
	}
	out := make([]*model.Meal, 0, len(rows))
	for _, row := range rows {
		if rec := rowmap.Meal(row); rec != nil {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m meals) ListByOwner(ctx context.Context, ownerID string) ([]*model.Meal, error) {
	all, err := m.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*model.Meal, 0, len(all))
	for _, rec := range all {
		if rec.OwnerID == ownerID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m meals) Create(ctx context.Context, rec *model.Meal) (*model.Meal, error) {
	if err := m.tab.AppendRow(ctx, sheets.TabMeals, rowmap.MealRow(rec)); err != nil {
		return nil, err
	}
	return rec, nil
}

// --- Water ---

type water struct{ tab sheets.Tabular }

func (w water) List(ctx context.Context) ([]*model.WaterLog, error) {
	rows, err := w.tab.ReadTab(ctx, sheets.TabWater)
	if err != nil {
		return nil, err
	}
	out := make([]*model.WaterLog, 0, len(rows))
	for _, row := range rows {
		if rec := rowmap.Water(row); rec != nil {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (w water) ListByOwner(ctx context.Context, ownerID string) ([]*model.WaterLog, error) {
	all, err := w.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*model.WaterLog, 0, len(all))
	for _, rec := range all {
		if rec.OwnerID == ownerID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (w water) Create(ctx context.Context, rec *model.WaterLog) (*model.WaterLog, error) {
	if err := w.tab.AppendRow(ctx, sheets.TabWater, rowmap.WaterRow(rec)); err != nil {
		return nil, err
	}
	return rec, nil
}

// --- Alarms ---

type alarms struct{ tab sheets.Tabular }

func (a alarms) List(ctx context.Context) ([]*model.Alarm, error) {
	rows, err := a.tab.ReadTab(ctx, sheets.TabAlarms)
	if err != nil {
		return nil, err
	}
	out := make([]*model.Alarm, 0, len(rows))
	for _, row := range rows {
		if rec := rowmap.Alarm(row); rec != nil {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (a alarms) ListByOwner(ctx context.Context, ownerID string) ([]*model.Alarm, error) {
	all, err := a.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*model.Alarm, 0, len(all))
	for _, rec := range all {
		if rec.OwnerID == ownerID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (a alarms) Get(ctx context.Context, uniqueID string) (*model.Alarm, error) {
	rows, err := a.tab.ReadTab(ctx, sheets.TabAlarms)
	if err != nil {
		return nil, err
	}
	i := findRow(rows, keyAt(0, uniqueID))
	if i < 0 {
		return nil, model.NewNotFoundError("uniqueId", "alarm "+uniqueID+" not found")
	}
	return rowmap.Alarm(rows[i]), nil
}

func (a alarms) Create(ctx context.Context, rec *model.Alarm) (*model.Alarm, error) {
	if err := a.tab.AppendRow(ctx, sheets.TabAlarms, rowmap.AlarmRow(rec)); err != nil {
		return nil, err
	}
	return rec, nil
}

func (a alarms) Update(ctx context.Context, uniqueID string, patch model.AlarmPatch) (*model.Alarm, error) {
	rows, err := a.tab.ReadTab(ctx, sheets.TabAlarms)
	if err != nil {
		return nil, err
	}
	i := findRow(rows, keyAt(0, uniqueID))
	if i < 0 {
		return nil, model.NewNotFoundError("uniqueId", "alarm "+uniqueID+" not found")
	}
	rec := rowmap.Alarm(rows[i])
	applyAlarmPatch(rec, patch)
	if err := a.tab.UpdateRow(ctx, sheets.TabAlarms, i, rowmap.AlarmRow(rec)); err != nil {
		return nil, err
	}
	return rec, nil
}

func (a alarms) MarkSent(ctx context.Context, uniqueID, sentAt string) error {
	rows, err := a.tab.ReadTab(ctx, sheets.TabAlarms)
	if err != nil {
		return err
	}
	i := findRow(rows, keyAt(0, uniqueID))
	if i < 0 {
		return model.NewNotFoundError("uniqueId", "alarm "+uniqueID+" not found")
	}
	rec := rowmap.Alarm(rows[i])
	rec.LastSent = sentAt
	return a.tab.UpdateRow(ctx, sheets.TabAlarms, i, rowmap.AlarmRow(rec))
}

func (a alarms) Delete(ctx context.Context, uniqueID string) error {
	rows, err := a.tab.ReadTab(ctx, sheets.TabAlarms)
	if err != nil {
		return err
	}
	i := findRow(rows, keyAt(0, uniqueID))
	if i < 0 {
		return model.NewNotFoundError("uniqueId", "alarm "+uniqueID+" not found")
	}
	return a.tab.DeleteRow(ctx, sheets.TabAlarms, i)
}

func applyAlarmPatch(rec *model.Alarm, patch model.AlarmPatch) {
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
}

// --- Categories ---

type categories struct{ tab sheets.Tabular }

func (c categories) List(ctx context.Context) ([]*model.CategoryRecord, error) {
	rows, err := c.tab.ReadTab(ctx, sheets.TabCategories)
	if err != nil {
		return nil, err
	}
	out := make([]*model.CategoryRecord, 0, len(rows))
	for _, row := range rows {
		if rec := rowmap.Category(row); rec != nil {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (c categories) Get(ctx context.Context, categoryID string) (*model.CategoryRecord, error) {
	rows, err := c.tab.ReadTab(ctx, sheets.TabCategories)
	if err != nil {
		return nil, err
	}
	i := findRow(rows, keyAt(0, categoryID))
	if i < 0 {
		return nil, model.NewNotFoundError("categoryId", "category "+categoryID+" not found")
	}
	return rowmap.Category(rows[i]), nil
}

func (c categories) Create(ctx context.Context, rec *model.CategoryRecord) (*model.CategoryRecord, error) {
	if err := c.tab.AppendRow(ctx, sheets.TabCategories, rowmap.CategoryRow(rec)); err != nil {
		return nil, err
	}
	return rec, nil
}

// Rename updates the category's display name. Meal descriptions are left
// untouched: membership rides on the stored category id, so renaming twice
// is a no-op beyond the final name.
func (c categories) Rename(ctx context.Context, categoryID, newName string) (*model.CategoryRecord, error) {
	rows, err := c.tab.ReadTab(ctx, sheets.TabCategories)
	if err != nil {
		return nil, err
	}
	i := findRow(rows, keyAt(0, categoryID))
	if i < 0 {
		return nil, model.NewNotFoundError("categoryId", "category "+categoryID+" not found")
	}
	rec := rowmap.Category(rows[i])
	rec.Name = newName
	if err := c.tab.UpdateRow(ctx, sheets.TabCategories, i, rowmap.CategoryRow(rec)); err != nil {
		return nil, err
	}
	return rec, nil
}

func (c categories) Delete(ctx context.Context, categoryID string) error {
	rows, err := c.tab.ReadTab(ctx, sheets.TabCategories)
	if err != nil {
		return err
	}
	i := findRow(rows, keyAt(0, categoryID))
	if i < 0 {
		return model.NewNotFoundError("categoryId", "category "+categoryID+" not found")
	}
	return c.tab.DeleteRow(ctx, sheets.TabCategories, i)
}
