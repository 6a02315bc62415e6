// Package sqlitestore implements store.Store on a local SQLite file. It is
// the development backend: the same service code runs against it and against
// the remote spreadsheet.
package sqlitestore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/nutridash/nutridash-server/internal/model"
	"github.com/nutridash/nutridash-server/internal/store"
)

// Store is the sqlite-backed store.Store.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the database file and ensures the schema exists.
func New(path string) (*Store, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	return NewWithDB(db)
}

// NewWithDB wires an existing connection (used by the factory and tests).
func NewWithDB(db *sql.DB) (*Store, error) {
	if err := InitSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

var _ store.Store = (*Store)(nil)

// DB exposes the underlying connection for local tooling.
func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Patients() store.Patients     { return patients{s.db} }
func (s *Store) Meals() store.Meals           { return meals{s.db} }
func (s *Store) Water() store.Water           { return water{s.db} }
func (s *Store) Alarms() store.Alarms         { return alarms{s.db} }
func (s *Store) Categories() store.Categories { return categories{s.db} }

func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

// --- Patients ---

type patients struct{ db *sql.DB }

const patientColumns = `user_id, name, height, weight, age, calories_target, protein_target, carbs_target, fat_target, weight_target, email, password, created_at`

func scanPatient(row interface{ Scan(...interface{}) error }) (*model.Patient, error) {
	var p model.Patient
	err := row.Scan(&p.UserID, &p.Name, &p.Height, &p.Weight, &p.Age,
		&p.CaloriesTarget, &p.ProteinTarget, &p.CarbsTarget, &p.FatTarget, &p.WeightTarget,
		&p.Email, &p.Password, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.NewNotFoundError("userId", "patient not found")
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (p patients) List(ctx context.Context) ([]*model.Patient, error) {
	rows, err := p.db.QueryContext(ctx, `SELECT `+patientColumns+` FROM patients ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []*model.Patient
	for rows.Next() {
		rec, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (p patients) Get(ctx context.Context, userID string) (*model.Patient, error) {
	return scanPatient(p.db.QueryRowContext(ctx, `SELECT `+patientColumns+` FROM patients WHERE user_id = ?`, userID))
}

func (p patients) Update(ctx context.Context, userID string, patch model.PatientPatch) (*model.Patient, error) {
	rec, err := p.Get(ctx, userID)
	if err != nil {
		return nil, err
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
	_, err = p.db.ExecContext(ctx, `UPDATE patients SET name=?, height=?, weight=?, age=?, calories_target=?, protein_target=?, carbs_target=?, fat_target=?, weight_target=?, email=? WHERE user_id=?`,
		rec.Name, rec.Height, rec.Weight, rec.Age, rec.CaloriesTarget, rec.ProteinTarget, rec.CarbsTarget, rec.FatTarget, rec.WeightTarget, rec.Email, userID)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (p patients) Delete(ctx context.Context, userID string) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM patients WHERE user_id = ?`, userID)
	if err != nil {
		return err
	}
	return requireAffected(res, "userId", "patient not found")
}

// --- Meals ---

type meals struct{ db *sql.DB }

const mealColumns = `owner_id, date, description, calories, protein, carbs, fat, category_id`

func (m meals) query(ctx context.Context, where string, args ...interface{}) ([]*model.Meal, error) {
	rows, err := m.db.QueryContext(ctx, `SELECT `+mealColumns+` FROM meals `+where+` ORDER BY id`, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := []*model.Meal{}
	for rows.Next() {
		var rec model.Meal
		if err := rows.Scan(&rec.OwnerID, &rec.Date, &rec.Description, &rec.Calories, &rec.Protein, &rec.Carbs, &rec.Fat, &rec.CategoryID); err != nil {
			return nil, err
		}
		out = append(out, &rec)
	}
	return out, rows.Err()
}

func (m meals) List(ctx context.Context) ([]*model.Meal, error) {
	return m.query(ctx, ``)
}

func (m meals) ListByOwner(ctx context.Context, ownerID string) ([]*model.Meal, error) {
	return m.query(ctx, `WHERE owner_id = ?`, ownerID)
}

func (m meals) Create(ctx context.Context, rec *model.Meal) (*model.Meal, error) {
	_, err := m.db.ExecContext(ctx, `INSERT INTO meals (`+mealColumns+`) VALUES (?,?,?,?,?,?,?,?)`,
		rec.OwnerID, rec.Date, rec.Description, rec.Calories, rec.Protein, rec.Carbs, rec.Fat, rec.CategoryID)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// --- Water ---

type water struct{ db *sql.DB }

func (w water) query(ctx context.Context, where string, args ...interface{}) ([]*model.WaterLog, error) {
	rows, err := w.db.QueryContext(ctx, `SELECT owner_id, date, amount_ml FROM water `+where+` ORDER BY id`, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := []*model.WaterLog{}
	for rows.Next() {
		var rec model.WaterLog
		if err := rows.Scan(&rec.OwnerID, &rec.Date, &rec.AmountML); err != nil {
			return nil, err
		}
		out = append(out, &rec)
	}
	return out, rows.Err()
}

func (w water) List(ctx context.Context) ([]*model.WaterLog, error) {
	return w.query(ctx, ``)
}

func (w water) ListByOwner(ctx context.Context, ownerID string) ([]*model.WaterLog, error) {
	return w.query(ctx, `WHERE owner_id = ?`, ownerID)
}

func (w water) Create(ctx context.Context, rec *model.WaterLog) (*model.WaterLog, error) {
	_, err := w.db.ExecContext(ctx, `INSERT INTO water (owner_id, date, amount_ml) VALUES (?,?,?)`,
		rec.OwnerID, rec.Date, rec.AmountML)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// --- Alarms ---

type alarms struct{ db *sql.DB }

const alarmColumns = `unique_id, owner_id, date, text, time_of_day, interval_minutes, active, last_sent`

func (a alarms) query(ctx context.Context, where string, args ...interface{}) ([]*model.Alarm, error) {
	rows, err := a.db.QueryContext(ctx, `SELECT `+alarmColumns+` FROM alarms `+where+` ORDER BY rowid`, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := []*model.Alarm{}
	for rows.Next() {
		var rec model.Alarm
		if err := rows.Scan(&rec.UniqueID, &rec.OwnerID, &rec.Date, &rec.Text, &rec.TimeOfDay, &rec.IntervalMinutes, &rec.Active, &rec.LastSent); err != nil {
			return nil, err
		}
		out = append(out, &rec)
	}
	return out, rows.Err()
}

func (a alarms) List(ctx context.Context) ([]*model.Alarm, error) {
	return a.query(ctx, ``)
}

func (a alarms) ListByOwner(ctx context.Context, ownerID string) ([]*model.Alarm, error) {
	return a.query(ctx, `WHERE owner_id = ?`, ownerID)
}

func (a alarms) Get(ctx context.Context, uniqueID string) (*model.Alarm, error) {
	var rec model.Alarm
	err := a.db.QueryRowContext(ctx, `SELECT `+alarmColumns+` FROM alarms WHERE unique_id = ?`, uniqueID).
		Scan(&rec.UniqueID, &rec.OwnerID, &rec.Date, &rec.Text, &rec.TimeOfDay, &rec.IntervalMinutes, &rec.Active, &rec.LastSent)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.NewNotFoundError("uniqueId", "alarm not found")
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (a alarms) Create(ctx context.Context, rec *model.Alarm) (*model.Alarm, error) {
	_, err := a.db.ExecContext(ctx, `INSERT INTO alarms (`+alarmColumns+`) VALUES (?,?,?,?,?,?,?,?)`,
		rec.UniqueID, rec.OwnerID, rec.Date, rec.Text, rec.TimeOfDay, rec.IntervalMinutes, rec.Active, rec.LastSent)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (a alarms) Update(ctx context.Context, uniqueID string, patch model.AlarmPatch) (*model.Alarm, error) {
	rec, err := a.Get(ctx, uniqueID)
	if err != nil {
		return nil, err
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
	_, err = a.db.ExecContext(ctx, `UPDATE alarms SET text=?, time_of_day=?, interval_minutes=?, active=? WHERE unique_id=?`,
		rec.Text, rec.TimeOfDay, rec.IntervalMinutes, rec.Active, uniqueID)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (a alarms) MarkSent(ctx context.Context, uniqueID, sentAt string) error {
	res, err := a.db.ExecContext(ctx, `UPDATE alarms SET last_sent = ? WHERE unique_id = ?`, sentAt, uniqueID)
	if err != nil {
		return err
	}
	return requireAffected(res, "uniqueId", "alarm not found")
}

func (a alarms) Delete(ctx context.Context, uniqueID string) error {
	res, err := a.db.ExecContext(ctx, `DELETE FROM alarms WHERE unique_id = ?`, uniqueID)
	if err != nil {
		return err
	}
	return requireAffected(res, "uniqueId", "alarm not found")
}

// --- Categories ---

type categories struct{ db *sql.DB }

func (c categories) List(ctx context.Context) ([]*model.CategoryRecord, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT category_id, name, description FROM categories ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := []*model.CategoryRecord{}
	for rows.Next() {
		var rec model.CategoryRecord
		if err := rows.Scan(&rec.CategoryID, &rec.Name, &rec.Description); err != nil {
			return nil, err
		}
		out = append(out, &rec)
	}
	return out, rows.Err()
}

func (c categories) Get(ctx context.Context, categoryID string) (*model.CategoryRecord, error) {
	var rec model.CategoryRecord
	err := c.db.QueryRowContext(ctx, `SELECT category_id, name, description FROM categories WHERE category_id = ?`, categoryID).
		Scan(&rec.CategoryID, &rec.Name, &rec.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.NewNotFoundError("categoryId", "category not found")
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c categories) Create(ctx context.Context, rec *model.CategoryRecord) (*model.CategoryRecord, error) {
	_, err := c.db.ExecContext(ctx, `INSERT INTO categories (category_id, name, description) VALUES (?,?,?)`,
		rec.CategoryID, rec.Name, rec.Description)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (c categories) Rename(ctx context.Context, categoryID, newName string) (*model.CategoryRecord, error) {
	res, err := c.db.ExecContext(ctx, `UPDATE categories SET name = ? WHERE category_id = ?`, newName, categoryID)
	if err != nil {
		return nil, err
	}
	if err := requireAffected(res, "categoryId", "category not found"); err != nil {
		return nil, err
	}
	return c.Get(ctx, categoryID)
}

func (c categories) Delete(ctx context.Context, categoryID string) error {
	res, err := c.db.ExecContext(ctx, `DELETE FROM categories WHERE category_id = ?`, categoryID)
	if err != nil {
		return err
	}
	return requireAffected(res, "categoryId", "category not found")
}

func requireAffected(res sql.Result, field, message string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return model.NewNotFoundError(field, message)
	}
	return nil
}
