// Package store defines the persistence operations required by services.
// Implementations live under internal/store/<driver>/ (sheetstore for the
// remote spreadsheet, sqlitestore for local development, memstore for tests)
// plus the cached read-through decorator.
package store

import (
	"context"

	"github.com/nutridash/nutridash-server/internal/model"
)

// Store exposes the per-tab row collections. Mutations locate rows by
// business key on every call; implementations must never rely on row
// positions surviving across calls.
type Store interface {
	Patients() Patients
	Meals() Meals
	Water() Water
	Alarms() Alarms
	Categories() Categories
	Ping(ctx context.Context) error
}

type Patients interface {
	List(ctx context.Context) ([]*model.Patient, error)
	Get(ctx context.Context, userID string) (*model.Patient, error)
	Update(ctx context.Context, userID string, patch model.PatientPatch) (*model.Patient, error)
	Delete(ctx context.Context, userID string) error
}

type Meals interface {
	List(ctx context.Context) ([]*model.Meal, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*model.Meal, error)
	Create(ctx context.Context, m *model.Meal) (*model.Meal, error)
}

type Water interface {
	List(ctx context.Context) ([]*model.WaterLog, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*model.WaterLog, error)
	Create(ctx context.Context, w *model.WaterLog) (*model.WaterLog, error)
}

type Alarms interface {
	List(ctx context.Context) ([]*model.Alarm, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*model.Alarm, error)
	Get(ctx context.Context, uniqueID string) (*model.Alarm, error)
	Create(ctx context.Context, a *model.Alarm) (*model.Alarm, error)
	Update(ctx context.Context, uniqueID string, patch model.AlarmPatch) (*model.Alarm, error)
	MarkSent(ctx context.Context, uniqueID, sentAt string) error
	Delete(ctx context.Context, uniqueID string) error
}

type Categories interface {
	List(ctx context.Context) ([]*model.CategoryRecord, error)
	Get(ctx context.Context, categoryID string) (*model.CategoryRecord, error)
	Create(ctx context.Context, c *model.CategoryRecord) (*model.CategoryRecord, error)
	Rename(ctx context.Context, categoryID, newName string) (*model.CategoryRecord, error)
	Delete(ctx context.Context, categoryID string) error
}
