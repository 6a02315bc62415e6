// Package sheets wraps access to the remote tabular store. The Tabular
// interface is the seam the row stores are built on: real deployments use the
// Google Sheets client, tests use an in-memory fake.
package sheets

import "context"

// Tab names in the backing spreadsheet. The ingestion pipeline writes the
// same tabs, so the names are part of the external contract.
const (
	TabProfile    = "Profile"
	TabMeals      = "Meals"
	TabWater      = "Water"
	TabAlarms     = "Alarms"
	TabCategories = "Categories"
)

// Tabular exposes range reads and row-level writes against a named tab. Row
// indices are zero-based over data rows (the header row is not visible
// through this interface) and are only valid against the read they came
// from: callers must re-read and re-locate rows before every mutation.
type Tabular interface {
	// ReadTab fetches all data rows of a tab.
	ReadTab(ctx context.Context, tab string) ([][]string, error)
	// UpdateRow overwrites one row in place.
	UpdateRow(ctx context.Context, tab string, row int, values []string) error
	// AppendRow adds a row after the last data row.
	AppendRow(ctx context.Context, tab string, values []string) error
	// DeleteRow removes one row, shifting later rows up.
	DeleteRow(ctx context.Context, tab string, row int) error
}
