// Package rowmap converts raw spreadsheet rows into typed records and back.
// Mapping is positional: the ingestion pipeline writes fixed column layouts
// per tab. Numeric fields substitute zero on parse failure and rows missing
// their mandatory key column are discarded. Dates are carried through as
// opaque strings; format handling happens at aggregation time.
package rowmap

import (
	"strconv"
	"strings"

	"github.com/nutridash/nutridash-server/internal/model"
)

// Column layouts per tab.
const (
	// Profile: userId, name, height, weight, age, caloriesTarget,
	// proteinTarget, carbsTarget, fatTarget, weightTarget, email, password,
	// createdAt
	ProfileColumns = 13

	// Meals: ownerId, date, description, calories, protein, carbs, fat,
	// categoryId
	MealColumns = 8

	// Water: ownerId, date, amountMl
	WaterColumns = 3

	// Alarms: uniqueId, ownerId, date, text, timeOfDay, intervalMinutes,
	// status, lastSent
	AlarmColumns = 8

	// Categories: categoryId, name, description
	CategoryColumns = 3
)

const (
	alarmStatusActive      = "active"
	alarmStatusDeactivated = "deactivated"
)

// field reads a column tolerating sparse or short rows.
func field(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// parseFloat parses a numeric cell, accepting the comma decimal separator the
// spreadsheet locale produces. Malformed or empty cells map to zero.
func parseFloat(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func parseInt(s string) int {
	if s == "" {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Patient maps a Profile row. Returns nil when the userId column is absent.
func Patient(row []string) *model.Patient {
	userID := field(row, 0)
	if userID == "" {
		return nil
	}
	return &model.Patient{
		UserID:         userID,
		Name:           field(row, 1),
		Height:         parseFloat(field(row, 2)),
		Weight:         parseFloat(field(row, 3)),
		Age:            parseInt(field(row, 4)),
		CaloriesTarget: parseFloat(field(row, 5)),
		ProteinTarget:  parseFloat(field(row, 6)),
		CarbsTarget:    parseFloat(field(row, 7)),
		FatTarget:      parseFloat(field(row, 8)),
		WeightTarget:   parseFloat(field(row, 9)),
		Email:          optString(field(row, 10)),
		Password:       optString(field(row, 11)),
		CreatedAt:      field(row, 12),
	}
}

// PatientRow serializes a patient back into its Profile row layout.
func PatientRow(p *model.Patient) []string {
	return []string{
		p.UserID,
		p.Name,
		formatFloat(p.Height),
		formatFloat(p.Weight),
		strconv.Itoa(p.Age),
		formatFloat(p.CaloriesTarget),
		formatFloat(p.ProteinTarget),
		formatFloat(p.CarbsTarget),
		formatFloat(p.FatTarget),
		formatFloat(p.WeightTarget),
		deref(p.Email),
		deref(p.Password),
		p.CreatedAt,
	}
}

// Meal maps a Meals row. Returns nil when the ownerId column is absent.
func Meal(row []string) *model.Meal {
	ownerID := field(row, 0)
	if ownerID == "" {
		return nil
	}
	return &model.Meal{
		OwnerID:     ownerID,
		Date:        field(row, 1),
		Description: field(row, 2),
		Calories:    parseFloat(field(row, 3)),
		Protein:     parseFloat(field(row, 4)),
		Carbs:       parseFloat(field(row, 5)),
		Fat:         parseFloat(field(row, 6)),
		CategoryID:  field(row, 7),
	}
}

// MealRow serializes a meal back into its Meals row layout.
func MealRow(m *model.Meal) []string {
	return []string{
		m.OwnerID,
		m.Date,
		m.Description,
		formatFloat(m.Calories),
		formatFloat(m.Protein),
		formatFloat(m.Carbs),
		formatFloat(m.Fat),
		m.CategoryID,
	}
}

// Water maps a Water row. Returns nil when the ownerId column is absent.
func Water(row []string) *model.WaterLog {
	ownerID := field(row, 0)
	if ownerID == "" {
		return nil
	}
	return &model.WaterLog{
		OwnerID:  ownerID,
		Date:     field(row, 1),
		AmountML: parseFloat(field(row, 2)),
	}
}

// WaterRow serializes a water log back into its Water row layout.
func WaterRow(w *model.WaterLog) []string {
	return []string{w.OwnerID, w.Date, formatFloat(w.AmountML)}
}

// Alarm maps an Alarms row. Returns nil when the uniqueId or ownerId column
// is absent.
func Alarm(row []string) *model.Alarm {
	uniqueID := field(row, 0)
	ownerID := field(row, 1)
	if uniqueID == "" || ownerID == "" {
		return nil
	}
	return &model.Alarm{
		UniqueID:        uniqueID,
		OwnerID:         ownerID,
		Date:            field(row, 2),
		Text:            field(row, 3),
		TimeOfDay:       field(row, 4),
		IntervalMinutes: parseInt(field(row, 5)),
		Active:          field(row, 6) != alarmStatusDeactivated,
		LastSent:        field(row, 7),
	}
}

// AlarmRow serializes an alarm back into its Alarms row layout.
func AlarmRow(a *model.Alarm) []string {
	status := alarmStatusActive
	if !a.Active {
		status = alarmStatusDeactivated
	}
	interval := ""
	if a.IntervalMinutes > 0 {
		interval = strconv.Itoa(a.IntervalMinutes)
	}
	return []string{
		a.UniqueID,
		a.OwnerID,
		a.Date,
		a.Text,
		a.TimeOfDay,
		interval,
		status,
		a.LastSent,
	}
}

// Category maps a Categories row. Returns nil when the categoryId column is
// absent.
func Category(row []string) *model.CategoryRecord {
	categoryID := field(row, 0)
	if categoryID == "" {
		return nil
	}
	return &model.CategoryRecord{
		CategoryID:  categoryID,
		Name:        field(row, 1),
		Description: field(row, 2),
	}
}

// CategoryRow serializes a category back into its Categories row layout.
func CategoryRow(c *model.CategoryRecord) []string {
	return []string{c.CategoryID, c.Name, c.Description}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
