package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutridash/nutridash-server/internal/classify"
	"github.com/nutridash/nutridash-server/internal/model"
	"github.com/nutridash/nutridash-server/internal/store/memstore"
)

var fixedToday = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func seededDashboard() (*memstore.Store, *DashboardService) {
	ms := memstore.New().
		SeedPatient(&model.Patient{
			UserID: "111@s.whatsapp.net", Name: "Ana",
			CaloriesTarget: 2000, ProteinTarget: 100,
		}).
		SeedPatient(&model.Patient{
			UserID: "222@s.whatsapp.net", Name: "Bruno",
			CaloriesTarget: 1800, ProteinTarget: 90,
		}).
		SeedMeal(&model.Meal{OwnerID: "111@s.whatsapp.net", Date: "2025-03-10", Description: "arroz com frango", Calories: 1000, Protein: 50, Carbs: 100, Fat: 20}).
		SeedMeal(&model.Meal{OwnerID: "111@s.whatsapp.net", Date: "2025-03-10", Description: "sopa", Calories: 900, Protein: 40, Carbs: 80, Fat: 15}).
		SeedMeal(&model.Meal{OwnerID: "111@s.whatsapp.net", Date: "2025-03-09", Description: "café e pão", Calories: 400, Protein: 10, Carbs: 50, Fat: 8}).
		SeedMeal(&model.Meal{OwnerID: "222@s.whatsapp.net", Date: "2025-03-10", Description: "bolo", Calories: 600, Protein: 8, Carbs: 70, Fat: 25}).
		SeedWater(&model.WaterLog{OwnerID: "111@s.whatsapp.net", Date: "2025-03-10", AmountML: 500}).
		SeedWater(&model.WaterLog{OwnerID: "111@s.whatsapp.net", Date: "2025-03-10", AmountML: 250}).
		SeedWater(&model.WaterLog{OwnerID: "111@s.whatsapp.net", Date: "2025-03-09", AmountML: 1000}).
		SeedAlarm(&model.Alarm{UniqueID: "a1", OwnerID: "111@s.whatsapp.net", Text: "beber água", Active: true})

	svc := NewDashboardService(ms, time.UTC)
	svc.now = func() time.Time { return fixedToday }
	return ms, svc
}

func TestDashboardService_Summary(t *testing.T) {
	_, svc := seededDashboard()

	rows, err := svc.Summary(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byID := map[string]PatientSummary{}
	for _, r := range rows {
		byID[r.Patient.UserID] = r
	}

	ana := byID["111@s.whatsapp.net"]
	assert.Equal(t, 1900.0, ana.Totals.Calories, "yesterday's meal excluded")
	assert.Equal(t, 90.0, ana.Totals.Protein)
	assert.Equal(t, 2, ana.Totals.MealCount)
	assert.Equal(t, 750.0, ana.WaterML)
	assert.Equal(t, classify.StatusGreen, ana.GoalStatus)

	bruno := byID["222@s.whatsapp.net"]
	assert.Equal(t, 600.0, bruno.Totals.Calories)
	assert.Equal(t, classify.StatusRed, bruno.GoalStatus, "600/1800 is below the calorie band")
}

func TestDashboardService_Detail(t *testing.T) {
	_, svc := seededDashboard()

	d, err := svc.Detail(context.Background(), "111@s.whatsapp.net")
	require.NoError(t, err)

	assert.Equal(t, "Ana", d.Patient.Name)
	assert.Equal(t, 1900.0, d.Totals.Calories)
	assert.Equal(t, 750.0, d.WaterML)
	assert.Equal(t, classify.StatusGreen, d.GoalStatus)
	require.Len(t, d.RecentMeals, 3)
	// 2300 kcal over 3 meals in the window.
	assert.InDelta(t, 766.67, d.AverageCalories, 0.01)
	require.Len(t, d.Alarms, 1)
	assert.Equal(t, "a1", d.Alarms[0].UniqueID)
}

func TestDashboardService_DetailUnknownPatient(t *testing.T) {
	_, svc := seededDashboard()

	_, err := svc.Detail(context.Background(), "999@s.whatsapp.net")
	assert.True(t, model.IsNotFoundError(err))

	_, err = svc.Detail(context.Background(), "")
	assert.True(t, model.IsValidationError(err))
}

func TestDashboardService_Breakdown(t *testing.T) {
	_, svc := seededDashboard()

	all, err := svc.Breakdown(context.Background(), "")
	require.NoError(t, err)
	names := make([]string, 0, len(all))
	for _, s := range all {
		names = append(names, s.Name)
	}
	assert.Contains(t, names, classify.CategoryLunch)
	assert.Contains(t, names, classify.CategorySnack)

	mine, err := svc.Breakdown(context.Background(), "111@s.whatsapp.net")
	require.NoError(t, err)
	for _, s := range mine {
		assert.NotEqual(t, classify.CategorySnack, s.Name, "bolo belongs to the other patient")
	}
}

func TestDashboardService_Series(t *testing.T) {
	_, svc := seededDashboard()

	series, err := svc.Series(context.Background(), "111@s.whatsapp.net", 0)
	require.NoError(t, err)
	require.Len(t, series, 30, "zero days falls back to the default window")
	assert.Equal(t, "2025-03-10", series[29].Day)

	// Calories in the series derive from macros, not from the stored field.
	last := series[29]
	assert.Equal(t, (50.0+40.0)*4+(100.0+80.0)*4+(20.0+15.0)*9, last.Calories)

	_, err = svc.Series(context.Background(), "999@s.whatsapp.net", 7)
	assert.True(t, model.IsNotFoundError(err))
}
