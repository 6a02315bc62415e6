package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutridash/nutridash-server/internal/model"
)

var loc = time.FixedZone("BRT", -3*3600)

func day(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		panic(err)
	}
	return t
}

func meal(date string, calories, protein, carbs, fat float64) *model.Meal {
	return &model.Meal{OwnerID: "u1", Date: date, Calories: calories, Protein: protein, Carbs: carbs, Fat: fat}
}

func TestDailyTotals(t *testing.T) {
	meals := []*model.Meal{
		meal("2026-01-05", 400, 30, 40, 10),
		meal("2026-01-05", 600, 40, 60, 15),
		meal("2026-01-04", 500, 20, 50, 20),
		{OwnerID: "u1", Date: "not a date", Calories: 999},
	}

	got := DailyTotals(meals, day("2026-01-05"), loc)
	assert.Equal(t, 1000.0, got.Calories)
	assert.Equal(t, 70.0, got.Protein)
	assert.Equal(t, 100.0, got.Carbs)
	assert.Equal(t, 25.0, got.Fat)
	assert.Equal(t, 2, got.MealCount)
}

func TestDailyTotalsLastMealTieBreak(t *testing.T) {
	first := meal("2026-01-05", 400, 0, 0, 0)
	second := meal("2026-01-05", 600, 0, 0, 0)
	later := meal("2026-01-05T20:15:00-03:00", 200, 0, 0, 0)

	// Equal timestamps keep the earliest original row.
	got := DailyTotals([]*model.Meal{first, second}, day("2026-01-05"), loc)
	require.NotNil(t, got.LastMeal)
	assert.Same(t, first, got.LastMeal)

	// A strictly later timestamp wins.
	got = DailyTotals([]*model.Meal{first, later, second}, day("2026-01-05"), loc)
	assert.Same(t, later, got.LastMeal)
}

func TestDailyTotalsEmpty(t *testing.T) {
	got := DailyTotals(nil, day("2026-01-05"), loc)
	assert.Zero(t, got.Calories)
	assert.Zero(t, got.MealCount)
	assert.Nil(t, got.LastMeal)
}

func TestDaySeriesAlwaysDense(t *testing.T) {
	meals := []*model.Meal{
		meal("2026-01-05", 0, 30, 40, 10),
		meal("2026-01-03", 0, 20, 20, 5),
		meal("2025-11-01", 0, 99, 99, 99), // outside window
	}

	series := DaySeries(meals, day("2026-01-05"), 30, loc)
	require.Len(t, series, 30)
	assert.Equal(t, "2025-12-07", series[0].Day)
	assert.Equal(t, "2026-01-05", series[29].Day)

	// Chronologically ascending.
	for i := 1; i < len(series); i++ {
		assert.Less(t, series[i-1].Day, series[i].Day)
	}
}

func TestDaySeriesSumsMatchWindowedInput(t *testing.T) {
	meals := []*model.Meal{
		meal("2026-01-05", 0, 30, 40, 10),
		meal("2026-01-05", 0, 10, 10, 2),
		meal("2026-01-01", 0, 20, 20, 5),
		meal("2025-11-01", 0, 99, 99, 99), // outside window
	}

	series := DaySeries(meals, day("2026-01-05"), 30, loc)
	var protein, carbs, fat float64
	for _, p := range series {
		protein += p.Protein
		carbs += p.Carbs
		fat += p.Fat
	}
	assert.Equal(t, 60.0, protein)
	assert.Equal(t, 70.0, carbs)
	assert.Equal(t, 17.0, fat)
}

func TestDaySeriesDerivesCaloriesFromMacros(t *testing.T) {
	meals := []*model.Meal{meal("2026-01-05", 1234, 30, 40, 10)}

	series := DaySeries(meals, day("2026-01-05"), 1, loc)
	require.Len(t, series, 1)
	// 30*4 + 40*4 + 10*9, not the stored per-meal calories.
	assert.Equal(t, 370.0, series[0].Calories)
}

func TestDaySeriesZeroFilled(t *testing.T) {
	series := DaySeries(nil, day("2026-01-05"), 7, loc)
	require.Len(t, series, 7)
	for _, p := range series {
		assert.Zero(t, p.Calories)
		assert.Zero(t, p.Protein)
	}
}

func TestCategoryBreakdownDerived(t *testing.T) {
	meals := []*model.Meal{
		{OwnerID: "u1", Description: "arroz com frango", Calories: 600},
		{OwnerID: "u1", Description: "sopa de legumes", Calories: 300},
		{OwnerID: "u1", Description: "bife acebolado", Calories: 500},
		{OwnerID: "u1", Description: "algo indefinido", Calories: 100},
	}

	got := CategoryBreakdown(meals, nil)
	require.Len(t, got, 3)
	// Lexicographic by name: Almoço < Jantar < Outras Refeições.
	assert.Equal(t, "Almoço", got[0].Name)
	assert.Equal(t, 1100.0, got[0].Calories)
	assert.Equal(t, 2, got[0].MealCount)
	assert.Equal(t, "Jantar", got[1].Name)
	assert.Equal(t, "Outras Refeições", got[2].Name)
}

func TestCategoryBreakdownExplicitJoin(t *testing.T) {
	explicit := map[string]*model.CategoryRecord{
		"cat-1": {CategoryID: "cat-1", Name: "Dieta"},
	}
	meals := []*model.Meal{
		{OwnerID: "u1", Description: "arroz", Calories: 600, CategoryID: "cat-1"},
		{OwnerID: "u1", Description: "arroz", Calories: 400},
	}

	got := CategoryBreakdown(meals, explicit)
	require.Len(t, got, 2)
	assert.Equal(t, "Almoço", got[0].Name)
	assert.Equal(t, "Dieta", got[1].Name)
	assert.Equal(t, 600.0, got[1].Calories)
}

func TestAverageCaloriesPerMealGuarded(t *testing.T) {
	assert.Equal(t, 0.0, AverageCaloriesPerMeal(0, 0))
	assert.Equal(t, 500.0, AverageCaloriesPerMeal(1000, 2))
}

func TestWaterTotal(t *testing.T) {
	logs := []*model.WaterLog{
		{OwnerID: "u1", Date: "2026-01-05", AmountML: 350},
		{OwnerID: "u1", Date: "2026-01-05", AmountML: 500},
		{OwnerID: "u1", Date: "2026-01-04", AmountML: 200},
	}
	assert.Equal(t, 850.0, WaterTotal(logs, day("2026-01-05"), loc))
	assert.Zero(t, WaterTotal(nil, day("2026-01-05"), loc))
}

func TestParseDayFormats(t *testing.T) {
	for _, s := range []string{"2026-01-05", "05/01/2026", "05/01/2026 12:30", "2026-01-05T12:30:00-03:00"} {
		parsed, ok := ParseDay(s, loc)
		require.True(t, ok, "format %q", s)
		assert.Equal(t, "2026-01-05", parsed.In(loc).Format("2006-01-02"))
	}
	_, ok := ParseDay("yesterday", loc)
	assert.False(t, ok)
}
