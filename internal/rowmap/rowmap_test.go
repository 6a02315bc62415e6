package rowmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatientMapsFullRow(t *testing.T) {
	p := Patient([]string{
		"5511999990000@s.whatsapp.net", "Maria", "1.65", "62.5", "31",
		"1800", "110", "180", "60", "58", "maria@example.com", "hash", "2026-01-05",
	})
	require.NotNil(t, p)
	assert.Equal(t, "5511999990000@s.whatsapp.net", p.UserID)
	assert.Equal(t, "Maria", p.Name)
	assert.Equal(t, 62.5, p.Weight)
	assert.Equal(t, 31, p.Age)
	assert.Equal(t, 1800.0, p.CaloriesTarget)
	require.NotNil(t, p.Email)
	assert.Equal(t, "maria@example.com", *p.Email)
	assert.Equal(t, "5511999990000", p.Phone())
}

func TestPatientDiscardsRowWithoutKey(t *testing.T) {
	assert.Nil(t, Patient([]string{"", "Maria", "1.65"}))
	assert.Nil(t, Patient(nil))
}

func TestPatientToleratesShortRow(t *testing.T) {
	p := Patient([]string{"abc@s.whatsapp.net", "João"})
	require.NotNil(t, p)
	assert.Equal(t, "João", p.Name)
	assert.Zero(t, p.Weight)
	assert.Nil(t, p.Email)
	assert.Empty(t, p.CreatedAt)
}

func TestMealZeroDefaultsOnBadNumbers(t *testing.T) {
	m := Meal([]string{"abc@s.whatsapp.net", "2026-01-05", "arroz com frango", "n/a", "-5", "", "12,5"})
	require.NotNil(t, m)
	assert.Zero(t, m.Calories)
	assert.Zero(t, m.Protein)
	assert.Zero(t, m.Carbs)
	assert.Equal(t, 12.5, m.Fat)
}

func TestMealDatePassesThroughOpaque(t *testing.T) {
	m := Meal([]string{"abc@s.whatsapp.net", "05/01/2026 12:30", "sopa"})
	require.NotNil(t, m)
	assert.Equal(t, "05/01/2026 12:30", m.Date)
}

func TestAlarmStatusRoundTrip(t *testing.T) {
	a := Alarm([]string{"al-1", "abc@s.whatsapp.net", "2026-01-05", "beber água", "09:00", "120", "deactivated", ""})
	require.NotNil(t, a)
	assert.False(t, a.Active)
	assert.Equal(t, 120, a.IntervalMinutes)

	row := AlarmRow(a)
	assert.Equal(t, "deactivated", row[6])

	a.Active = true
	assert.Equal(t, "active", AlarmRow(a)[6])
}

func TestAlarmDiscardsRowWithoutKeys(t *testing.T) {
	assert.Nil(t, Alarm([]string{"", "abc@s.whatsapp.net"}))
	assert.Nil(t, Alarm([]string{"al-1", ""}))
}

func TestWaterRow(t *testing.T) {
	w := Water([]string{"abc@s.whatsapp.net", "2026-01-05", "350"})
	require.NotNil(t, w)
	assert.Equal(t, 350.0, w.AmountML)
	assert.Equal(t, []string{"abc@s.whatsapp.net", "2026-01-05", "350"}, WaterRow(w))
}

func TestCategoryDiscardsRowWithoutKey(t *testing.T) {
	assert.Nil(t, Category([]string{""}))
	c := Category([]string{"cat-1", "Low Carb"})
	require.NotNil(t, c)
	assert.Equal(t, "Low Carb", c.Name)
}

func TestPatientRowRoundTrip(t *testing.T) {
	p := Patient([]string{
		"abc@s.whatsapp.net", "Maria", "1.65", "62.5", "31",
		"1800", "110", "180", "60", "58", "", "", "2026-01-05",
	})
	require.NotNil(t, p)
	got := Patient(PatientRow(p))
	assert.Equal(t, p, got)
}
