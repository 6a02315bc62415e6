package sheetstore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutridash/nutridash-server/internal/model"
	"github.com/nutridash/nutridash-server/internal/sheets"
)

func seededStore(t *testing.T) (*Store, *fakeTabular) {
	t.Helper()
	fake := newFakeTabular()
	fake.seed(sheets.TabProfile,
		[]string{"111@s.whatsapp.net", "Maria", "1.65", "62", "31", "1800", "110", "180", "60", "58", "", "", "2026-01-02"},
		[]string{"222@s.whatsapp.net", "João", "1.80", "85", "40", "2200", "140", "220", "70", "80", "", "", "2026-01-03"},
	)
	fake.seed(sheets.TabMeals,
		[]string{"111@s.whatsapp.net", "2026-01-05", "arroz com frango", "600", "40", "60", "15", ""},
		[]string{"222@s.whatsapp.net", "2026-01-05", "sopa", "300", "10", "30", "8", ""},
	)
	fake.seed(sheets.TabWater,
		[]string{"111@s.whatsapp.net", "2026-01-05", "350"},
	)
	fake.seed(sheets.TabAlarms,
		[]string{"al-1", "111@s.whatsapp.net", "2026-01-05", "beber água", "09:00", "120", "active", ""},
	)
	fake.seed(sheets.TabCategories,
		[]string{"cat-1", "Low Carb", "refeições da dieta"},
	)
	return New(fake), fake
}

func TestPatientsGetAndList(t *testing.T) {
	st, _ := seededStore(t)
	ctx := context.Background()

	ps, err := st.Patients().List(ctx)
	require.NoError(t, err)
	assert.Len(t, ps, 2)

	p, err := st.Patients().Get(ctx, "222@s.whatsapp.net")
	require.NoError(t, err)
	assert.Equal(t, "João", p.Name)
}

func TestPatientsGetNotFound(t *testing.T) {
	st, _ := seededStore(t)

	_, err := st.Patients().Get(context.Background(), "999@s.whatsapp.net")
	assert.True(t, model.IsNotFoundError(err))
}

func TestPatientsUpdateAppliesPatchOnly(t *testing.T) {
	st, fake := seededStore(t)
	weight := 60.5

	p, err := st.Patients().Update(context.Background(), "111@s.whatsapp.net", model.PatientPatch{Weight: &weight})
	require.NoError(t, err)
	assert.Equal(t, 60.5, p.Weight)
	assert.Equal(t, "Maria", p.Name)

	// The row was rewritten in place, not appended.
	assert.Equal(t, 2, fake.rowCount(sheets.TabProfile))
}

func TestPatientsDeleteShrinksTab(t *testing.T) {
	st, fake := seededStore(t)

	require.NoError(t, st.Patients().Delete(context.Background(), "111@s.whatsapp.net"))
	assert.Equal(t, 1, fake.rowCount(sheets.TabProfile))
}

func TestDeleteMissingKeyLeavesRowsUntouched(t *testing.T) {
	st, fake := seededStore(t)

	err := st.Alarms().Delete(context.Background(), "al-nope")
	assert.True(t, model.IsNotFoundError(err))
	assert.Equal(t, 1, fake.rowCount(sheets.TabAlarms))
}

func TestMutationRelocatesRowAfterReorder(t *testing.T) {
	st, fake := seededStore(t)
	ctx := context.Background()

	// First mutation reads the tab once.
	name := "Maria Silva"
	_, err := st.Patients().Update(ctx, "111@s.whatsapp.net", model.PatientPatch{Name: &name})
	require.NoError(t, err)

	// Simulate the ingestion pipeline reordering rows between calls.
	fake.seed(sheets.TabProfile,
		[]string{"222@s.whatsapp.net", "João", "1.80", "85", "40", "2200", "140", "220", "70", "80", "", "", "2026-01-03"},
		[]string{"111@s.whatsapp.net", "Maria Silva", "1.65", "62", "31", "1800", "110", "180", "60", "58", "", "", "2026-01-02"},
	)

	weight := 61.0
	p, err := st.Patients().Update(ctx, "111@s.whatsapp.net", model.PatientPatch{Weight: &weight})
	require.NoError(t, err)
	assert.Equal(t, "Maria Silva", p.Name)
	assert.Equal(t, 61.0, p.Weight)

	// João's row must be untouched.
	other, err := st.Patients().Get(ctx, "222@s.whatsapp.net")
	require.NoError(t, err)
	assert.Equal(t, 85.0, other.Weight)
}

func TestAlarmUpdateAndMarkSent(t *testing.T) {
	st, _ := seededStore(t)
	ctx := context.Background()

	inactive := false
	a, err := st.Alarms().Update(ctx, "al-1", model.AlarmPatch{Active: &inactive})
	require.NoError(t, err)
	assert.False(t, a.Active)

	require.NoError(t, st.Alarms().MarkSent(ctx, "al-1", "2026-01-05T09:00:00-03:00"))
	a, err = st.Alarms().Get(ctx, "al-1")
	require.NoError(t, err)
	assert.Equal(t, "2026-01-05T09:00:00-03:00", a.LastSent)
	assert.False(t, a.Active)
}

func TestCategoryRenameKeepsDescriptions(t *testing.T) {
	st, _ := seededStore(t)
	ctx := context.Background()

	c, err := st.Categories().Rename(ctx, "cat-1", "Cutting")
	require.NoError(t, err)
	assert.Equal(t, "Cutting", c.Name)
	assert.Equal(t, "refeições da dieta", c.Description)

	// Renaming again replaces, never stacks.
	c, err = st.Categories().Rename(ctx, "cat-1", "Bulking")
	require.NoError(t, err)
	assert.Equal(t, "Bulking", c.Name)

	// Meal descriptions are untouched by renames.
	ms, err := st.Meals().ListByOwner(ctx, "111@s.whatsapp.net")
	require.NoError(t, err)
	require.Len(t, ms, 1)
	assert.Equal(t, "arroz com frango", ms[0].Description)
}

func TestMealCreateAppends(t *testing.T) {
	st, fake := seededStore(t)

	_, err := st.Meals().Create(context.Background(), &model.Meal{
		OwnerID: "111@s.whatsapp.net", Date: "2026-01-05", Description: "iogurte", Calories: 120,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, fake.rowCount(sheets.TabMeals))
}

func TestRemoteFailurePropagates(t *testing.T) {
	st, fake := seededStore(t)
	fake.fail = errors.New("quota exceeded")

	_, err := st.Patients().List(context.Background())
	require.Error(t, err)
	assert.False(t, model.IsNotFoundError(err))
}

func TestSparseRowsAreSkipped(t *testing.T) {
	st, fake := seededStore(t)
	fake.seed(sheets.TabWater,
		[]string{"111@s.whatsapp.net", "2026-01-05", "350"},
		[]string{""},
		[]string{"111@s.whatsapp.net"},
	)

	ws, err := st.Water().ListByOwner(context.Background(), "111@s.whatsapp.net")
	require.NoError(t, err)
	assert.Len(t, ws, 2)
	assert.Zero(t, ws[1].AmountML)
}
