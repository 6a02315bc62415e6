// Package storetest holds the compliance suite shared by store.Store
// implementations.
package storetest

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/nutridash/nutridash-server/internal/model"
	"github.com/nutridash/nutridash-server/internal/store"
)

// seedPatient must exist in every store handed to Run.
const SeedPatientID = "111@s.whatsapp.net"

// Run exercises a compliance suite against a store.Store implementation.
// makeStore should return a clean, isolated store pre-seeded with the patient
// SeedPatientID.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	s := makeStore(t)
	ctx := context.Background()

	// Patients
	p, err := s.Patients().Get(ctx, SeedPatientID)
	if err != nil || p == nil {
		t.Fatalf("GetPatient: got=%v err=%v", p, err)
	}
	if lst, err := s.Patients().List(ctx); err != nil || len(lst) == 0 {
		t.Fatalf("ListPatients: n=%d err=%v", len(lst), err)
	}
	weight := 70.5
	if upd, err := s.Patients().Update(ctx, SeedPatientID, model.PatientPatch{Weight: &weight}); err != nil || upd.Weight != 70.5 {
		t.Fatalf("UpdatePatient: got=%v err=%v", upd, err)
	}
	if _, err := s.Patients().Get(ctx, "missing@s.whatsapp.net"); !model.IsNotFoundError(err) {
		t.Fatalf("GetPatient missing: expected NotFound, got %v", err)
	}

	// Meals
	if _, err := s.Meals().Create(ctx, &model.Meal{OwnerID: SeedPatientID, Date: "2026-01-05", Description: "sopa", Calories: 300}); err != nil {
		t.Fatalf("CreateMeal: %v", err)
	}
	if ms, err := s.Meals().ListByOwner(ctx, SeedPatientID); err != nil || len(ms) == 0 {
		t.Fatalf("ListMealsByOwner: n=%d err=%v", len(ms), err)
	}
	if ms, err := s.Meals().ListByOwner(ctx, "missing@s.whatsapp.net"); err != nil || len(ms) != 0 {
		t.Fatalf("ListMealsByOwner missing owner: n=%d err=%v", len(ms), err)
	}

	// Water
	if _, err := s.Water().Create(ctx, &model.WaterLog{OwnerID: SeedPatientID, Date: "2026-01-05", AmountML: 350}); err != nil {
		t.Fatalf("CreateWater: %v", err)
	}
	if ws, err := s.Water().ListByOwner(ctx, SeedPatientID); err != nil || len(ws) == 0 {
		t.Fatalf("ListWaterByOwner: n=%d err=%v", len(ws), err)
	}

	// Alarms
	alarmID := "al-" + uuid.New().String()
	if _, err := s.Alarms().Create(ctx, &model.Alarm{UniqueID: alarmID, OwnerID: SeedPatientID, Date: "2026-01-05", Text: "beber água", Active: true}); err != nil {
		t.Fatalf("CreateAlarm: %v", err)
	}
	inactive := false
	if a, err := s.Alarms().Update(ctx, alarmID, model.AlarmPatch{Active: &inactive}); err != nil || a.Active {
		t.Fatalf("UpdateAlarm: got=%v err=%v", a, err)
	}
	if err := s.Alarms().MarkSent(ctx, alarmID, "2026-01-05T09:00:00-03:00"); err != nil {
		t.Fatalf("MarkSent: %v", err)
	}
	if a, err := s.Alarms().Get(ctx, alarmID); err != nil || a.LastSent == "" {
		t.Fatalf("GetAlarm after MarkSent: got=%v err=%v", a, err)
	}
	if err := s.Alarms().Delete(ctx, alarmID); err != nil {
		t.Fatalf("DeleteAlarm: %v", err)
	}
	if err := s.Alarms().Delete(ctx, alarmID); !model.IsNotFoundError(err) {
		t.Fatalf("DeleteAlarm twice: expected NotFound, got %v", err)
	}

	// Categories
	catID := "cat-" + uuid.New().String()
	if _, err := s.Categories().Create(ctx, &model.CategoryRecord{CategoryID: catID, Name: "Low Carb"}); err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	if c, err := s.Categories().Rename(ctx, catID, "Cutting"); err != nil || c.Name != "Cutting" {
		t.Fatalf("RenameCategory: got=%v err=%v", c, err)
	}
	if err := s.Categories().Delete(ctx, catID); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}
	if _, err := s.Categories().Get(ctx, catID); !model.IsNotFoundError(err) {
		t.Fatalf("GetCategory deleted: expected NotFound, got %v", err)
	}

	// Patient delete leaves child rows orphaned but intact.
	if err := s.Patients().Delete(ctx, SeedPatientID); err != nil {
		t.Fatalf("DeletePatient: %v", err)
	}
	if ms, err := s.Meals().ListByOwner(ctx, SeedPatientID); err != nil || len(ms) == 0 {
		t.Fatalf("orphaned meals after patient delete: n=%d err=%v", len(ms), err)
	}

	if err := s.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}
}
