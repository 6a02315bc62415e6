package sqlitestore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/nutridash/nutridash-server/internal/model"
	"github.com/nutridash/nutridash-server/internal/store"
	"github.com/nutridash/nutridash-server/internal/store/storetest"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "nutridash.db"))
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSqliteCompliance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		s := newTestStore(t)
		_, err := s.DB().Exec(`INSERT INTO patients (user_id, name, weight) VALUES (?,?,?)`,
			storetest.SeedPatientID, "Maria", 62)
		if err != nil {
			t.Fatalf("seed patient: %v", err)
		}
		return s
	})
}

func TestSqlitePatientUpdateIgnoresNilFields(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.DB().Exec(`INSERT INTO patients (user_id, name, weight, calories_target) VALUES (?,?,?,?)`,
		"111@s.whatsapp.net", "Maria", 62, 1800); err != nil {
		t.Fatalf("seed patient: %v", err)
	}

	weight := 61.0
	p, err := s.Patients().Update(ctx, "111@s.whatsapp.net", model.PatientPatch{Weight: &weight})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if p.Name != "Maria" || p.CaloriesTarget != 1800 || p.Weight != 61 {
		t.Fatalf("unexpected patient after patch: %+v", p)
	}
}

func TestSqliteSchemaIdempotent(t *testing.T) {
	s := newTestStore(t)
	if err := InitSchema(s.DB()); err != nil {
		t.Fatalf("re-init schema: %v", err)
	}
}
