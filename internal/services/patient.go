// Package services contains the operation layer between HTTP handlers and
// the store. Mutations run against fresh row reads and report typed errors;
// read operations assemble the dashboard view models.
package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/nutridash/nutridash-server/internal/model"
	"github.com/nutridash/nutridash-server/internal/store"
)

// PatientService handles patient CRUD.
type PatientService struct {
	store store.Store
}

func NewPatientService(s store.Store) *PatientService { return &PatientService{store: s} }

func (s *PatientService) List(ctx context.Context) ([]*model.Patient, error) {
	return s.store.Patients().List(ctx)
}

func (s *PatientService) Get(ctx context.Context, userID string) (*model.Patient, error) {
	if userID == "" {
		return nil, model.NewValidationError("userId", "user ID is required")
	}
	return s.store.Patients().Get(ctx, userID)
}

func (s *PatientService) Update(ctx context.Context, userID string, patch model.PatientPatch) (*model.Patient, error) {
	if userID == "" {
		return nil, model.NewValidationError("userId", "user ID is required")
	}
	log.Info().Str("userID", userID).Msg("Updating patient")
	return s.store.Patients().Update(ctx, userID, patch)
}

// Delete removes the patient row. Child records stay in their tabs and lose
// a resolvable owner; that matches how the ingestion side treats them.
func (s *PatientService) Delete(ctx context.Context, userID string) error {
	if userID == "" {
		return model.NewValidationError("userId", "user ID is required")
	}
	log.Info().Str("userID", userID).Msg("Deleting patient")
	return s.store.Patients().Delete(ctx, userID)
}
