package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/nutridash/nutridash-server/internal/api/respond"
	"github.com/nutridash/nutridash-server/internal/model"
	"github.com/nutridash/nutridash-server/internal/services"
)

// PatientHandler is a thin HTTP transport over PatientService.
type PatientHandler struct {
	svc *services.PatientService
}

func NewPatientHandler(svc *services.PatientService) *PatientHandler {
	return &PatientHandler{svc: svc}
}

// ListPatients GET /api/patients (admin)
func (h *PatientHandler) ListPatients(w http.ResponseWriter, r *http.Request) {
	patients, err := h.svc.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"patients": patients, "count": len(patients)})
}

// GetPatient GET /api/patients/{userId}
func (h *PatientHandler) GetPatient(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	if !allowSelfOrAdmin(w, r, userID) {
		return
	}
	p, err := h.svc.Get(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, p)
}

// UpdatePatient PATCH /api/patients/{userId} (admin)
func (h *PatientHandler) UpdatePatient(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	var patch model.PatientPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	p, err := h.svc.Update(r.Context(), userID, patch)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteSuccess(w, http.StatusOK, "patient updated", p)
}

// DeletePatient DELETE /api/patients/{userId} (admin)
func (h *PatientHandler) DeletePatient(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), mux.Vars(r)["userId"]); err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteSuccess(w, http.StatusOK, "patient deleted", nil)
}
