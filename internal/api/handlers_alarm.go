package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/nutridash/nutridash-server/internal/api/respond"
	"github.com/nutridash/nutridash-server/internal/model"
	"github.com/nutridash/nutridash-server/internal/services"
)

// AlarmHandler serves reminder endpoints.
type AlarmHandler struct {
	svc      *services.AlarmService
	validate *validator.Validate
}

func NewAlarmHandler(svc *services.AlarmService) *AlarmHandler {
	return &AlarmHandler{svc: svc, validate: validator.New()}
}

type createAlarmRequest struct {
	Text            string `json:"text" validate:"required"`
	Date            string `json:"date"`
	TimeOfDay       string `json:"timeOfDay"`
	IntervalMinutes int    `json:"intervalMinutes" validate:"gte=0"`
}

// ListAlarms GET /api/patients/{userId}/alarms
func (h *AlarmHandler) ListAlarms(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	if !allowSelfOrAdmin(w, r, userID) {
		return
	}
	alarms, err := h.svc.ListByOwner(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"alarms": alarms, "count": len(alarms)})
}

// CreateAlarm POST /api/patients/{userId}/alarms (admin)
func (h *AlarmHandler) CreateAlarm(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	var req createAlarmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	a := &model.Alarm{
		OwnerID:         userID,
		Text:            req.Text,
		Date:            req.Date,
		TimeOfDay:       req.TimeOfDay,
		IntervalMinutes: req.IntervalMinutes,
	}
	out, err := h.svc.Create(r.Context(), a)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteSuccess(w, http.StatusCreated, "alarm created", out)
}

// UpdateAlarm PATCH /api/alarms/{uniqueId} (admin)
func (h *AlarmHandler) UpdateAlarm(w http.ResponseWriter, r *http.Request) {
	var patch model.AlarmPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	out, err := h.svc.Update(r.Context(), mux.Vars(r)["uniqueId"], patch)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteSuccess(w, http.StatusOK, "alarm updated", out)
}

// DeleteAlarm DELETE /api/alarms/{uniqueId} (admin)
func (h *AlarmHandler) DeleteAlarm(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), mux.Vars(r)["uniqueId"]); err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteSuccess(w, http.StatusOK, "alarm deleted", nil)
}

// SendAlarm POST /api/alarms/{uniqueId}/send (admin)
// Delivers the reminder immediately through the WhatsApp gateway.
func (h *AlarmHandler) SendAlarm(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.SendNow(r.Context(), mux.Vars(r)["uniqueId"]); err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteSuccess(w, http.StatusOK, "reminder sent", nil)
}
