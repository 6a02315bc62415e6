package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/nutridash/nutridash-server/internal/api/respond"
	"github.com/nutridash/nutridash-server/internal/auth"
	"github.com/nutridash/nutridash-server/internal/services"
)

// DashboardHandler serves the read-side dashboard views.
type DashboardHandler struct {
	svc *services.DashboardService
}

func NewDashboardHandler(svc *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Summary GET /api/dashboard (admin)
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.Summary(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"patients": rows, "count": len(rows)})
}

// Detail GET /api/dashboard/patients/{userId}
func (h *DashboardHandler) Detail(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	if !allowSelfOrAdmin(w, r, userID) {
		return
	}
	d, err := h.svc.Detail(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, d)
}

// Breakdown GET /api/dashboard/categories?ownerId=
// Without ownerId the breakdown covers every patient, which is admin-only.
func (h *DashboardHandler) Breakdown(w http.ResponseWriter, r *http.Request) {
	ownerID := r.URL.Query().Get("ownerId")
	if ownerID == "" {
		p, ok := auth.FromContext(r.Context())
		if !ok || p.Role != auth.RoleAdmin {
			respond.WriteError(w, http.StatusForbidden, "global breakdown is admin only")
			return
		}
	} else if !allowSelfOrAdmin(w, r, ownerID) {
		return
	}
	slices, err := h.svc.Breakdown(r.Context(), ownerID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"categories": slices, "count": len(slices)})
}

// Series GET /api/dashboard/patients/{userId}/series?days=N
func (h *DashboardHandler) Series(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	if !allowSelfOrAdmin(w, r, userID) {
		return
	}
	days := 0
	if raw := r.URL.Query().Get("days"); raw != "" {
		d, err := strconv.Atoi(raw)
		if err != nil || d <= 0 {
			respond.WriteBadRequest(w, "days must be a positive integer")
			return
		}
		days = d
	}
	series, err := h.svc.Series(r.Context(), userID, days)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"series": series, "count": len(series)})
}
