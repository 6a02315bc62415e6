package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/nutridash/nutridash-server/internal/api/respond"
	"github.com/nutridash/nutridash-server/internal/services"
)

// CategoryHandler serves explicit category administration.
type CategoryHandler struct {
	svc *services.CategoryService
}

func NewCategoryHandler(svc *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

// ListCategories GET /api/categories
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	views, err := h.svc.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"categories": views, "count": len(views)})
}

// CreateCategory POST /api/categories (admin)
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	rec, err := h.svc.Create(r.Context(), req.Name, req.Description)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteSuccess(w, http.StatusCreated, "category created", rec)
}

// RenameCategory PATCH /api/categories/{categoryId} (admin)
func (h *CategoryHandler) RenameCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	rec, err := h.svc.Rename(r.Context(), mux.Vars(r)["categoryId"], req.Name)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteSuccess(w, http.StatusOK, "category renamed", rec)
}

// DeleteCategory DELETE /api/categories/{categoryId} (admin)
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), mux.Vars(r)["categoryId"]); err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteSuccess(w, http.StatusOK, "category deleted", nil)
}
