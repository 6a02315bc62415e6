package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/nutridash/nutridash-server/internal/api/respond"
	"github.com/nutridash/nutridash-server/internal/model"
	"github.com/nutridash/nutridash-server/internal/services"
)

// MealHandler serves meal and water log endpoints.
type MealHandler struct {
	meals    *services.MealService
	water    *services.WaterService
	validate *validator.Validate
}

func NewMealHandler(meals *services.MealService, water *services.WaterService) *MealHandler {
	return &MealHandler{meals: meals, water: water, validate: validator.New()}
}

type createMealRequest struct {
	Date        string  `json:"date"`
	Description string  `json:"description" validate:"required"`
	Calories    float64 `json:"calories" validate:"gte=0"`
	Protein     float64 `json:"protein" validate:"gte=0"`
	Carbs       float64 `json:"carbs" validate:"gte=0"`
	Fat         float64 `json:"fat" validate:"gte=0"`
	CategoryID  string  `json:"categoryId"`
}

type createWaterRequest struct {
	Date     string  `json:"date"`
	AmountML float64 `json:"amountMl" validate:"required,gt=0"`
}

// ListMeals GET /api/patients/{userId}/meals?days=N
// Without days the full history comes back; with days only the trailing
// window.
func (h *MealHandler) ListMeals(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	if !allowSelfOrAdmin(w, r, userID) {
		return
	}

	var (
		meals []*model.Meal
		err   error
	)
	if raw := r.URL.Query().Get("days"); raw != "" {
		days, perr := strconv.Atoi(raw)
		if perr != nil || days <= 0 {
			respond.WriteBadRequest(w, "days must be a positive integer")
			return
		}
		meals, err = h.meals.ListRecent(r.Context(), userID, days, time.Now())
	} else {
		meals, err = h.meals.ListByOwner(r.Context(), userID)
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"meals": meals, "count": len(meals)})
}

// CreateMeal POST /api/patients/{userId}/meals (admin)
func (h *MealHandler) CreateMeal(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	var req createMealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}

	m := &model.Meal{
		OwnerID:     userID,
		Date:        req.Date,
		Description: req.Description,
		Calories:    req.Calories,
		Protein:     req.Protein,
		Carbs:       req.Carbs,
		Fat:         req.Fat,
		CategoryID:  req.CategoryID,
	}
	out, err := h.meals.Create(r.Context(), m)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteSuccess(w, http.StatusCreated, "meal recorded", out)
}

// ListWater GET /api/patients/{userId}/water
func (h *MealHandler) ListWater(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	if !allowSelfOrAdmin(w, r, userID) {
		return
	}
	logs, err := h.water.ListByOwner(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"water": logs, "count": len(logs)})
}

// CreateWater POST /api/patients/{userId}/water (admin)
func (h *MealHandler) CreateWater(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	var req createWaterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	out, err := h.water.Create(r.Context(), &model.WaterLog{OwnerID: userID, Date: req.Date, AmountML: req.AmountML})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteSuccess(w, http.StatusCreated, "water logged", out)
}
