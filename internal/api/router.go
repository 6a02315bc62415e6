package api

import (
	"time"

	"github.com/gorilla/mux"

	"github.com/nutridash/nutridash-server/internal/api/recovery"
	"github.com/nutridash/nutridash-server/internal/auth"
	"github.com/nutridash/nutridash-server/internal/notify"
	"github.com/nutridash/nutridash-server/internal/services"
	"github.com/nutridash/nutridash-server/internal/store"
)

// RouterDeps carries everything the router needs wired in by run.go.
type RouterDeps struct {
	Store      store.Store
	Authorizer auth.Authorizer
	Tokens     *auth.Tokens
	Notifier   notify.Notifier
	Location   *time.Location
}

// NewRouter creates the HTTP router with all API routes. Health and login are
// public; everything else sits behind the bearer-token middleware, and
// mutations additionally behind the admin guard.
func NewRouter(deps RouterDeps) *mux.Router {
	router := mux.NewRouter()

	// Global middlewares
	router.Use(recovery.Middleware)

	// Domain services
	patientSvc := services.NewPatientService(deps.Store)
	mealSvc := services.NewMealService(deps.Store, deps.Location)
	waterSvc := services.NewWaterService(deps.Store, deps.Location)
	alarmSvc := services.NewAlarmService(deps.Store, deps.Notifier, deps.Location)
	categorySvc := services.NewCategoryService(deps.Store)
	dashboardSvc := services.NewDashboardService(deps.Store, deps.Location)

	// Handlers
	healthHandler := NewHealthHandler()
	authHandler := NewAuthHandler(deps.Authorizer, deps.Tokens)
	patientHandler := NewPatientHandler(patientSvc)
	mealHandler := NewMealHandler(mealSvc, waterSvc)
	alarmHandler := NewAlarmHandler(alarmSvc)
	categoryHandler := NewCategoryHandler(categorySvc)
	dashboardHandler := NewDashboardHandler(dashboardSvc)

	// Public endpoints
	router.HandleFunc("/api/health", healthHandler.CheckHealth).Methods("GET")
	router.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")

	// Authenticated endpoints
	authed := router.PathPrefix("/api").Subrouter()
	authed.Use(auth.Middleware(deps.Tokens))

	authed.HandleFunc("/patients/{userId}", patientHandler.GetPatient).Methods("GET")
	authed.HandleFunc("/patients/{userId}/meals", mealHandler.ListMeals).Methods("GET")
	authed.HandleFunc("/patients/{userId}/water", mealHandler.ListWater).Methods("GET")
	authed.HandleFunc("/patients/{userId}/alarms", alarmHandler.ListAlarms).Methods("GET")
	authed.HandleFunc("/categories", categoryHandler.ListCategories).Methods("GET")
	authed.HandleFunc("/dashboard/patients/{userId}", dashboardHandler.Detail).Methods("GET")
	authed.HandleFunc("/dashboard/patients/{userId}/series", dashboardHandler.Series).Methods("GET")
	authed.HandleFunc("/dashboard/categories", dashboardHandler.Breakdown).Methods("GET")

	// Admin-only endpoints
	admin := authed.NewRoute().Subrouter()
	admin.Use(auth.RequireAdmin)

	admin.HandleFunc("/patients", patientHandler.ListPatients).Methods("GET")
	admin.HandleFunc("/patients/{userId}", patientHandler.UpdatePatient).Methods("PATCH")
	admin.HandleFunc("/patients/{userId}", patientHandler.DeletePatient).Methods("DELETE")
	admin.HandleFunc("/patients/{userId}/meals", mealHandler.CreateMeal).Methods("POST")
	admin.HandleFunc("/patients/{userId}/water", mealHandler.CreateWater).Methods("POST")
	admin.HandleFunc("/patients/{userId}/alarms", alarmHandler.CreateAlarm).Methods("POST")
	admin.HandleFunc("/alarms/{uniqueId}", alarmHandler.UpdateAlarm).Methods("PATCH")
	admin.HandleFunc("/alarms/{uniqueId}", alarmHandler.DeleteAlarm).Methods("DELETE")
	admin.HandleFunc("/alarms/{uniqueId}/send", alarmHandler.SendAlarm).Methods("POST")
	admin.HandleFunc("/categories", categoryHandler.CreateCategory).Methods("POST")
	admin.HandleFunc("/categories/{categoryId}", categoryHandler.RenameCategory).Methods("PATCH")
	admin.HandleFunc("/categories/{categoryId}", categoryHandler.DeleteCategory).Methods("DELETE")
	admin.HandleFunc("/dashboard", dashboardHandler.Summary).Methods("GET")

	return router
}
