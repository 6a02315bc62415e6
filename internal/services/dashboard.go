package services

import (
	"context"
	"time"

	"github.com/nutridash/nutridash-server/internal/aggregate"
	"github.com/nutridash/nutridash-server/internal/classify"
	"github.com/nutridash/nutridash-server/internal/model"
	"github.com/nutridash/nutridash-server/internal/store"
)

// defaultSeriesDays is the trailing window for the multi-day report.
const defaultSeriesDays = 30

// PatientSummary is one row of the dashboard overview: today's totals and
// goal adherence for a patient.
type PatientSummary struct {
	Patient    *model.Patient   `json:"patient"`
	Totals     aggregate.Totals `json:"totals"`
	WaterML    float64          `json:"waterMl"`
	GoalStatus classify.Status  `json:"goalStatus"`
}

// PatientDetail is the single-patient drill-down view.
type PatientDetail struct {
	Patient         *model.Patient   `json:"patient"`
	Totals          aggregate.Totals `json:"totals"`
	WaterML         float64          `json:"waterMl"`
	GoalStatus      classify.Status  `json:"goalStatus"`
	AverageCalories float64          `json:"averageCalories"`
	RecentMeals     []*model.Meal    `json:"recentMeals"`
	Alarms          []*model.Alarm   `json:"alarms"`
}

// DashboardService composes the read-side views from the raw tabs. It holds
// no state beyond the store handle and the deployment timezone; every call
// re-reads and re-derives.
type DashboardService struct {
	store store.Store
	loc   *time.Location
	now   func() time.Time
}

func NewDashboardService(s store.Store, loc *time.Location) *DashboardService {
	return &DashboardService{store: s, loc: loc, now: time.Now}
}

// Summary returns today's totals and goal status for every patient.
func (s *DashboardService) Summary(ctx context.Context) ([]PatientSummary, error) {
	patients, err := s.store.Patients().List(ctx)
	if err != nil {
		return nil, err
	}
	meals, err := s.store.Meals().List(ctx)
	if err != nil {
		return nil, err
	}
	water, err := s.store.Water().List(ctx)
	if err != nil {
		return nil, err
	}

	mealsByOwner := make(map[string][]*model.Meal)
	for _, m := range meals {
		mealsByOwner[m.OwnerID] = append(mealsByOwner[m.OwnerID], m)
	}
	waterByOwner := make(map[string][]*model.WaterLog)
	for _, w := range water {
		waterByOwner[w.OwnerID] = append(waterByOwner[w.OwnerID], w)
	}

	today := s.now().In(s.loc)
	out := make([]PatientSummary, 0, len(patients))
	for _, p := range patients {
		totals := aggregate.DailyTotals(mealsByOwner[p.UserID], today, s.loc)
		out = append(out, PatientSummary{
			Patient:    p,
			Totals:     totals,
			WaterML:    aggregate.WaterTotal(waterByOwner[p.UserID], today, s.loc),
			GoalStatus: classify.GoalStatus(totals.Calories, totals.Protein, p.CaloriesTarget, p.ProteinTarget),
		})
	}
	return out, nil
}

// Detail returns the drill-down view for one patient: today's totals, goal
// status, the per-meal calorie average over the trailing window, recent meals
// and configured alarms.
func (s *DashboardService) Detail(ctx context.Context, userID string) (*PatientDetail, error) {
	if userID == "" {
		return nil, model.NewValidationError("userId", "user ID is required")
	}
	p, err := s.store.Patients().Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	meals, err := s.store.Meals().ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	water, err := s.store.Water().ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	alarms, err := s.store.Alarms().ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := s.now().In(s.loc)
	totals := aggregate.DailyTotals(meals, today, s.loc)

	recent := recentMeals(meals, today, defaultSeriesDays, s.loc)
	var windowCalories float64
	for _, m := range recent {
		windowCalories += m.Calories
	}

	return &PatientDetail{
		Patient:         p,
		Totals:          totals,
		WaterML:         aggregate.WaterTotal(water, today, s.loc),
		GoalStatus:      classify.GoalStatus(totals.Calories, totals.Protein, p.CaloriesTarget, p.ProteinTarget),
		AverageCalories: aggregate.AverageCaloriesPerMeal(windowCalories, len(recent)),
		RecentMeals:     recent,
		Alarms:          alarms,
	}, nil
}

// Breakdown groups meals by resolved category, across all patients or for a
// single owner when ownerID is non-empty.
func (s *DashboardService) Breakdown(ctx context.Context, ownerID string) ([]aggregate.CategorySlice, error) {
	var meals []*model.Meal
	var err error
	if ownerID == "" {
		meals, err = s.store.Meals().List(ctx)
	} else {
		meals, err = s.store.Meals().ListByOwner(ctx, ownerID)
	}
	if err != nil {
		return nil, err
	}

	records, err := s.store.Categories().List(ctx)
	if err != nil {
		return nil, err
	}
	explicit := make(map[string]*model.CategoryRecord, len(records))
	for _, rec := range records {
		explicit[rec.CategoryID] = rec
	}
	return aggregate.CategoryBreakdown(meals, explicit), nil
}

// Series returns the dense trailing day series for one patient. days <= 0
// falls back to the default window.
func (s *DashboardService) Series(ctx context.Context, userID string, days int) ([]aggregate.DayPoint, error) {
	if userID == "" {
		return nil, model.NewValidationError("userId", "user ID is required")
	}
	if _, err := s.store.Patients().Get(ctx, userID); err != nil {
		return nil, err
	}
	meals, err := s.store.Meals().ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	if days <= 0 {
		days = defaultSeriesDays
	}
	return aggregate.DaySeries(meals, s.now().In(s.loc), days, s.loc), nil
}

// recentMeals filters to meals within the trailing window, newest first.
func recentMeals(meals []*model.Meal, end time.Time, days int, loc *time.Location) []*model.Meal {
	cutoff := end.AddDate(0, 0, -days)
	out := make([]*model.Meal, 0, len(meals))
	for _, m := range meals {
		if t, ok := aggregate.ParseDay(m.Date, loc); ok && !t.Before(cutoff) {
			out = append(out, m)
		}
	}
	return out
}
