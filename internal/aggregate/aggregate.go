// Package aggregate reduces flat sheet records into the dashboard's derived
// views: per-patient daily totals, dense trailing day series and category
// breakdowns. All reductions run over small in-memory slices and every
// division is guarded, so empty input yields zero values rather than NaN.
package aggregate

import (
	"sort"
	"time"

	"github.com/nutridash/nutridash-server/internal/classify"
	"github.com/nutridash/nutridash-server/internal/model"
)

// Kcal per gram of each macro, used when deriving total calories for the
// multi-day report. Per-meal stored calories are used everywhere else.
const (
	kcalPerGramProtein = 4
	kcalPerGramCarbs   = 4
	kcalPerGramFat     = 9
)

// Totals is a patient's consumption summary for one calendar day.
type Totals struct {
	Calories  float64     `json:"calories"`
	Protein   float64     `json:"protein"`
	Carbs     float64     `json:"carbs"`
	Fat       float64     `json:"fat"`
	MealCount int         `json:"mealCount"`
	LastMeal  *model.Meal `json:"lastMeal,omitempty"`
}

// DayPoint is one entry of the trailing day series. Calories are derived
// from the summed macros.
type DayPoint struct {
	Day      string  `json:"day"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// CategorySlice is one category's share of a meal set.
type CategorySlice struct {
	Name      string  `json:"name"`
	Calories  float64 `json:"calories"`
	MealCount int     `json:"mealCount"`
}

// dayLayouts are the date formats the ingestion pipeline has been observed to
// write. Parsing is best effort; records with unparseable dates are skipped
// by day-bucketed views.
var dayLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
}

// ParseDay parses a record date string in the deployment timezone.
func ParseDay(s string, loc *time.Location) (time.Time, bool) {
	for _, layout := range dayLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// dayKey buckets a time into its local calendar day.
func dayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

// DailyTotals sums a patient's meals for the given calendar day and reports
// the most recent meal. Ties on the parsed timestamp keep the earliest
// original row, so day-precision records resolve deterministically.
func DailyTotals(meals []*model.Meal, day time.Time, loc *time.Location) Totals {
	key := dayKey(day, loc)
	var out Totals
	var lastSeen time.Time

	for _, m := range meals {
		t, ok := ParseDay(m.Date, loc)
		if !ok || dayKey(t, loc) != key {
			continue
		}
		out.Calories += m.Calories
		out.Protein += m.Protein
		out.Carbs += m.Carbs
		out.Fat += m.Fat
		out.MealCount++
		if out.LastMeal == nil || t.After(lastSeen) {
			out.LastMeal = m
			lastSeen = t
		}
	}
	return out
}

// WaterTotal sums a patient's water intake in milliliters for the given
// calendar day.
func WaterTotal(logs []*model.WaterLog, day time.Time, loc *time.Location) float64 {
	key := dayKey(day, loc)
	var total float64
	for _, w := range logs {
		if t, ok := ParseDay(w.Date, loc); ok && dayKey(t, loc) == key {
			total += w.AmountML
		}
	}
	return total
}

// DaySeries builds a dense series of exactly `days` entries ending on the
// calendar day of `end`, chronologically ascending and zero-filled for days
// without records. Calories are derived from macros at 4/4/9 kcal per gram.
func DaySeries(meals []*model.Meal, end time.Time, days int, loc *time.Location) []DayPoint {
	if days <= 0 {
		return []DayPoint{}
	}

	endDay := time.Date(end.In(loc).Year(), end.In(loc).Month(), end.In(loc).Day(), 0, 0, 0, 0, loc)
	byDay := make(map[string]*DayPoint, days)
	series := make([]DayPoint, 0, days)

	for i := days - 1; i >= 0; i-- {
		day := endDay.AddDate(0, 0, -i)
		series = append(series, DayPoint{Day: day.Format("2006-01-02")})
	}
	for i := range series {
		byDay[series[i].Day] = &series[i]
	}

	for _, m := range meals {
		t, ok := ParseDay(m.Date, loc)
		if !ok {
			continue
		}
		p, ok := byDay[dayKey(t, loc)]
		if !ok {
			continue
		}
		p.Protein += m.Protein
		p.Carbs += m.Carbs
		p.Fat += m.Fat
	}
	for i := range series {
		p := &series[i]
		p.Calories = p.Protein*kcalPerGramProtein + p.Carbs*kcalPerGramCarbs + p.Fat*kcalPerGramFat
	}
	return series
}

// CategoryBreakdown groups meals by resolved category, summing stored
// calories and counting meals. Results are sorted lexicographically by
// category name for stable display. The same slice comes out whether a meal
// resolves through the explicit join or the derived classifier.
func CategoryBreakdown(meals []*model.Meal, explicit map[string]*model.CategoryRecord) []CategorySlice {
	byName := make(map[string]*CategorySlice)
	for _, m := range meals {
		name := classify.Resolve(m, explicit).Name
		s, ok := byName[name]
		if !ok {
			s = &CategorySlice{Name: name}
			byName[name] = s
		}
		s.Calories += m.Calories
		s.MealCount++
	}

	out := make([]CategorySlice, 0, len(byName))
	for _, s := range byName {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// AverageCaloriesPerMeal is total/count with the zero-meal case defined as 0.
func AverageCaloriesPerMeal(totalCalories float64, mealCount int) float64 {
	if mealCount == 0 {
		return 0
	}
	return totalCalories / float64(mealCount)
}
