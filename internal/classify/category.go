// Package classify derives meal categories and goal adherence from raw
// records. Both classifiers are pure: the dashboard and the mutation path
// re-derive groupings independently and must agree.
package classify

import (
	"regexp"
	"strings"

	"github.com/nutridash/nutridash-server/internal/model"
)

// The five fixed category names. Classification never returns a name outside
// this set.
const (
	CategoryBreakfast = "Café da manhã"
	CategorySnack     = "Lanche"
	CategoryDinner    = "Jantar"
	CategoryLunch     = "Almoço"
	CategoryOther     = "Outras Refeições"
)

// rule is one ordered keyword rule. Earlier rules win on ambiguous
// descriptions, so the slice order below is load-bearing.
type rule struct {
	name    string
	pattern *regexp.Regexp
}

// wordPattern builds a case-insensitive whole-word matcher for the given
// keywords. \b is ASCII-only in Go regexp, so accented keywords use explicit
// non-letter guards instead.
func wordPattern(keywords ...string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(?:^|[^\p{L}\d])(?:` + strings.Join(keywords, "|") + `)(?:$|[^\p{L}\d])`)
}

var rules = []rule{
	{CategoryBreakfast, wordPattern(
		"café", "cafe", "coffee", "pão", "pao", "bread", "ovo", "ovos", "egg", "eggs",
		"torrada", "toast", "tapioca", "iogurte", "yogurt", "fruta", "frutas", "fruit",
		"panqueca", "pancake",
	)},
	{CategorySnack, wordPattern(
		"lanche", "snack", "bolo", "cake", "biscoito", "cookie", "sanduíche", "sanduiche", "sandwich",
	)},
	{CategoryDinner, wordPattern(
		"jantar", "janta", "dinner", "sopa", "soup",
	)},
	{CategoryLunch, wordPattern(
		"arroz", "rice", "feijão", "feijao", "beans", "frango", "chicken", "carne", "meat",
		"peixe", "fish", "salada", "salad", "bife", "steak", "macarrão", "macarrao", "pasta",
		"grelhado", "grelhada", "grilled", "feijoada", "strogonoff", "lasanha",
	)},
}

// Category maps a free-text meal description to one of the five fixed
// category names. Matching is case-insensitive and whole-word; the first
// matching rule wins and unmatched descriptions fall through to
// CategoryOther.
func Category(description string) string {
	for _, r := range rules {
		if r.pattern.MatchString(description) {
			return r.name
		}
	}
	return CategoryOther
}

// Resolve picks the category for a meal: the explicit record when the meal
// carries a stored category id that resolves, the derived classifier
// otherwise. Both regimes sit behind this one function so aggregation and
// mutation see the same membership.
func Resolve(meal *model.Meal, explicit map[string]*model.CategoryRecord) model.Category {
	if meal.CategoryID != "" {
		if rec, ok := explicit[meal.CategoryID]; ok {
			return model.Category{
				Kind:        model.CategoryExplicit,
				ID:          rec.CategoryID,
				Name:        rec.Name,
				Description: rec.Description,
			}
		}
	}
	return model.Category{Kind: model.CategoryDerived, Name: Category(meal.Description)}
}
