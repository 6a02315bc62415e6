package services

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/nutridash/nutridash-server/internal/classify"
	"github.com/nutridash/nutridash-server/internal/model"
	"github.com/nutridash/nutridash-server/internal/store"
)

// CategoryView is an explicit or derived category together with how many
// meals currently resolve into it.
type CategoryView struct {
	Kind        model.CategoryKind `json:"kind"`
	ID          string             `json:"id,omitempty"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	MealCount   int                `json:"mealCount"`
}

// CategoryService manages explicit category records. Meals reference
// categories by stored id only, so renames and deletes never touch meal
// descriptions.
type CategoryService struct {
	store store.Store
}

func NewCategoryService(s store.Store) *CategoryService {
	return &CategoryService{store: s}
}

// List returns every explicit category plus each derived category that at
// least one meal currently resolves into, with usage counts.
func (s *CategoryService) List(ctx context.Context) ([]CategoryView, error) {
	records, err := s.store.Categories().List(ctx)
	if err != nil {
		return nil, err
	}
	meals, err := s.store.Meals().List(ctx)
	if err != nil {
		return nil, err
	}

	explicit := make(map[string]*model.CategoryRecord, len(records))
	for _, rec := range records {
		explicit[rec.CategoryID] = rec
	}

	counts := make(map[string]int)
	derived := make(map[string]int)
	for _, m := range meals {
		cat := classify.Resolve(m, explicit)
		if cat.Kind == model.CategoryExplicit {
			counts[cat.ID]++
		} else {
			derived[cat.Name]++
		}
	}

	out := make([]CategoryView, 0, len(records)+len(derived))
	for _, rec := range records {
		out = append(out, CategoryView{
			Kind:        model.CategoryExplicit,
			ID:          rec.CategoryID,
			Name:        rec.Name,
			Description: rec.Description,
			MealCount:   counts[rec.CategoryID],
		})
	}
	for name, n := range derived {
		out = append(out, CategoryView{Kind: model.CategoryDerived, Name: name, MealCount: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind == model.CategoryExplicit
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (s *CategoryService) Create(ctx context.Context, name, description string) (*model.CategoryRecord, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, model.NewValidationError("name", "category name is required")
	}
	rec := &model.CategoryRecord{
		CategoryID:  uuid.New().String(),
		Name:        name,
		Description: description,
	}
	log.Info().Str("categoryID", rec.CategoryID).Str("name", name).Msg("Creating category")
	return s.store.Categories().Create(ctx, rec)
}

// Rename changes the display name of an explicit category. Membership is by
// stored id, so repeated renames never stack and meal rows are untouched.
func (s *CategoryService) Rename(ctx context.Context, categoryID, newName string) (*model.CategoryRecord, error) {
	if categoryID == "" {
		return nil, model.NewValidationError("categoryId", "category ID is required")
	}
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil, model.NewValidationError("name", "category name cannot be empty")
	}
	log.Info().Str("categoryID", categoryID).Str("name", newName).Msg("Renaming category")
	return s.store.Categories().Rename(ctx, categoryID, newName)
}

// Delete removes an explicit category. Meals that referenced it fall back to
// the derived classifier on the next read.
func (s *CategoryService) Delete(ctx context.Context, categoryID string) error {
	if categoryID == "" {
		return model.NewValidationError("categoryId", "category ID is required")
	}
	log.Info().Str("categoryID", categoryID).Msg("Deleting category")
	return s.store.Categories().Delete(ctx, categoryID)
}
