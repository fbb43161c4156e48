package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"sppgmenu/internal/nutrition"
	"sppgmenu/models"
)

// Source resolves references into selectable items for one SPPG. Items come
// back in reference order and duplicates are preserved.
type Source interface {
	Load(ctx context.Context, sppgCode string, refs []Ref) ([]nutrition.SelectableItem, error)
}

// Filter narrows the menus offered to a planner.
type Filter struct {
	Search      string
	TargetLevel nutrition.TargetLevel
	MealType    string
	// Status narrows the listing to one selectable status; blank lists them all.
	Status      string
	ExcludeIDs  []uint
	Limit       int
}

const (
	defaultListLimit = 50
	// MaxListLimit caps a single listing page.
	MaxListLimit     = 100
)

// ParseStatus validates a status filter value case-insensitively.
func ParseStatus(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", nil
	}
	status := models.NormalizeMenuStatus(trimmed)
	if status != strings.ToUpper(trimmed) {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, value)
	}
	return status, nil
}

// Lister lists the menus a planner may pick from.
type Lister interface {
	Available(ctx context.Context, sppgCode string, filter Filter) ([]models.Menu, error)
}

// GormSource reads menus and recipes through gorm.
type GormSource struct {
	db *gorm.DB
}

// NewGormSource wraps database.
func NewGormSource(database *gorm.DB) *GormSource {
	return &GormSource{db: database}
}

func (s *GormSource) sppg(ctx context.Context, code string) (models.Sppg, error) {
	var sppg models.Sppg
	err := s.db.WithContext(ctx).
		Where("code = ? AND is_active = ?", strings.TrimSpace(code), true).
		First(&sppg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Sppg{}, fmt.Errorf("%w: %q", ErrUnknownSppg, code)
	}
	if err != nil {
		return models.Sppg{}, fmt.Errorf("load sppg: %w", err)
	}
	return sppg, nil
}

// Load implements Source. Menus that are inactive or not in a selectable
// status, and recipes under them, are reported as ErrItemNotFound.
func (s *GormSource) Load(ctx context.Context, sppgCode string, refs []Ref) ([]nutrition.SelectableItem, error) {
	if len(refs) == 0 {
		return []nutrition.SelectableItem{}, nil
	}

	sppg, err := s.sppg(ctx, sppgCode)
	if err != nil {
		return nil, err
	}

	var menuIDs, recipeIDs []uint
	for _, ref := range refs {
		switch ref.Kind {
		case nutrition.KindMenu:
			menuIDs = append(menuIDs, ref.ID)
		case nutrition.KindRecipe:
			recipeIDs = append(recipeIDs, ref.ID)
		default:
			return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidRef, ref.Kind)
		}
	}

	loaded := make(map[Ref]nutrition.SelectableItem, len(refs))

	if len(menuIDs) > 0 {
		var menus []models.Menu
		if err := s.db.WithContext(ctx).
			Where("sppg_id = ? AND id IN ?", sppg.ID, menuIDs).
			Find(&menus).Error; err != nil {
			return nil, fmt.Errorf("load menus: %w", err)
		}
		for _, menu := range menus {
			if !menu.Selectable() {
				continue
			}
			loaded[Ref{Kind: nutrition.KindMenu, ID: menu.ID}] = MenuItem(menu)
		}
	}

	if len(recipeIDs) > 0 {
		var recipes []models.Recipe
		if err := s.db.WithContext(ctx).
			Preload("Menu").
			Preload("Ingredients.Ingredient").
			Where("id IN ?", recipeIDs).
			Find(&recipes).Error; err != nil {
			return nil, fmt.Errorf("load recipes: %w", err)
		}
		for _, recipe := range recipes {
			if recipe.Menu == nil || recipe.Menu.SppgID != sppg.ID || !recipe.Menu.Selectable() {
				continue
			}
			loaded[Ref{Kind: nutrition.KindRecipe, ID: recipe.ID}] = RecipeItem(recipe)
		}
	}

	items := make([]nutrition.SelectableItem, 0, len(refs))
	for _, ref := range refs {
		item, ok := loaded[ref]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrItemNotFound, ref)
		}
		items = append(items, item)
	}
	return items, nil
}

// Available implements Lister. Only active menus in a selectable status are returned.
func (s *GormSource) Available(ctx context.Context, sppgCode string, filter Filter) ([]models.Menu, error) {
	sppg, err := s.sppg(ctx, sppgCode)
	if err != nil {
		return nil, err
	}

	query := s.db.WithContext(ctx).
		Where("sppg_id = ? AND is_active = ? AND status IN ?", sppg.ID, true, models.SelectableStatuses())
	if filter.TargetLevel != "" {
		query = query.Where("target_level = ?", string(filter.TargetLevel))
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.MealType != "" {
		query = query.Where("meal_type = ?", strings.ToUpper(filter.MealType))
	}
	if len(filter.ExcludeIDs) > 0 {
		query = query.Where("id NOT IN ?", filter.ExcludeIDs)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("(LOWER(name) LIKE ? OR LOWER(description) LIKE ?)", pattern, pattern)
	}

	var menus []models.Menu
	if err := query.Order("target_level, name").Limit(listLimit(filter.Limit)).Find(&menus).Error; err != nil {
		return nil, fmt.Errorf("list menus: %w", err)
	}
	return menus, nil
}

func listLimit(requested int) int {
	switch {
	case requested <= 0:
		return defaultListLimit
	case requested > MaxListLimit:
		return MaxListLimit
	default:
		return requested
	}
}

// MenuItem converts a stored menu into a selectable item.
func MenuItem(menu models.Menu) nutrition.SelectableItem {
	return nutrition.SelectableItem{
		ID:   Ref{Kind: nutrition.KindMenu, ID: menu.ID}.String(),
		Kind: nutrition.KindMenu,
		Name: menu.Name,
		Nutrition: nutrition.Profile{
			Calories: menu.Calories,
			Protein:  menu.Protein,
			Carbs:    menu.Carbs,
			Fat:      menu.Fat,
			Fiber:    menu.Fiber,
			Sodium:   menu.Sodium,
			Calcium:  menu.Calcium,
			Iron:     menu.Iron,
			VitaminA: menu.VitaminA,
			VitaminC: menu.VitaminC,
		},
		CostPerPortion: menu.CostPerPortion,
		PrepTime:       menu.PrepTime,
		CookTime:       menu.CookTime,
	}
}

// RecipeItem derives per-serving nutrition from the recipe's ingredient lines.
// Ingredients carry no price, so the item has no cost.
func RecipeItem(recipe models.Recipe) nutrition.SelectableItem {
	lines := make([]nutrition.IngredientPortion, 0, len(recipe.Ingredients))
	for _, line := range recipe.Ingredients {
		if line.Ingredient == nil {
			continue
		}
		ing := line.Ingredient
		lines = append(lines, nutrition.IngredientPortion{
			Quantity: line.Quantity,
			Unit:     line.Unit,
			NutritionPer100g: nutrition.Profile{
				Calories: ing.CaloriesPer100g,
				Protein:  ing.ProteinPer100g,
				Carbs:    ing.CarbsPer100g,
				Fat:      ing.FatPer100g,
				Fiber:    ing.FiberPer100g,
				Sodium:   ing.SodiumPer100g,
			},
		})
	}

	return nutrition.SelectableItem{
		ID:        Ref{Kind: nutrition.KindRecipe, ID: recipe.ID}.String(),
		Kind:      nutrition.KindRecipe,
		Name:      recipe.DisplayName(),
		Nutrition: nutrition.PerServing(nutrition.FromIngredients(lines), float64(recipe.ServingSize)),
		PrepTime:  recipe.PrepTime,
		CookTime:  recipe.CookTime,
	}
}
