package nutrition

import (
	"errors"
	"testing"
)

func TestValidateItems(t *testing.T) {
	t.Parallel()

	valid := SelectableItem{
		ID:             "menu-1",
		Nutrition:      Profile{Calories: 450, Protein: 22, Carbs: 52, Fat: 15, Fiber: 10, Sodium: 420},
		CostPerPortion: floatPtr(8000),
		PrepTime:       intPtr(0),
		CookTime:       intPtr(30),
	}

	tests := []struct {
		name  string
		edit  func(*SelectableItem)
		field string
	}{
		{"valid", func(*SelectableItem) {}, ""},
		{"negative calories", func(it *SelectableItem) { it.Nutrition.Calories = -5000 }, "items[0].nutrition.calories"},
		{"implausible calories", func(it *SelectableItem) { it.Nutrition.Calories = 3001 }, "items[0].nutrition.calories"},
		{"implausible protein", func(it *SelectableItem) { it.Nutrition.Protein = 250 }, "items[0].nutrition.protein"},
		{"negative vitamin c", func(it *SelectableItem) { it.Nutrition.VitaminC = -1 }, "items[0].nutrition.vitaminC"},
		{"negative cost", func(it *SelectableItem) { it.CostPerPortion = floatPtr(-1) }, "items[0].costPerPortion"},
		{"negative prep time", func(it *SelectableItem) { it.PrepTime = intPtr(-10) }, "items[0].prepTime"},
		{"cook time over eight hours", func(it *SelectableItem) { it.CookTime = intPtr(481) }, "items[0].cookTime"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			it := valid
			tt.edit(&it)
			err := ValidateItems([]SelectableItem{it})
			if tt.field == "" {
				if err != nil {
					t.Fatalf("expected valid item, got %v", err)
				}
				return
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Field != tt.field {
				t.Fatalf("field = %q, want %q", ve.Field, tt.field)
			}
			if !IsValidationError(err) {
				t.Fatalf("IsValidationError(%v) = false", err)
			}
		})
	}
}

func TestValidateItemsCapsSelectionSize(t *testing.T) {
	t.Parallel()

	items := make([]SelectableItem, MaxItemsPerSelection)
	if err := ValidateItems(items); err != nil {
		t.Fatalf("expected %d items to pass, got %v", MaxItemsPerSelection, err)
	}
	err := ValidateItems(append(items, SelectableItem{}))
	if !errors.Is(err, ErrTooManyItems) || !IsValidationError(err) {
		t.Fatalf("expected ErrTooManyItems, got %v", err)
	}
}

func TestValidateItemsReportsLaterIndex(t *testing.T) {
	t.Parallel()

	items := []SelectableItem{
		{ID: "a", Nutrition: Profile{Calories: 300}},
		{ID: "b", Nutrition: Profile{Fat: -2}},
	}
	var ve *ValidationError
	if err := ValidateItems(items); !errors.As(err, &ve) || ve.Field != "items[1].nutrition.fat" {
		t.Fatalf("expected items[1].nutrition.fat, got %v", err)
	}
}
