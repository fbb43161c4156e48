package nutrition

import (
	"errors"
	"fmt"
)

// MaxItemsPerSelection caps how many recipes or menus one evaluation accepts.
const MaxItemsPerSelection = 10

// Plausibility ceilings for one portion. Micronutrients only need to be non-negative.
const (
	MaxPortionCost     = 100000
	MaxPrepTimeMinutes = 600
	MaxCookTimeMinutes = 480
)

var nutrientCeilings = map[Nutrient]float64{
	Calories: 3000,
	Protein:  200,
	Carbs:    500,
	Fat:      150,
	Fiber:    100,
	Sodium:   5000,
}

var allNutrients = []Nutrient{Calories, Protein, Carbs, Fat, Fiber, Sodium, Calcium, Iron, VitaminA, VitaminC}

// ErrTooManyItems is returned when a selection exceeds MaxItemsPerSelection.
var ErrTooManyItems = fmt.Errorf("nutrition: at most %d items per selection", MaxItemsPerSelection)

// ValidationError names the offending field of a rejected item.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return "nutrition: " + e.Field + ": " + e.Reason
}

// IsValidationError reports whether err came from ValidateItems.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve) || errors.Is(err, ErrTooManyItems)
}

// ValidateItems rejects selections with too many entries, negative or
// implausible nutrition, a negative cost or out-of-range timings.
func ValidateItems(items []SelectableItem) error {
	if len(items) > MaxItemsPerSelection {
		return ErrTooManyItems
	}
	for i, it := range items {
		if err := validateItem(fmt.Sprintf("items[%d]", i), it); err != nil {
			return err
		}
	}
	return nil
}

func validateItem(prefix string, it SelectableItem) error {
	for _, n := range allNutrients {
		v := it.Nutrition.Value(n)
		field := prefix + ".nutrition." + string(n)
		if v < 0 {
			return &ValidationError{Field: field, Reason: "must not be negative"}
		}
		if ceiling, ok := nutrientCeilings[n]; ok && v > ceiling {
			return &ValidationError{Field: field, Reason: fmt.Sprintf("must not exceed %g", ceiling)}
		}
	}
	if it.CostPerPortion != nil {
		if err := checkRange(prefix+".costPerPortion", *it.CostPerPortion, MaxPortionCost); err != nil {
			return err
		}
	}
	if it.PrepTime != nil {
		if err := checkRange(prefix+".prepTime", float64(*it.PrepTime), MaxPrepTimeMinutes); err != nil {
			return err
		}
	}
	if it.CookTime != nil {
		if err := checkRange(prefix+".cookTime", float64(*it.CookTime), MaxCookTimeMinutes); err != nil {
			return err
		}
	}
	return nil
}

func checkRange(field string, v, max float64) error {
	switch {
	case v < 0:
		return &ValidationError{Field: field, Reason: "must not be negative"}
	case v > max:
		return &ValidationError{Field: field, Reason: fmt.Sprintf("must not exceed %g", max)}
	}
	return nil
}
