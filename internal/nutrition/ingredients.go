package nutrition

import "strings"

// IngredientPortion is an ingredient line of a recipe: a quantity in a
// kitchen unit and the ingredient's nutrition per 100 g.
type IngredientPortion struct {
	Quantity         float64
	Unit             string
	NutritionPer100g Profile
}

// gramsPerUnit converts household measures to grams; liquids assume a density of 1.
var gramsPerUnit = map[string]float64{
	"gram":         1,
	"g":            1,
	"kilogram":     1000,
	"kg":           1000,
	"mililiter":    1,
	"ml":           1,
	"liter":        1000,
	"l":            1000,
	"sendok makan": 15,
	"sendok teh":   5,
	"cangkir":      250,
	"gelas":        200,
}

// gramsPerPiece is assumed for countable units such as buah, butir or potong.
const gramsPerPiece = 50

// PortionsOf100g returns how many 100 g portions quantity of unit represents.
func PortionsOf100g(quantity float64, unit string) float64 {
	if grams, ok := gramsPerUnit[strings.ToLower(strings.TrimSpace(unit))]; ok {
		return quantity * grams / 100
	}
	return quantity * gramsPerPiece / 100
}

// FromIngredients totals the nutrition contributed by every ingredient line.
func FromIngredients(lines []IngredientPortion) Profile {
	var total Profile
	for _, line := range lines {
		total = total.Add(line.NutritionPer100g.Scale(PortionsOf100g(line.Quantity, line.Unit)))
	}
	return total
}

// PerServing divides a batch profile across servings. A non-positive serving
// count returns p unchanged.
func PerServing(p Profile, servings float64) Profile {
	if servings <= 0 {
		return p
	}
	return p.Scale(1 / servings)
}

// Density is macro-nutrient content per 100 kcal.
type Density struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
	Fiber   float64 `json:"fiber"`
}

// DensityOf reports grams of each macro per 100 kcal; zero calories yields a zero Density.
func DensityOf(p Profile) Density {
	if p.Calories == 0 {
		return Density{}
	}
	factor := 100 / p.Calories
	return Density{
		Protein: p.Protein * factor,
		Carbs:   p.Carbs * factor,
		Fat:     p.Fat * factor,
		Fiber:   p.Fiber * factor,
	}
}
