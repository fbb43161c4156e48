package nutrition

// Nutrient identifies a tracked field of a Profile.
type Nutrient string

const (
	Calories Nutrient = "calories"
	Protein  Nutrient = "protein"
	Carbs    Nutrient = "carbs"
	Fat      Nutrient = "fat"
	Fiber    Nutrient = "fiber"
	Sodium   Nutrient = "sodium"
	Calcium  Nutrient = "calcium"
	Iron     Nutrient = "iron"
	VitaminA Nutrient = "vitaminA"
	VitaminC Nutrient = "vitaminC"
)

// CoreNutrients lists the nutrients evaluated against the AKG reference, in report order.
var CoreNutrients = []Nutrient{Calories, Protein, Carbs, Fat, Fiber}

// Profile is the nutrition content of a recipe, menu, or an aggregate of them.
// Calories are kcal; protein, carbs, fat and fiber are grams; sodium, calcium,
// iron and vitamin C are milligrams; vitamin A is IU. The optional
// micronutrients read as zero when a record does not carry them.
type Profile struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
	Sodium   float64 `json:"sodium,omitempty"`
	Calcium  float64 `json:"calcium,omitempty"`
	Iron     float64 `json:"iron,omitempty"`
	VitaminA float64 `json:"vitaminA,omitempty"`
	VitaminC float64 `json:"vitaminC,omitempty"`
}

// Value returns the amount recorded for n, or zero for an unknown nutrient.
func (p Profile) Value(n Nutrient) float64 {
	switch n {
	case Calories:
		return p.Calories
	case Protein:
		return p.Protein
	case Carbs:
		return p.Carbs
	case Fat:
		return p.Fat
	case Fiber:
		return p.Fiber
	case Sodium:
		return p.Sodium
	case Calcium:
		return p.Calcium
	case Iron:
		return p.Iron
	case VitaminA:
		return p.VitaminA
	case VitaminC:
		return p.VitaminC
	default:
		return 0
	}
}

// Add returns the field-wise sum of p and o.
func (p Profile) Add(o Profile) Profile {
	return Profile{
		Calories: p.Calories + o.Calories,
		Protein:  p.Protein + o.Protein,
		Carbs:    p.Carbs + o.Carbs,
		Fat:      p.Fat + o.Fat,
		Fiber:    p.Fiber + o.Fiber,
		Sodium:   p.Sodium + o.Sodium,
		Calcium:  p.Calcium + o.Calcium,
		Iron:     p.Iron + o.Iron,
		VitaminA: p.VitaminA + o.VitaminA,
		VitaminC: p.VitaminC + o.VitaminC,
	}
}

// Scale multiplies every field of p by factor.
func (p Profile) Scale(factor float64) Profile {
	return Profile{
		Calories: p.Calories * factor,
		Protein:  p.Protein * factor,
		Carbs:    p.Carbs * factor,
		Fat:      p.Fat * factor,
		Fiber:    p.Fiber * factor,
		Sodium:   p.Sodium * factor,
		Calcium:  p.Calcium * factor,
		Iron:     p.Iron * factor,
		VitaminA: p.VitaminA * factor,
		VitaminC: p.VitaminC * factor,
	}
}

// ItemKind distinguishes the records a planner can select.
type ItemKind string

const (
	KindMenu   ItemKind = "menu"
	KindRecipe ItemKind = "recipe"
)

// SelectableItem is a recipe or menu offered for selection with its
// per-portion nutrition, cost and timing hints.
type SelectableItem struct {
	ID        string   `json:"id"`
	Kind      ItemKind `json:"kind,omitempty"`
	Name      string   `json:"name,omitempty"`
	Nutrition Profile  `json:"nutrition"`
	// CostPerPortion is nil when the cost is unknown.
	CostPerPortion *float64 `json:"costPerPortion,omitempty"`
	// PrepTime and CookTime are minutes; nil selects DefaultPrepTime / DefaultCookTime.
	PrepTime *int `json:"prepTime,omitempty"`
	CookTime *int `json:"cookTime,omitempty"`
}

func (it SelectableItem) cost() float64 {
	if it.CostPerPortion == nil {
		return 0
	}
	return *it.CostPerPortion
}

func (it SelectableItem) prepMinutes() int {
	if it.PrepTime == nil {
		return DefaultPrepTime
	}
	return *it.PrepTime
}

func (it SelectableItem) cookMinutes() int {
	if it.CookTime == nil {
		return DefaultCookTime
	}
	return *it.CookTime
}
