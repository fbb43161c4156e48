package nutrition

const (
	// DefaultPrepTime is assumed for an item without a prep time, in minutes.
	DefaultPrepTime = 15
	// DefaultCookTime is assumed for an item without a cook time, in minutes.
	DefaultCookTime = 20
)

// Timing estimates kitchen time for a selection. Prep work adds up across
// items while cooking runs on parallel stations, so the slowest item sets
// the cook time.
type Timing struct {
	PrepTime  int `json:"prepTime"`
	CookTime  int `json:"cookTime"`
	TotalTime int `json:"totalTime"`
}

// Aggregation is the combined nutrition, cost and timing of a selection.
type Aggregation struct {
	Totals    Profile `json:"totals"`
	TotalCost float64 `json:"totalCost"`
	Timing    Timing  `json:"timing"`
	ItemCount int     `json:"itemCount"`
}

// Aggregate sums nutrition and cost across items. Items are taken as given:
// nothing is validated or deduplicated.
func Aggregate(items []SelectableItem) Aggregation {
	var agg Aggregation
	if len(items) == 0 {
		return agg
	}

	for _, item := range items {
		agg.Totals = agg.Totals.Add(item.Nutrition)
		agg.TotalCost += item.cost()
		agg.Timing.PrepTime += item.prepMinutes()
		if cook := item.cookMinutes(); cook > agg.Timing.CookTime {
			agg.Timing.CookTime = cook
		}
	}
	agg.Timing.TotalTime = agg.Timing.PrepTime + agg.Timing.CookTime
	agg.ItemCount = len(items)
	return agg
}

// Scaled returns the aggregation multiplied out for a number of servings.
// Timing and item count do not change with the serving count.
func (a Aggregation) Scaled(servings float64) Aggregation {
	a.Totals = a.Totals.Scale(servings)
	a.TotalCost *= servings
	return a
}
