package nutrition

import (
	"fmt"
	"math"
)

// Summary is everything the planner shows for a selection at one target level.
type Summary struct {
	Level            TargetLevel      `json:"targetLevel"`
	Aggregation      Aggregation      `json:"aggregation"`
	Compliance       ComplianceResult `json:"compliance"`
	Scorecard        Scorecard        `json:"scorecard"`
	MeetsMinimum     bool             `json:"meetsMinimum"`
	ServingSizeGrams float64          `json:"servingSizeGrams"`
	CostPerGram      float64          `json:"costPerGram"`
	CaloriesPerGram  float64          `json:"caloriesPerGram"`
	Density          Density          `json:"density"`
}

// Summarize runs the full pipeline: aggregate, evaluate, score.
func Summarize(items []SelectableItem, level TargetLevel) (Summary, error) {
	agg := Aggregate(items)

	compliance, err := Evaluate(agg.Totals, level)
	if err != nil {
		return Summary{}, err
	}
	meetsMinimum, err := MeetsMinimum(agg.Totals, level)
	if err != nil {
		return Summary{}, err
	}

	serving := ServingSizeGrams(level)
	return Summary{
		Level:            level,
		Aggregation:      agg,
		Compliance:       compliance,
		Scorecard:        Score(compliance),
		MeetsMinimum:     meetsMinimum,
		ServingSizeGrams: serving,
		CostPerGram:      agg.TotalCost / serving,
		CaloriesPerGram:  agg.Totals.Calories / serving,
		Density:          DensityOf(agg.Totals),
	}, nil
}

// FormatValue renders value rounded to one decimal with the nutrient's unit.
func FormatValue(value float64, n Nutrient) string {
	rounded := trimDecimal(math.Floor(value*10+0.5) / 10)
	switch n {
	case Calories:
		return rounded + " kkal"
	case Protein, Carbs, Fat, Fiber:
		return rounded + "g"
	case Sodium, Calcium, Iron, VitaminC:
		return rounded + "mg"
	case VitaminA:
		return rounded + " IU"
	default:
		return rounded
	}
}

func trimDecimal(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}
