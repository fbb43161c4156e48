package nutrition

import "math"

// Status is the categorical judgement of a nutrient against its reference.
type Status string

const (
	StatusCompliant Status = "COMPLIANT"
	StatusUnder     Status = "UNDER"
	StatusOver      Status = "OVER"
	// StatusMissing is reserved for absent required data and is never produced by Evaluate.
	StatusMissing Status = "MISSING"
)

// ComplianceResult is the evaluation of one Profile against one target level.
type ComplianceResult struct {
	Level       TargetLevel         `json:"targetLevel"`
	Overall     Status              `json:"overall"`
	Details     map[Nutrient]Status `json:"details"`
	Percentages map[Nutrient]int    `json:"percentages"`
	Nutrition   Profile             `json:"nutrition"`
	Reference   Reference           `json:"reference"`
}

// Evaluate judges each core nutrient of nutrition against the AKG reference for level.
func Evaluate(nutrition Profile, level TargetLevel) (ComplianceResult, error) {
	ref, err := ReferenceFor(level)
	if err != nil {
		return ComplianceResult{}, err
	}

	result := ComplianceResult{
		Level:       level,
		Details:     make(map[Nutrient]Status, len(CoreNutrients)),
		Percentages: make(map[Nutrient]int, len(CoreNutrients)),
		Nutrition:   nutrition,
		Reference:   ref,
	}

	for _, n := range CoreNutrients {
		rng, _ := ref.Range(n)
		value := nutrition.Value(n)
		result.Details[n] = nutrientStatus(value, rng)
		result.Percentages[n] = percentOfMidpoint(value, rng)
	}
	result.Overall = overallStatus(result.Details)

	return result, nil
}

// MeetsMinimum reports whether every core nutrient clears the under-tolerance floor.
func MeetsMinimum(nutrition Profile, level TargetLevel) (bool, error) {
	ref, err := ReferenceFor(level)
	if err != nil {
		return false, err
	}
	for _, n := range CoreNutrients {
		rng, _ := ref.Range(n)
		if nutrition.Value(n) < rng.Min*ComplianceTolerance.UnderFactor {
			return false, nil
		}
	}
	return true, nil
}

// nutrientStatus compares against the tolerance band, not the nominal range:
// a value up to 20% outside [Min, Max] still counts as compliant.
func nutrientStatus(value float64, rng Range) Status {
	switch {
	case value < rng.Min*ComplianceTolerance.UnderFactor:
		return StatusUnder
	case value > rng.Max*ComplianceTolerance.OverFactor:
		return StatusOver
	default:
		return StatusCompliant
	}
}

// overallStatus ranks UNDER above OVER: under-nutrition is the higher priority failure.
func overallStatus(details map[Nutrient]Status) Status {
	sawOver := false
	for _, n := range CoreNutrients {
		switch details[n] {
		case StatusUnder:
			return StatusUnder
		case StatusOver:
			sawOver = true
		}
	}
	if sawOver {
		return StatusOver
	}
	return StatusCompliant
}

func percentOfMidpoint(value float64, rng Range) int {
	mid := rng.Midpoint()
	if mid == 0 {
		return 0
	}
	return roundHalfUp(value / mid * 100)
}

// roundHalfUp rounds .5 toward positive infinity.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
