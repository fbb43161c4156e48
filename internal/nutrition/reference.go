package nutrition

import (
	"errors"
	"fmt"
	"strings"
)

// TargetLevel is the education tier whose AKG (Angka Kecukupan Gizi) reference applies.
type TargetLevel string

const (
	LevelTK  TargetLevel = "TK"
	LevelSD  TargetLevel = "SD"
	LevelSMP TargetLevel = "SMP"
	LevelSMA TargetLevel = "SMA"
)

var levelNames = map[TargetLevel]string{
	LevelTK:  "Taman Kanak-Kanak",
	LevelSD:  "Sekolah Dasar",
	LevelSMP: "Sekolah Menengah Pertama",
	LevelSMA: "Sekolah Menengah Atas",
}

var servingSizeGrams = map[TargetLevel]float64{
	LevelTK:  200,
	LevelSD:  300,
	LevelSMP: 400,
	LevelSMA: 450,
}

const defaultServingSizeGrams = 300

// Levels returns every target level from youngest to oldest.
func Levels() []TargetLevel {
	return []TargetLevel{LevelTK, LevelSD, LevelSMP, LevelSMA}
}

// Name returns the Indonesian name of the education tier.
func (l TargetLevel) Name() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return string(l)
}

// ParseTargetLevel resolves a level code case-insensitively.
func ParseTargetLevel(value string) (TargetLevel, error) {
	candidate := TargetLevel(strings.ToUpper(strings.TrimSpace(value)))
	if _, ok := akgReferences[candidate]; !ok {
		return "", &ConfigurationError{Level: TargetLevel(value)}
	}
	return candidate, nil
}

// ServingSizeGrams returns the standard portion weight served at the level.
func ServingSizeGrams(level TargetLevel) float64 {
	if grams, ok := servingSizeGrams[level]; ok {
		return grams
	}
	return defaultServingSizeGrams
}

// ErrUnknownTargetLevel is matched by every ConfigurationError.
var ErrUnknownTargetLevel = errors.New("nutrition: unknown target level")

// ConfigurationError reports a target level without an AKG reference.
// The level set is closed, so this signals a programming defect.
type ConfigurationError struct {
	Level TargetLevel
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("nutrition: no AKG reference configured for target level %q", string(e.Level))
}

// Is reports ErrUnknownTargetLevel as equivalent.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrUnknownTargetLevel
}

// Range is an inclusive nominal intake interval.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Midpoint is the intake target that percentages are measured against.
func (r Range) Midpoint() float64 {
	return (r.Min + r.Max) / 2
}

// Reference holds the AKG ranges for one target level.
type Reference struct {
	Calories Range  `json:"calories"`
	Protein  Range  `json:"protein"`
	Carbs    Range  `json:"carbs"`
	Fat      Range  `json:"fat"`
	Fiber    Range  `json:"fiber"`
	Sodium   *Range `json:"sodium,omitempty"`
}

// Range returns the interval for n. The second result is false when the
// reference does not cover n.
func (r Reference) Range(n Nutrient) (Range, bool) {
	switch n {
	case Calories:
		return r.Calories, true
	case Protein:
		return r.Protein, true
	case Carbs:
		return r.Carbs, true
	case Fat:
		return r.Fat, true
	case Fiber:
		return r.Fiber, true
	case Sodium:
		if r.Sodium == nil {
			return Range{}, false
		}
		return *r.Sodium, true
	default:
		return Range{}, false
	}
}

// akgReferences is the Indonesian AKG table per education tier
// (kcal / g / g / g / g / mg).
var akgReferences = map[TargetLevel]Reference{
	LevelTK: {
		Calories: Range{Min: 800, Max: 1200},
		Protein:  Range{Min: 20, Max: 35},
		Carbs:    Range{Min: 120, Max: 180},
		Fat:      Range{Min: 25, Max: 40},
		Fiber:    Range{Min: 10, Max: 15},
		Sodium:   &Range{Min: 400, Max: 800},
	},
	LevelSD: {
		Calories: Range{Min: 1200, Max: 1800},
		Protein:  Range{Min: 30, Max: 50},
		Carbs:    Range{Min: 180, Max: 270},
		Fat:      Range{Min: 35, Max: 60},
		Fiber:    Range{Min: 15, Max: 25},
		Sodium:   &Range{Min: 600, Max: 1200},
	},
	LevelSMP: {
		Calories: Range{Min: 1600, Max: 2200},
		Protein:  Range{Min: 45, Max: 70},
		Carbs:    Range{Min: 240, Max: 330},
		Fat:      Range{Min: 50, Max: 80},
		Fiber:    Range{Min: 20, Max: 30},
		Sodium:   &Range{Min: 800, Max: 1500},
	},
	LevelSMA: {
		Calories: Range{Min: 1800, Max: 2500},
		Protein:  Range{Min: 50, Max: 80},
		Carbs:    Range{Min: 270, Max: 375},
		Fat:      Range{Min: 55, Max: 90},
		Fiber:    Range{Min: 25, Max: 35},
		Sodium:   &Range{Min: 1000, Max: 1800},
	},
}

// ReferenceFor returns a copy of the AKG reference for level.
func ReferenceFor(level TargetLevel) (Reference, error) {
	ref, ok := akgReferences[level]
	if !ok {
		return Reference{}, &ConfigurationError{Level: level}
	}
	return ref.clone(), nil
}

// References returns a copy of the full table keyed by level.
func References() map[TargetLevel]Reference {
	out := make(map[TargetLevel]Reference, len(akgReferences))
	for level, ref := range akgReferences {
		out[level] = ref.clone()
	}
	return out
}

func (r Reference) clone() Reference {
	if r.Sodium != nil {
		sodium := *r.Sodium
		r.Sodium = &sodium
	}
	return r
}

// Tolerance widens the nominal AKG range before a nutrient is judged out of range.
type Tolerance struct {
	UnderFactor float64 `json:"underFactor"`
	OverFactor  float64 `json:"overFactor"`
}

// ComplianceTolerance accepts values down to 80% of the minimum and up to 120% of the maximum.
var ComplianceTolerance = Tolerance{UnderFactor: 0.8, OverFactor: 1.2}

// BonusBand awards Points when a percentage of the midpoint lies within [Low, High].
type BonusBand struct {
	Low    int `json:"low"`
	High   int `json:"high"`
	Points int `json:"points"`
}

// BalanceBonusBands are checked in order; the first matching band wins.
var BalanceBonusBands = []BonusBand{
	{Low: 90, High: 110, Points: 4},
	{Low: 80, High: 120, Points: 2},
}

const (
	complianceMaxPoints = 80
	balanceBonusCap     = 20
	maxScore            = 100
)
