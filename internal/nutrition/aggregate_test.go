package nutrition

import (
	"math"
	"testing"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestAggregateEmptyInputIsAllZero(t *testing.T) {
	t.Parallel()

	agg := Aggregate(nil)
	if agg.Totals != (Profile{}) {
		t.Fatalf("Aggregate(nil).Totals = %+v, want zero profile", agg.Totals)
	}
	if agg.TotalCost != 0 {
		t.Fatalf("Aggregate(nil).TotalCost = %v, want 0", agg.TotalCost)
	}
	if agg.Timing != (Timing{}) {
		t.Fatalf("Aggregate(nil).Timing = %+v, want zero timing", agg.Timing)
	}
	if agg.ItemCount != 0 {
		t.Fatalf("Aggregate(nil).ItemCount = %d, want 0", agg.ItemCount)
	}
}

func TestAggregateIsAdditive(t *testing.T) {
	t.Parallel()

	a := []SelectableItem{
		{ID: "a1", Nutrition: Profile{Calories: 380, Protein: 18, Carbs: 45, Fat: 12, Fiber: 8, Calcium: 180, Iron: 4.2}, CostPerPortion: floatPtr(6500)},
		{ID: "a2", Nutrition: Profile{Calories: 120, Protein: 3, Carbs: 20, Fat: 1, Fiber: 2, VitaminC: 30}},
	}
	b := []SelectableItem{
		{ID: "b1", Nutrition: Profile{Calories: 450, Protein: 22, Carbs: 52, Fat: 15, Fiber: 10, Sodium: 420}, CostPerPortion: floatPtr(8000)},
	}

	combined := Aggregate(append(append([]SelectableItem{}, a...), b...))
	left := Aggregate(a)
	right := Aggregate(b)

	want := left.Totals.Add(right.Totals)
	for _, n := range []Nutrient{Calories, Protein, Carbs, Fat, Fiber, Sodium, Calcium, Iron, VitaminA, VitaminC} {
		if math.Abs(combined.Totals.Value(n)-want.Value(n)) > 1e-9 {
			t.Fatalf("%s: combined = %v, want %v", n, combined.Totals.Value(n), want.Value(n))
		}
	}
	if combined.TotalCost != left.TotalCost+right.TotalCost {
		t.Fatalf("TotalCost = %v, want %v", combined.TotalCost, left.TotalCost+right.TotalCost)
	}
	if combined.TotalCost != 14500 {
		t.Fatalf("TotalCost = %v, want 14500 with nil cost counted as zero", combined.TotalCost)
	}
}

func TestAggregateKeepsDuplicates(t *testing.T) {
	t.Parallel()

	item := SelectableItem{ID: "dup", Nutrition: Profile{Calories: 100}, CostPerPortion: floatPtr(1000)}
	agg := Aggregate([]SelectableItem{item, item})
	if agg.Totals.Calories != 200 || agg.TotalCost != 2000 || agg.ItemCount != 2 {
		t.Fatalf("duplicates not summed: %+v", agg)
	}
}

func TestAggregateTiming(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		items []SelectableItem
		want  Timing
	}{
		{
			name: "prep sums and cook takes max",
			items: []SelectableItem{
				{ID: "1", PrepTime: intPtr(10), CookTime: intPtr(15)},
				{ID: "2", PrepTime: intPtr(20), CookTime: intPtr(30)},
			},
			want: Timing{PrepTime: 30, CookTime: 30, TotalTime: 60},
		},
		{
			name:  "defaults when absent",
			items: []SelectableItem{{ID: "1"}, {ID: "2"}},
			want:  Timing{PrepTime: 30, CookTime: 20, TotalTime: 50},
		},
		{
			name: "explicit zero is honoured",
			items: []SelectableItem{
				{ID: "1", PrepTime: intPtr(0), CookTime: intPtr(0)},
			},
			want: Timing{},
		},
		{
			name: "mixed explicit and default",
			items: []SelectableItem{
				{ID: "1", PrepTime: intPtr(30), CookTime: intPtr(25)},
				{ID: "2"},
			},
			want: Timing{PrepTime: 45, CookTime: 25, TotalTime: 70},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Aggregate(tt.items).Timing; got != tt.want {
				t.Fatalf("Timing = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestAggregationScaled(t *testing.T) {
	t.Parallel()

	agg := Aggregate([]SelectableItem{{ID: "1", Nutrition: Profile{Calories: 400, Protein: 20}, CostPerPortion: floatPtr(7000)}})
	scaled := agg.Scaled(25)
	if scaled.Totals.Calories != 10000 || scaled.Totals.Protein != 500 {
		t.Fatalf("scaled totals = %+v", scaled.Totals)
	}
	if scaled.TotalCost != 175000 {
		t.Fatalf("scaled cost = %v, want 175000", scaled.TotalCost)
	}
	if scaled.Timing != agg.Timing {
		t.Fatalf("scaling changed timing: %+v vs %+v", scaled.Timing, agg.Timing)
	}
	if agg.TotalCost != 7000 {
		t.Fatalf("Scaled mutated the receiver: %v", agg.TotalCost)
	}
}
