package nutrition

import (
	"fmt"
	"math"
)

// Grade is the letter grade derived from a composite score.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// GradeInfo carries the presentation attached to a grade.
type GradeInfo struct {
	Grade       Grade  `json:"grade"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

var gradeScale = []struct {
	minScore int
	info     GradeInfo
}{
	{90, GradeInfo{Grade: GradeA, Color: "green", Description: "Excellent - Memenuhi semua kebutuhan gizi"}},
	{80, GradeInfo{Grade: GradeB, Color: "blue", Description: "Good - Memenuhi sebagian besar kebutuhan gizi"}},
	{70, GradeInfo{Grade: GradeC, Color: "yellow", Description: "Fair - Perlu perbaikan pada beberapa nutrisi"}},
	{60, GradeInfo{Grade: GradeD, Color: "orange", Description: "Poor - Banyak kekurangan nutrisi"}},
}

var failingGrade = GradeInfo{Grade: GradeF, Color: "red", Description: "Fail - Tidak memenuhi kebutuhan gizi minimal"}

// GradeFor maps a 0-100 score onto a letter grade; lower bounds are inclusive.
func GradeFor(score int) GradeInfo {
	for _, step := range gradeScale {
		if score >= step.minScore {
			return step.info
		}
	}
	return failingGrade
}

// Scorecard is the composite assessment of a compliance result.
type Scorecard struct {
	Score           int       `json:"score"`
	Grade           GradeInfo `json:"grade"`
	Recommendations []string  `json:"recommendations"`
}

// Score blends binary compliance (up to 80 points) with closeness to the
// reference midpoint (up to 20 points) and attaches recommendations.
func Score(result ComplianceResult) Scorecard {
	compliant := 0
	for _, n := range CoreNutrients {
		if result.Details[n] == StatusCompliant {
			compliant++
		}
	}
	complianceScore := math.Min(float64(compliant)/float64(len(CoreNutrients))*complianceMaxPoints, complianceMaxPoints)

	bonus := 0
	for _, n := range CoreNutrients {
		bonus += balancePoints(result.Percentages[n])
	}
	if bonus > balanceBonusCap {
		bonus = balanceBonusCap
	}

	score := roundHalfUp(math.Min(complianceScore+float64(bonus), maxScore))
	return Scorecard{
		Score:           score,
		Grade:           GradeFor(score),
		Recommendations: recommendationsFor(result),
	}
}

func balancePoints(percentage int) int {
	for _, band := range BalanceBonusBands {
		if percentage >= band.Low && percentage <= band.High {
			return band.Points
		}
	}
	return 0
}

// Recommend evaluates nutrition for level and returns remediation messages
// for the nutrients that fall outside tolerance.
func Recommend(nutrition Profile, level TargetLevel) ([]string, error) {
	result, err := Evaluate(nutrition, level)
	if err != nil {
		return nil, err
	}
	return recommendationsFor(result), nil
}

// recommendationsFor covers calories, protein, fiber and carbs. Fat has no
// message in the shipped product and is left that way until product intent is settled.
func recommendationsFor(result ComplianceResult) []string {
	ref := result.Reference
	got := result.Nutrition
	recs := make([]string, 0, 4)

	switch result.Details[Calories] {
	case StatusUnder:
		recs = append(recs, fmt.Sprintf("Kalori terlalu rendah. Tambahkan %d kalori lagi.", roundHalfUp(ref.Calories.Min-got.Calories)))
	case StatusOver:
		recs = append(recs, fmt.Sprintf("Kalori terlalu tinggi. Kurangi %d kalori.", roundHalfUp(got.Calories-ref.Calories.Max)))
	}

	if result.Details[Protein] == StatusUnder {
		recs = append(recs, fmt.Sprintf("Protein kurang. Tambahkan %dg protein.", roundHalfUp(ref.Protein.Min-got.Protein)))
	}

	if result.Details[Fiber] == StatusUnder {
		recs = append(recs, fmt.Sprintf("Serat kurang. Tambahkan sayuran atau buah untuk mencukupi %dg serat.", roundHalfUp(ref.Fiber.Min-got.Fiber)))
	}

	if result.Details[Carbs] == StatusUnder {
		recs = append(recs, fmt.Sprintf("Karbohidrat kurang %dg. Tambahkan nasi, roti, atau sumber karbo lain.", roundHalfUp(ref.Carbs.Min-got.Carbs)))
	}

	return recs
}
