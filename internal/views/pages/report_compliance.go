package pages

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"sppgmenu/internal/nutrition"
)

// ComplianceReportRow is one nutrient line of the report.
type ComplianceReportRow struct {
	Nutrient   nutrition.Nutrient
	Label      string
	Value      string
	Range      string
	Percentage int
	Status     nutrition.Status
}

// ComplianceReportItem is one selected menu or recipe.
type ComplianceReportItem struct {
	Ref      string
	Name     string
	Kind     nutrition.ItemKind
	Calories string
	Cost     string
}

// ComplianceReportData aggregates everything the compliance report renders.
type ComplianceReportData struct {
	EvaluationID    string
	SppgCode        string
	Level           nutrition.TargetLevel
	LevelName       string
	RunDate         time.Time
	Items           []ComplianceReportItem
	Rows            []ComplianceReportRow
	Overall         nutrition.Status
	Score           int
	Grade           nutrition.GradeInfo
	MeetsMinimum    bool
	TotalCost       string
	CostPerGram     string
	Timing          nutrition.Timing
	Recommendations []string
}

var nutrientLabels = map[nutrition.Nutrient]string{
	nutrition.Calories: "Kalori",
	nutrition.Protein:  "Protein",
	nutrition.Carbs:    "Karbohidrat",
	nutrition.Fat:      "Lemak",
	nutrition.Fiber:    "Serat",
	nutrition.Sodium:   "Natrium",
	nutrition.Calcium:  "Kalsium",
	nutrition.Iron:     "Zat Besi",
	nutrition.VitaminA: "Vitamin A",
	nutrition.VitaminC: "Vitamin C",
}

// NutrientLabel returns the Indonesian name of n.
func NutrientLabel(n nutrition.Nutrient) string {
	if label, ok := nutrientLabels[n]; ok {
		return label
	}
	return string(n)
}

// BuildComplianceReport projects a summary into report rows.
func BuildComplianceReport(evaluationID, sppgCode string, items []nutrition.SelectableItem, summary nutrition.Summary, runDate time.Time) ComplianceReportData {
	data := ComplianceReportData{
		EvaluationID:    evaluationID,
		SppgCode:        sppgCode,
		Level:           summary.Level,
		LevelName:       summary.Level.Name(),
		RunDate:         runDate,
		Items:           ReportItems(items),
		Overall:         summary.Compliance.Overall,
		Score:           summary.Scorecard.Score,
		Grade:           summary.Scorecard.Grade,
		MeetsMinimum:    summary.MeetsMinimum,
		TotalCost:       FormatRupiah(summary.Aggregation.TotalCost),
		CostPerGram:     FormatRupiah(summary.CostPerGram) + "/g",
		Timing:          summary.Aggregation.Timing,
		Recommendations: summary.Scorecard.Recommendations,
	}

	for _, n := range nutrition.CoreNutrients {
		rng, _ := summary.Compliance.Reference.Range(n)
		data.Rows = append(data.Rows, ComplianceReportRow{
			Nutrient:   n,
			Label:      NutrientLabel(n),
			Value:      nutrition.FormatValue(summary.Compliance.Nutrition.Value(n), n),
			Range:      formatRange(rng, n),
			Percentage: summary.Compliance.Percentages[n],
			Status:     summary.Compliance.Details[n],
		})
	}
	return data
}

// ReportItems projects selected items for display.
func ReportItems(items []nutrition.SelectableItem) []ComplianceReportItem {
	out := make([]ComplianceReportItem, 0, len(items))
	for _, item := range items {
		cost := "-"
		if item.CostPerPortion != nil {
			cost = FormatRupiah(*item.CostPerPortion)
		}
		out = append(out, ComplianceReportItem{
			Ref:      item.ID,
			Name:     item.Name,
			Kind:     item.Kind,
			Calories: nutrition.FormatValue(item.Nutrition.Calories, nutrition.Calories),
			Cost:     cost,
		})
	}
	return out
}

// formatRange prints the unit once: "30 - 50g".
func formatRange(rng nutrition.Range, n nutrition.Nutrient) string {
	low := strings.TrimRightFunc(nutrition.FormatValue(rng.Min, n), func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsSpace(r)
	})
	return low + " - " + nutrition.FormatValue(rng.Max, n)
}

var rupiahPrinter = message.NewPrinter(language.Indonesian)

// FormatRupiah renders an amount in whole rupiah with Indonesian grouping.
func FormatRupiah(value float64) string {
	return rupiahPrinter.Sprintf("Rp %d", int64(math.Round(value)))
}

// FormatMinutes renders a duration in minutes.
func FormatMinutes(minutes int) string {
	return fmt.Sprintf("%d menit", minutes)
}

// FormatReportDate renders the supplied time using a report-friendly layout.
func FormatReportDate(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.Format("02 Jan 2006")
}

func minimumCaption(meets bool) string {
	if meets {
		return "Memenuhi batas minimum"
	}
	return "Di bawah batas minimum"
}
