package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	applog "sppgmenu/internal/log"
	"sppgmenu/internal/nutrition"
	"sppgmenu/internal/views/pages"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("evaluate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	levelFlag := fs.String("level", string(nutrition.LevelSD), "target level (TK, SD, SMP, SMA)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "usage: evaluate [-level SD] items.json")
		return 2
	}

	level, err := nutrition.ParseTargetLevel(*levelFlag)
	if err != nil {
		fmt.Fprintf(stderr, "evaluate: %v\n", err)
		return 1
	}

	items, err := readItems(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(stderr, "evaluate: %v\n", err)
		return 1
	}

	summary, err := nutrition.Summarize(items, level)
	if err != nil {
		fmt.Fprintf(stderr, "evaluate: %v\n", err)
		return 1
	}
	applog.Debug(context.Background(), "selection evaluated", "items", len(items), "target_level", string(level))

	printSummary(stdout, summary)
	return 0
}

// readItems accepts either a bare JSON array of items or an object with an
// "items" field, and rejects implausible values.
func readItems(path string) ([]nutrition.SelectableItem, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read items: %w", err)
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, errors.New("items file is empty")
	}

	var items []nutrition.SelectableItem
	if raw[0] == '[' {
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("decode items: %w", err)
		}
		return items, nutrition.ValidateItems(items)
	}

	var wrapper struct {
		Items []nutrition.SelectableItem `json:"items"`
	}
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	return wrapper.Items, nutrition.ValidateItems(wrapper.Items)
}

func printSummary(w io.Writer, s nutrition.Summary) {
	fmt.Fprintf(w, "Target level: %s (%s)\n", s.Level.Name(), s.Level)
	fmt.Fprintf(w, "Items: %d\n", s.Aggregation.ItemCount)
	fmt.Fprintf(w, "Cost per portion: %s\n", pages.FormatRupiah(s.Aggregation.TotalCost))
	fmt.Fprintf(w, "Time: %s (prep %s, cook %s)\n\n",
		pages.FormatMinutes(s.Aggregation.Timing.TotalTime),
		pages.FormatMinutes(s.Aggregation.Timing.PrepTime),
		pages.FormatMinutes(s.Aggregation.Timing.CookTime))

	for _, n := range nutrition.CoreNutrients {
		rng, _ := s.Compliance.Reference.Range(n)
		fmt.Fprintf(w, "%-12s %10s  %3d%%  %-9s (AKG %s - %s)\n",
			pages.NutrientLabel(n),
			nutrition.FormatValue(s.Aggregation.Totals.Value(n), n),
			s.Compliance.Percentages[n],
			s.Compliance.Details[n],
			nutrition.FormatValue(rng.Min, n),
			nutrition.FormatValue(rng.Max, n))
	}

	fmt.Fprintf(w, "\nOverall: %s\n", s.Compliance.Overall)
	fmt.Fprintf(w, "Score: %d (grade %s, %s)\n", s.Scorecard.Score, s.Scorecard.Grade.Grade, s.Scorecard.Grade.Description)

	if len(s.Scorecard.Recommendations) > 0 {
		fmt.Fprintln(w, "\nRecommendations:")
		for _, rec := range s.Scorecard.Recommendations {
			fmt.Fprintf(w, "- %s\n", rec)
		}
	}
}
