package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"sppgmenu/internal/db/mock"
	"sppgmenu/models"
)

const sampleCSV = `Nama Bahan,Kategori,Satuan,Energi (kkal),Protein (g),Karbohidrat (g),Lemak (g),Serat (g),Natrium (mg)
Ikan Lele [1],Protein,kg,"105,0","18,7",0,"2,8",-,40
tahu,,,80,"10,9","0,8","4,7","0,1",2
,Sayuran,kg,10,1,1,0,1,1
`

func writeCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tkpi.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o600); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func TestImportIngredientsUpsertsByName(t *testing.T) {
	ctx := context.Background()
	database, err := mock.New(ctx)
	if err != nil {
		t.Fatalf("mock.New returned error: %v", err)
	}

	records, err := readCSV(writeCSV(t))
	if err != nil {
		t.Fatalf("readCSV error = %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	result, err := importIngredients(ctx, database, records)
	if err != nil {
		t.Fatalf("importIngredients error = %v", err)
	}
	if result != (importResult{Created: 1, Updated: 1, Skipped: 1}) {
		t.Fatalf("result = %+v", result)
	}

	var lele models.Ingredient
	if err := database.Where("name = ?", "Ikan Lele").First(&lele).Error; err != nil {
		t.Fatalf("find imported ingredient: %v", err)
	}
	if lele.CaloriesPer100g != 105 || lele.ProteinPer100g != 18.7 || lele.FiberPer100g != 0 || lele.Unit != "kg" {
		t.Fatalf("unexpected ingredient: %+v", lele)
	}

	var tahu models.Ingredient
	if err := database.Where("name = ?", "Tahu").First(&tahu).Error; err != nil {
		t.Fatalf("find updated ingredient: %v", err)
	}
	if tahu.CaloriesPer100g != 80 || tahu.ProteinPer100g != 10.9 {
		t.Fatalf("nutrition not updated: %+v", tahu)
	}
	if tahu.Category != "Protein" || tahu.Unit != "papan" {
		t.Fatalf("category/unit = %q/%q", tahu.Category, tahu.Unit)
	}
}

func TestParseFirstNumber(t *testing.T) {
	tests := map[string]float64{
		"12,5":    12.5,
		"7.25 mg": 7.25,
		"-":       0,
		"N/A":     0,
		"":        0,
		"kira 3":  3,
	}
	for in, want := range tests {
		if got := parseFirstNumber(in); got != want {
			t.Fatalf("parseFirstNumber(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestRunRejectsMissingFile(t *testing.T) {
	if err := run(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty path")
	}
	if err := run(context.Background(), filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
