package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"sppgmenu/internal/config"
	"sppgmenu/internal/db"
	applog "sppgmenu/internal/log"
	"sppgmenu/models"
)

// Column headers follow the Indonesian food composition table (TKPI) export.
const (
	colName     = "Nama Bahan"
	colCategory = "Kategori"
	colUnit     = "Satuan"
	colCalories = "Energi (kkal)"
	colProtein  = "Protein (g)"
	colCarbs    = "Karbohidrat (g)"
	colFat      = "Lemak (g)"
	colFiber    = "Serat (g)"
	colSodium   = "Natrium (mg)"
)

const defaultUnit = "gram"

var (
	bracketPattern  = regexp.MustCompile(`\[[^\]]*\]`)
	numberPattern   = regexp.MustCompile(`[-+]?\d*\.?\d+`)
	cleanWhitespace = regexp.MustCompile(`\s+`)
)

func main() {
	csvPath := "tkpi.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}

	if err := run(context.Background(), csvPath); err != nil {
		fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, csvPath string) error {
	if strings.TrimSpace(csvPath) == "" {
		return fmt.Errorf("csv path must not be empty")
	}

	if _, err := os.Stat(csvPath); err != nil {
		return fmt.Errorf("locate csv: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	database, err := db.Initialize(cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	if err := db.AutoMigrate(database); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	records, err := readCSV(csvPath)
	if err != nil {
		return fmt.Errorf("read csv: %w", err)
	}

	result, err := importIngredients(ctx, database, records)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Imported %d ingredients (%d new, %d updated, %d skipped) from %s\n",
		result.Created+result.Updated, result.Created, result.Updated, result.Skipped, filepath.Base(csvPath))
	return nil
}

type importResult struct {
	Created int
	Updated int
	Skipped int
}

// importIngredients upserts each record by case-insensitive name. Rows
// without a name are skipped; blank category or unit keep the stored value.
func importIngredients(ctx context.Context, database *gorm.DB, records []map[string]string) (importResult, error) {
	var result importResult
	for idx, record := range records {
		ingredient := buildIngredient(record)
		if ingredient.Name == "" {
			applog.Debug(ctx, "skipping ingredient row without a name", "row", idx+1)
			result.Skipped++
			continue
		}

		created := false
		if err := database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var existing models.Ingredient
			err := tx.Where("LOWER(name) = ?", strings.ToLower(ingredient.Name)).First(&existing).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				created = true
				if ingredient.Unit == "" {
					ingredient.Unit = defaultUnit
				}
				if err := tx.Create(&ingredient).Error; err != nil {
					return fmt.Errorf("create ingredient %q: %w", ingredient.Name, err)
				}
				return nil
			case err != nil:
				return fmt.Errorf("find ingredient %q: %w", ingredient.Name, err)
			}

			fields := []string{"CaloriesPer100g", "ProteinPer100g", "CarbsPer100g", "FatPer100g", "FiberPer100g", "SodiumPer100g"}
			if ingredient.Category != "" {
				fields = append(fields, "Category")
			}
			if ingredient.Unit != "" {
				fields = append(fields, "Unit")
			}

			if err := tx.Model(&existing).Select(fields).Updates(ingredient).Error; err != nil {
				return fmt.Errorf("update ingredient %q: %w", existing.Name, err)
			}
			return nil
		}); err != nil {
			return result, fmt.Errorf("record %d (%s): %w", idx+1, ingredient.Name, err)
		}

		if created {
			result.Created++
		} else {
			result.Updated++
		}
	}
	return result, nil
}

func readCSV(path string) ([]map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, errors.New("csv is empty")
	}

	header := rows[0]
	records := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}

		record := make(map[string]string, len(header))
		for idx, key := range header {
			if idx >= len(row) {
				continue
			}
			record[strings.TrimSpace(key)] = strings.TrimSpace(row[idx])
		}
		records = append(records, record)
	}

	return records, nil
}

func buildIngredient(row map[string]string) models.Ingredient {
	return models.Ingredient{
		Name:            normalizeText(stripFootnotes(row[colName])),
		Category:        normalizeValue(row[colCategory]),
		Unit:            strings.ToLower(normalizeValue(row[colUnit])),
		CaloriesPer100g: parseFirstNumber(row[colCalories]),
		ProteinPer100g:  parseFirstNumber(row[colProtein]),
		CarbsPer100g:    parseFirstNumber(row[colCarbs]),
		FatPer100g:      parseFirstNumber(row[colFat]),
		FiberPer100g:    parseFirstNumber(row[colFiber]),
		SodiumPer100g:   parseFirstNumber(row[colSodium]),
	}
}

func normalizeValue(value string) string {
	value = strings.TrimSpace(value)
	if value == "" || value == "-" || strings.EqualFold(value, "N/A") {
		return ""
	}
	return value
}

func normalizeText(value string) string {
	value = normalizeValue(value)
	if value == "" {
		return value
	}
	value = cleanWhitespace.ReplaceAllString(value, " ")
	return strings.TrimSpace(value)
}

// parseFirstNumber reads the first number in value. TKPI exports use a
// decimal comma, so "12,5" parses as 12.5.
func parseFirstNumber(value string) float64 {
	value = normalizeValue(value)
	if value == "" {
		return 0
	}

	match := numberPattern.FindString(strings.ReplaceAll(value, ",", "."))
	if match == "" {
		return 0
	}

	parsed, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return parsed
}

func stripFootnotes(value string) string {
	return strings.TrimSpace(bracketPattern.ReplaceAllString(value, ""))
}
