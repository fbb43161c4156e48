package mock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"sppgmenu/internal/db"
	applog "sppgmenu/internal/log"
	"sppgmenu/models"
)

const (
	// PrimarySppgCode owns the bulk of the seeded catalog.
	PrimarySppgCode = "SPPG-PWK-001"
	// SecondarySppgCode owns a single menu and exists to exercise tenant isolation.
	SecondarySppgCode = "SPPG-SBG-001"
)

// New returns an isolated in-memory sqlite database seeded with a small
// Indonesian school-meal catalog. Each call gets its own database.
func New(ctx context.Context) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database")

	dsn := fmt.Sprintf("file:sppgmenu-mock-%s?mode=memory&cache=shared", uuid.NewString())
	database, err := gorm.Open(sqlite.Open(dsn), db.GormConfig(logger.Silent))
	if err != nil {
		return nil, err
	}

	// A single connection keeps the shared in-memory database alive and
	// avoids sqlite table locks between pooled connections.
	sqlDB, err := database.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(database); err != nil {
		return nil, err
	}

	if err := seed(ctx, database); err != nil {
		return nil, err
	}

	applog.Debug(ctx, "mock database ready")
	return database, nil
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func seed(ctx context.Context, database *gorm.DB) error {
	applog.Debug(ctx, "seeding mock database")
	tx := database.WithContext(ctx)

	purwakarta := models.Sppg{
		Code:     PrimarySppgCode,
		Name:     "SPPG Purwakarta Utama",
		Address:  "Jl. Raya Purwakarta-Subang KM 5, Purwakarta, Jawa Barat",
		Capacity: 500,
		IsActive: true,
	}
	subang := models.Sppg{
		Code:     SecondarySppgCode,
		Name:     "SPPG Subang Kota",
		Address:  "Jl. Otista No. 12, Subang, Jawa Barat",
		Capacity: 300,
		IsActive: true,
	}
	for _, sppg := range []*models.Sppg{&purwakarta, &subang} {
		if err := tx.Create(sppg).Error; err != nil {
			return err
		}
	}

	servingDate := time.Date(2025, time.January, 20, 0, 0, 0, 0, time.UTC)
	menus := []*models.Menu{
		{
			SppgID: purwakarta.ID, Name: "Paket Sehat TK - Ayam & Sayur",
			Description: "Menu bergizi untuk anak TK dengan ayam, nasi, dan sayuran segar",
			TargetLevel: "TK", MealType: models.MealTypeLunch, Status: models.MenuStatusActive, IsActive: true,
			Calories: 380, Protein: 18, Carbs: 45, Fat: 12, Fiber: 8, Sodium: 420, Calcium: 180, Iron: 4.2,
			CostPerPortion: floatPtr(6500), ServingSize: 200, PrepTime: intPtr(30), CookTime: intPtr(25),
		},
		{
			SppgID: purwakarta.ID, Name: "Paket Sehat TK - Ikan & Tempe",
			Description: "Menu protein tinggi dengan ikan lele, tempe, dan sayuran hijau",
			TargetLevel: "TK", MealType: models.MealTypeLunch, Status: models.MenuStatusActive, IsActive: true,
			Calories: 395, Protein: 20, Carbs: 42, Fat: 14, Fiber: 9, Sodium: 380, Calcium: 200, Iron: 5.1,
			CostPerPortion: floatPtr(7000), ServingSize: 210, PrepTime: intPtr(35), CookTime: intPtr(30),
		},
		{
			SppgID: purwakarta.ID, Name: "Paket Bergizi SD - Ayam Fillet & Sayur Campur",
			Description: "Menu lengkap untuk anak SD dengan ayam fillet, nasi, dan aneka sayuran",
			TargetLevel: "SD", MealType: models.MealTypeLunch, Status: models.MenuStatusActive, IsActive: true,
			Calories: 450, Protein: 22, Carbs: 52, Fat: 15, Fiber: 10, Sodium: 480, Calcium: 220, Iron: 6.2,
			CostPerPortion: floatPtr(8000), ServingSize: 250, PrepTime: intPtr(40), CookTime: intPtr(35),
		},
		{
			SppgID: purwakarta.ID, Name: "Paket Bergizi SD - Telur & Tahu",
			Description: "Menu ekonomis dengan telur dadar, tahu goreng, dan tumis kangkung",
			TargetLevel: "SD", MealType: models.MealTypeLunch, Status: models.MenuStatusApproved, IsActive: true,
			Calories: 420, Protein: 19, Carbs: 48, Fat: 16, Fiber: 8, Sodium: 450, Calcium: 180, Iron: 5.8,
			CostPerPortion: floatPtr(6500), ServingSize: 240, PrepTime: intPtr(30), CookTime: intPtr(25),
		},
		{
			SppgID: purwakarta.ID, Name: "Paket Energi SMP - Ayam & Ubi Jalar",
			Description: "Menu tinggi energi dengan ayam panggang dan ubi jalar",
			TargetLevel: "SMP", MealType: models.MealTypeLunch, Status: models.MenuStatusActive, IsActive: true,
			Calories: 520, Protein: 26, Carbs: 58, Fat: 18, Fiber: 12, Sodium: 520, Calcium: 250, Iron: 7.5,
			CostPerPortion: floatPtr(9500), ServingSize: 300, PrepTime: intPtr(45), CookTime: intPtr(40),
		},
		{
			SppgID: purwakarta.ID, Name: "Paket Energi SMP - Ikan & Mie",
			Description: "Menu ikan lele goreng dengan mie telur dan sayuran",
			TargetLevel: "SMP", MealType: models.MealTypeLunch, Status: models.MenuStatusDraft, IsActive: true,
			Calories: 480, Protein: 24, Carbs: 54, Fat: 17, Fiber: 9, Sodium: 490, Calcium: 200, Iron: 6.8,
			CostPerPortion: floatPtr(8500), ServingSize: 280, PrepTime: intPtr(35), CookTime: intPtr(30),
		},
		{
			SppgID: subang.ID, Name: "Paket Subang SD - Nasi Pindang",
			Description: "Menu khas Subang dengan ikan pindang dan lalapan",
			TargetLevel: "SD", MealType: models.MealTypeLunch, Status: models.MenuStatusActive, IsActive: true,
			Calories: 440, Protein: 21, Carbs: 55, Fat: 13, Fiber: 7, Sodium: 510,
			CostPerPortion: floatPtr(7500), ServingSize: 250,
		},
	}
	for _, menu := range menus {
		menu.ServingDate = &servingDate
		if err := tx.Create(menu).Error; err != nil {
			return err
		}
	}

	ingredients := map[string]*models.Ingredient{
		"Ayam Fillet":   {Name: "Ayam Fillet", Category: "Protein", Unit: "kg", CaloriesPer100g: 165, ProteinPer100g: 31, FatPer100g: 3.6, SodiumPer100g: 74},
		"Telur Ayam":    {Name: "Telur Ayam", Category: "Protein", Unit: "butir", CaloriesPer100g: 155, ProteinPer100g: 13, CarbsPer100g: 1.1, FatPer100g: 11, SodiumPer100g: 124},
		"Tahu":          {Name: "Tahu", Category: "Protein", Unit: "papan", CaloriesPer100g: 76, ProteinPer100g: 8, CarbsPer100g: 1.9, FatPer100g: 4.8, FiberPer100g: 0.4, SodiumPer100g: 7},
		"Beras Premium": {Name: "Beras Premium", Category: "Karbohidrat", Unit: "kg", CaloriesPer100g: 130, ProteinPer100g: 2.7, CarbsPer100g: 28, FatPer100g: 0.3, FiberPer100g: 0.4, SodiumPer100g: 1},
		"Bayam":         {Name: "Bayam", Category: "Sayuran", Unit: "kg", CaloriesPer100g: 23, ProteinPer100g: 2.9, CarbsPer100g: 3.6, FatPer100g: 0.4, FiberPer100g: 2.2, SodiumPer100g: 79},
		"Kangkung":      {Name: "Kangkung", Category: "Sayuran", Unit: "kg", CaloriesPer100g: 16, ProteinPer100g: 1.8, CarbsPer100g: 2.6, FatPer100g: 0.2, FiberPer100g: 1.2, SodiumPer100g: 52},
		"Wortel":        {Name: "Wortel", Category: "Sayuran", Unit: "kg", CaloriesPer100g: 41, ProteinPer100g: 0.9, CarbsPer100g: 9.6, FatPer100g: 0.2, FiberPer100g: 2.8, SodiumPer100g: 69},
		"Bawang Putih":  {Name: "Bawang Putih", Category: "Bumbu", Unit: "kg", CaloriesPer100g: 149, ProteinPer100g: 6.4, CarbsPer100g: 33, FatPer100g: 0.5, FiberPer100g: 2.1, SodiumPer100g: 17},
	}
	for _, name := range []string{"Ayam Fillet", "Telur Ayam", "Tahu", "Beras Premium", "Bayam", "Kangkung", "Wortel", "Bawang Putih"} {
		if err := tx.Create(ingredients[name]).Error; err != nil {
			return err
		}
	}

	recipes := []struct {
		recipe models.Recipe
		lines  []models.RecipeIngredient
	}{
		{
			recipe: models.Recipe{
				MenuID:       menus[0].ID,
				Instructions: "Potong ayam fillet dadu kecil, tumis bumbu, masukkan sayuran, sajikan dengan nasi putih.",
				ServingSize:  10,
				PrepTime:     intPtr(30),
				CookTime:     intPtr(25),
			},
			lines: []models.RecipeIngredient{
				{IngredientID: ingredients["Ayam Fillet"].ID, Quantity: 1.5, Unit: "kg", Notes: "Potong dadu kecil sesuai usia anak TK"},
				{IngredientID: ingredients["Beras Premium"].ID, Quantity: 2, Unit: "kg", Notes: "Untuk nasi putih"},
				{IngredientID: ingredients["Wortel"].ID, Quantity: 0.5, Unit: "kg", Notes: "Potong dadu kecil"},
				{IngredientID: ingredients["Bayam"].ID, Quantity: 0.8, Unit: "kg", Notes: "Cuci bersih, potong kasar"},
				{IngredientID: ingredients["Bawang Putih"].ID, Quantity: 0.1, Unit: "kg", Notes: "Haluskan"},
			},
		},
		{
			recipe: models.Recipe{
				MenuID:       menus[3].ID,
				Name:         "Telur Dadar & Tahu Goreng",
				Instructions: "Kocok telur lalu dadar, goreng tahu, tumis kangkung dengan bawang putih.",
				ServingSize:  15,
			},
			lines: []models.RecipeIngredient{
				{IngredientID: ingredients["Telur Ayam"].ID, Quantity: 20, Unit: "butir"},
				{IngredientID: ingredients["Tahu"].ID, Quantity: 3, Unit: "papan"},
				{IngredientID: ingredients["Beras Premium"].ID, Quantity: 2.5, Unit: "kg"},
				{IngredientID: ingredients["Kangkung"].ID, Quantity: 1, Unit: "kg"},
			},
		},
		{
			// Belongs to the draft SMP menu, so it is never selectable.
			recipe: models.Recipe{
				MenuID:       menus[5].ID,
				Name:         "Mie Goreng Sayur",
				Instructions: "Rebus mie, tumis bawang putih dan wortel, aduk rata.",
				ServingSize:  12,
			},
			lines: []models.RecipeIngredient{
				{IngredientID: ingredients["Wortel"].ID, Quantity: 0.6, Unit: "kg"},
				{IngredientID: ingredients["Bawang Putih"].ID, Quantity: 0.05, Unit: "kg"},
			},
		},
	}
	for _, entry := range recipes {
		recipe := entry.recipe
		if err := tx.Create(&recipe).Error; err != nil {
			return err
		}
		for _, line := range entry.lines {
			lineCopy := line
			lineCopy.RecipeID = recipe.ID
			if err := tx.Create(&lineCopy).Error; err != nil {
				return err
			}
		}
	}

	applog.Debug(ctx, "mock database seeded", "menus", len(menus), "recipes", len(recipes))
	return nil
}
