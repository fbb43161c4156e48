package models

import (
	"gorm.io/gorm"
)

// Ingredient is a raw material with nutrition expressed per 100 g.
type Ingredient struct {
	gorm.Model
	Name            string  `gorm:"uniqueIndex;not null" json:"name"`
	Category        string  `json:"category"`
	Unit            string  `gorm:"not null" json:"unit"`
	CaloriesPer100g float64 `gorm:"not null;default:0" json:"calories_per_100g"`
	ProteinPer100g  float64 `gorm:"not null;default:0" json:"protein_per_100g"`
	CarbsPer100g    float64 `gorm:"not null;default:0" json:"carbs_per_100g"`
	FatPer100g      float64 `gorm:"not null;default:0" json:"fat_per_100g"`
	FiberPer100g    float64 `gorm:"not null;default:0" json:"fiber_per_100g"`
	SodiumPer100g   float64 `json:"sodium_per_100g"`
}

// RecipeIngredient is one line of a recipe.
type RecipeIngredient struct {
	gorm.Model
	RecipeID     uint        `gorm:"not null;index" json:"recipe_id"`
	IngredientID uint        `gorm:"not null" json:"ingredient_id"`
	Ingredient   *Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient,omitempty"`
	Quantity     float64     `gorm:"not null" json:"quantity"`
	Unit         string      `gorm:"not null" json:"unit"`
	Notes        string      `json:"notes"`
}
