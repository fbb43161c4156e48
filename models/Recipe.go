package models

import (
	"gorm.io/gorm"
)

// Recipe is the batch preparation behind a menu. Its nutrition is derived
// from its ingredient lines and divided across ServingSize portions.
type Recipe struct {
	gorm.Model
	MenuID       uint               `gorm:"not null;index" json:"menu_id"`
	Menu         *Menu              `gorm:"foreignKey:MenuID" json:"menu,omitempty"`
	Name         string             `json:"name"`
	Instructions string             `gorm:"type:text" json:"instructions"`
	ServingSize  int                `gorm:"not null;default:1" json:"serving_size"`
	PrepTime     *int               `json:"prep_time,omitempty"`
	CookTime     *int               `json:"cook_time,omitempty"`
	Ingredients  []RecipeIngredient `gorm:"foreignKey:RecipeID" json:"ingredients"`
}

// DisplayName falls back to the parent menu's name for unnamed recipes.
func (r Recipe) DisplayName() string {
	if r.Name != "" {
		return r.Name
	}
	if r.Menu != nil {
		return r.Menu.Name
	}
	return ""
}
