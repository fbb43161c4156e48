package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

const (
	MenuStatusDraft    = "DRAFT"
	MenuStatusApproved = "APPROVED"
	MenuStatusActive   = "ACTIVE"
	MenuStatusInactive = "INACTIVE"
)

const (
	MealTypeBreakfast = "BREAKFAST"
	MealTypeLunch     = "LUNCH"
	MealTypeDinner    = "DINNER"
	MealTypeSnack     = "SNACK"
)

// Menu is a planned meal with its per-portion nutrition already computed.
type Menu struct {
	gorm.Model
	SppgID      uint       `gorm:"not null;index" json:"sppg_id"`
	Sppg        *Sppg      `gorm:"foreignKey:SppgID" json:"sppg,omitempty"`
	Name        string     `gorm:"not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	TargetLevel string     `gorm:"type:varchar(8);not null;index" json:"target_level"`
	MealType    string     `gorm:"type:varchar(16);not null;default:LUNCH" json:"meal_type"`
	Status      string     `gorm:"type:varchar(16);not null;default:DRAFT" json:"status"`
	IsActive    bool       `gorm:"not null;default:true" json:"is_active"`
	ServingDate *time.Time `json:"serving_date,omitempty"`

	// Nutrition per portion.
	Calories float64 `gorm:"not null;default:0" json:"calories"`
	Protein  float64 `gorm:"not null;default:0" json:"protein"`
	Carbs    float64 `gorm:"not null;default:0" json:"carbs"`
	Fat      float64 `gorm:"not null;default:0" json:"fat"`
	Fiber    float64 `gorm:"not null;default:0" json:"fiber"`
	Sodium   float64 `json:"sodium"`
	Calcium  float64 `json:"calcium"`
	Iron     float64 `json:"iron"`
	VitaminA float64 `json:"vitamin_a"`
	VitaminC float64 `json:"vitamin_c"`

	CostPerPortion *float64 `json:"cost_per_portion,omitempty"`
	ServingSize    float64  `json:"serving_size"`
	PrepTime       *int     `json:"prep_time,omitempty"`
	CookTime       *int     `json:"cook_time,omitempty"`

	Recipes []Recipe `gorm:"foreignKey:MenuID" json:"recipes,omitempty"`
}

var menuStatuses = map[string]struct{}{
	MenuStatusDraft:    {},
	MenuStatusApproved: {},
	MenuStatusActive:   {},
	MenuStatusInactive: {},
}

// ValidMenuStatus reports whether value is a known lifecycle status.
func ValidMenuStatus(value string) bool {
	_, ok := menuStatuses[value]
	return ok
}

// NormalizeMenuStatus upper-cases value and falls back to DRAFT when unknown.
func NormalizeMenuStatus(value string) string {
	candidate := strings.ToUpper(strings.TrimSpace(value))
	if ValidMenuStatus(candidate) {
		return candidate
	}
	return MenuStatusDraft
}

// SelectableStatuses lists the statuses a planner may pick menus from.
func SelectableStatuses() []string {
	return []string{MenuStatusApproved, MenuStatusActive}
}

// Selectable reports whether the menu can be added to a selection.
func (m Menu) Selectable() bool {
	if !m.IsActive {
		return false
	}
	return m.Status == MenuStatusApproved || m.Status == MenuStatusActive
}
