package models

import "gorm.io/gorm"

// Sppg is a meal-service kitchen (Satuan Pelayanan Pemenuhan Gizi). Every
// menu belongs to exactly one SPPG and is only visible to it.
type Sppg struct {
	gorm.Model
	Code     string `gorm:"uniqueIndex;not null" json:"code"`
	Name     string `gorm:"not null" json:"name"`
	Address  string `json:"address"`
	Capacity int    `json:"capacity"`
	IsActive bool   `gorm:"not null;default:true" json:"is_active"`
	Menus    []Menu `gorm:"foreignKey:SppgID" json:"menus,omitempty"`
}
