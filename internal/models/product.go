package models

import (
	"time"

	"gorm.io/gorm"
)

// Category classifies a product on the menu.
type Category string

const (
	CategoryBreakfast Category = "Breakfast"
	CategoryLunch     Category = "Lunch"
	CategoryDinner    Category = "Dinner"
	CategorySnacks    Category = "Snacks"
	CategoryBeverages Category = "Beverages"
	CategoryDesserts  Category = "Desserts"
)

// Valid reports whether the category is one of the recognized menu categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryBreakfast, CategoryLunch, CategoryDinner,
		CategorySnacks, CategoryBeverages, CategoryDesserts:
		return true
	}
	return false
}

// Product represents a menu item in the catalog.
//
// The price stored here is the live catalog price. Orders snapshot the price
// at checkout time, so editing a product never changes existing orders.
type Product struct {
	ID          string   `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string   `json:"name" validate:"required,min=2,max=100"`
	Description string   `json:"description" validate:"omitempty,max=500"`
	Price       float64  `json:"price" validate:"gte=0"`
	ImageURL    string   `json:"image_url" validate:"omitempty,url"`
	Category    Category `json:"category" gorm:"type:varchar(20)" validate:"required"`
	Available   bool     `json:"available"`
	CreatedBy   string   `json:"created_by" gorm:"type:varchar(36)"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
