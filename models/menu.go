package models

import (
	"time"

	"gorm.io/gorm"
)

type Category struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string `gorm:"unique;not null" json:"name"`
	Image     string `json:"image"`
	SortOrder int    `json:"sort_order"`
	Items     []MenuItem `gorm:"foreignKey:CategoryID" json:"items,omitempty"`
}

type MenuItem struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string  `gorm:"not null" json:"name"`
	Description string  `json:"description"`
	CategoryID  uint    `gorm:"index" json:"category_id"`
	Price       float64 `gorm:"not null" json:"price"` // base price, used when no size is chosen
	Image       string  `json:"image"`
	Sizes       []MenuItemSize `gorm:"foreignKey:MenuItemID;constraint:OnDelete:CASCADE" json:"sizes,omitempty"`
	Stock       *int           `json:"stock"` // nil = unlimited
	Enabled     bool           `gorm:"default:true" json:"enabled"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// MenuItemSize is a named size variant with its own price (e.g. "large").
type MenuItemSize struct {
	ID         uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	MenuItemID uint    `gorm:"index" json:"menu_item_id"`
	Name       string  `gorm:"not null" json:"name"`
	Price      float64 `gorm:"not null" json:"price"`
	SortOrder  int     `json:"sort_order"`
}

// SizePrice returns the price for the given size name, falling back to the
// item's base price when the size is empty or unknown.
func (m *MenuItem) SizePrice(size string) float64 {
	if size == "" {
		return m.Price
	}
	for _, s := range m.Sizes {
		if s.Name == size {
			return s.Price
		}
	}
	return m.Price
}
