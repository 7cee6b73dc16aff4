package model

import "time"

// PriceType classifies prices for display purposes (retail, wholesale, ...).
// It never participates in derivation.
type PriceType struct {
	ID        string    `gorm:"type:varchar(50);primaryKey" json:"id"` // slug
	Label     string    `gorm:"type:varchar(100);not null" json:"label"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
