package model

import "time"

// Rate holds the pay formula parameters of one barista at one cafe.
//
// MinWage is paid whenever the cafe's daily income is below it. Above that,
// the barista gets Percent of the income plus Additive.
type Rate struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	BaristaID uint      `json:"barista_id" gorm:"not null;uniqueIndex:idx_rate_barista_cafe,priority:1"`
	CafeID    uint      `json:"cafe_id" gorm:"not null;uniqueIndex:idx_rate_barista_cafe,priority:2"`
	MinWage   int       `json:"min_wage" gorm:"not null"`
	Percent   int       `json:"percent" gorm:"not null"`
	Additive  int       `json:"additive" gorm:"not null"`
	Barista   *Barista  `json:"barista,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	Cafe      *Cafe     `json:"cafe,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
