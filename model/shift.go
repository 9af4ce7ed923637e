package model

import "time"

// Shift assigns one barista to one cafe for one day. Salary stays nil until
// the cafe's income for that day is recorded.
type Shift struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Date      time.Time `json:"date" gorm:"type:date;not null;uniqueIndex:idx_shift_date_cafe;uniqueIndex:idx_shift_date_barista"`
	CafeID    uint      `json:"cafe_id" gorm:"not null;uniqueIndex:idx_shift_date_cafe"`
	BaristaID uint      `json:"barista_id" gorm:"not null;uniqueIndex:idx_shift_date_barista"`
	Salary    *int      `json:"salary"`
	Cafe      *Cafe     `json:"cafe,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	Barista   *Barista  `json:"barista,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Income is a cafe's revenue for one day.
type Income struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Date      time.Time `json:"date" gorm:"type:date;not null;uniqueIndex:idx_income_date_cafe"`
	CafeID    uint      `json:"cafe_id" gorm:"not null;uniqueIndex:idx_income_date_cafe"`
	Amount    int       `json:"income" gorm:"column:income;not null"`
	Cafe      *Cafe     `json:"cafe,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
