package service

import (
	"errors"
	"time"

	"baristasalary/model"

	"gorm.io/gorm"
)

// The helpers below run on whatever handle they are given, usually an open
// transaction.

func loadCafe(tx *gorm.DB, id uint) (*model.Cafe, error) {
	var cafe model.Cafe
	if err := tx.First(&cafe, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invalid(ErrInvalid, "Cafe %d does not exist.", id)
		}
		return nil, storageErr("load cafe", err)
	}
	return &cafe, nil
}

func loadBarista(tx *gorm.DB, id uint) (*model.Barista, error) {
	var barista model.Barista
	if err := tx.First(&barista, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invalid(ErrInvalid, "Barista %d does not exist.", id)
		}
		return nil, storageErr("load barista", err)
	}
	return &barista, nil
}

// findRate returns the barista's rate at the cafe or an ErrNoRate rejection.
func findRate(tx *gorm.DB, cafe *model.Cafe, barista *model.Barista) (*model.Rate, error) {
	var rate model.Rate
	err := tx.Where("cafe_id = ? AND barista_id = ?", cafe.ID, barista.ID).First(&rate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invalid(ErrNoRate, "Barista %s has no rate for '%s' cafe!", barista.FullName, cafe.Name)
		}
		return nil, storageErr("load rate", err)
	}
	return &rate, nil
}

// findIncome returns the cafe's income for the day, or nil when none is recorded.
func findIncome(tx *gorm.DB, date time.Time, cafeID uint) (*model.Income, error) {
	var incomes []model.Income
	err := tx.Where("date = ? AND cafe_id = ?", model.Day(date), cafeID).Limit(1).Find(&incomes).Error
	if err != nil {
		return nil, storageErr("load income", err)
	}
	if len(incomes) == 0 {
		return nil, nil
	}
	return &incomes[0], nil
}

func exists(tx *gorm.DB, value interface{}, query string, args ...interface{}) (bool, error) {
	var count int64
	if err := tx.Model(value).Where(query, args...).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
