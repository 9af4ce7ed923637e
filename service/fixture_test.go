package service

import (
	"context"
	"testing"
	"time"

	"baristasalary/database"
	"baristasalary/model"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var (
	date1 = time.Date(2022, time.February, 24, 0, 0, 0, 0, time.UTC)
	date2 = time.Date(2023, time.February, 24, 0, 0, 0, 0, time.UTC)
)

const (
	cafe1Name    = "SuperCafe"
	cafe2Name    = "MegaCafe"
	barista1Name = "John Smith"
	barista2Name = "Mr Martin"
)

type fixture struct {
	ctx     context.Context
	db      *gorm.DB
	catalog *CatalogService
	shifts  *ShiftService
	incomes *IncomeService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := database.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return &fixture{
		ctx:     context.Background(),
		db:      db,
		catalog: NewCatalogService(db),
		shifts:  NewShiftService(db),
		incomes: NewIncomeService(db),
	}
}

func (f *fixture) cafe(t *testing.T, name string) *model.Cafe {
	t.Helper()
	cafe, err := f.catalog.CreateCafe(f.ctx, name)
	require.NoError(t, err)
	return cafe
}

func (f *fixture) barista(t *testing.T, name string) *model.Barista {
	t.Helper()
	barista, err := f.catalog.CreateBarista(f.ctx, name)
	require.NoError(t, err)
	return barista
}

func (f *fixture) rate(t *testing.T, cafe *model.Cafe, barista *model.Barista, minWage, percent, additive int) *model.Rate {
	t.Helper()
	rate, err := f.catalog.CreateRate(f.ctx, RateInput{
		CafeID:    cafe.ID,
		BaristaID: barista.ID,
		MinWage:   minWage,
		Percent:   percent,
		Additive:  additive,
	})
	require.NoError(t, err)
	return rate
}

func (f *fixture) shift(t *testing.T, date time.Time, cafe *model.Cafe, barista *model.Barista) *model.Shift {
	t.Helper()
	shift, err := f.shifts.Create(f.ctx, ShiftInput{Date: date, CafeID: cafe.ID, BaristaID: barista.ID})
	require.NoError(t, err)
	return shift
}

func (f *fixture) reload(t *testing.T, shift *model.Shift) *model.Shift {
	t.Helper()
	var fresh model.Shift
	require.NoError(t, f.db.First(&fresh, shift.ID).Error)
	return &fresh
}

func (f *fixture) count(t *testing.T, value interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(value).Count(&n).Error)
	return n
}
