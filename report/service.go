package report

import (
	"context"
	"errors"
	"fmt"

	"baristasalary/model"
	"baristasalary/service"

	"gorm.io/gorm"
)

type CafeIncomeReport struct {
	Cafe        model.Cafe  `json:"cafe"`
	StartDate   string      `json:"start_date"`
	EndDate     string      `json:"end_date"`
	IncomeArray []IncomeRow `json:"income_array"`
	TotalIncome int         `json:"total_income"`
}

type SalaryRow struct {
	ShiftID  uint   `json:"shift_id"`
	Date     string `json:"date"`
	CafeID   uint   `json:"cafe_id"`
	CafeName string `json:"cafe_name"`
	Salary   *int   `json:"salary"`
}

type BaristaSalaryReport struct {
	Barista   model.Barista `json:"barista"`
	StartDate string        `json:"start_date"`
	EndDate   string        `json:"end_date"`
	Shifts    []SalaryRow   `json:"shifts"`
	Salary    int           `json:"salary"`
}

// Service runs the read-only queries behind the list and detail pages.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) CafeIncome(ctx context.Context, cafeID uint, r DateRange) (*CafeIncomeReport, error) {
	db := s.db.WithContext(ctx)

	var cafe model.Cafe
	if err := db.First(&cafe, cafeID).Error; err != nil {
		return nil, lookupErr("load cafe", err)
	}

	var incomes []model.Income
	err := db.Where("cafe_id = ? AND date >= ? AND date <= ?", cafeID, r.Start, r.End).
		Order("date").
		Find(&incomes).Error
	if err != nil {
		return nil, fmt.Errorf("load incomes: %w", err)
	}

	rows, total := IncomeRows(incomes, r)
	return &CafeIncomeReport{
		Cafe:        cafe,
		StartDate:   r.StartDate(),
		EndDate:     r.EndDate(),
		IncomeArray: rows,
		TotalIncome: total,
	}, nil
}

// BaristaSalary sums the salaries of the barista's shifts in r. Shifts
// without a recorded income count as zero.
func (s *Service) BaristaSalary(ctx context.Context, baristaID uint, r DateRange) (*BaristaSalaryReport, error) {
	db := s.db.WithContext(ctx)

	var barista model.Barista
	if err := db.First(&barista, baristaID).Error; err != nil {
		return nil, lookupErr("load barista", err)
	}

	var shifts []model.Shift
	err := db.Preload("Cafe").
		Where("barista_id = ? AND date >= ? AND date <= ?", baristaID, r.Start, r.End).
		Order("date").
		Find(&shifts).Error
	if err != nil {
		return nil, fmt.Errorf("load shifts: %w", err)
	}

	rep := &BaristaSalaryReport{
		Barista:   barista,
		StartDate: r.StartDate(),
		EndDate:   r.EndDate(),
		Shifts:    make([]SalaryRow, 0, len(shifts)),
	}
	for _, sh := range shifts {
		row := SalaryRow{
			ShiftID: sh.ID,
			Date:    sh.Date.Format(model.DateLayout),
			CafeID:  sh.CafeID,
			Salary:  sh.Salary,
		}
		if sh.Cafe != nil {
			row.CafeName = sh.Cafe.Name
		}
		if sh.Salary != nil {
			rep.Salary += *sh.Salary
		}
		rep.Shifts = append(rep.Shifts, row)
	}
	return rep, nil
}

func (s *Service) ShiftSchedule(ctx context.Context, r DateRange) (*Schedule, error) {
	db := s.db.WithContext(ctx)

	var cafes []model.Cafe
	if err := db.Order("id").Find(&cafes).Error; err != nil {
		return nil, fmt.Errorf("load cafes: %w", err)
	}

	var shifts []model.Shift
	err := db.Preload("Barista").
		Where("date >= ? AND date <= ?", r.Start, r.End).
		Find(&shifts).Error
	if err != nil {
		return nil, fmt.Errorf("load shifts: %w", err)
	}

	return BuildSchedule(cafes, shifts, r), nil
}

func (s *Service) RateTable(ctx context.Context) (*RateTable, error) {
	db := s.db.WithContext(ctx)

	var cafes []model.Cafe
	if err := db.Order("id").Find(&cafes).Error; err != nil {
		return nil, fmt.Errorf("load cafes: %w", err)
	}
	var baristas []model.Barista
	if err := db.Order("id").Find(&baristas).Error; err != nil {
		return nil, fmt.Errorf("load baristas: %w", err)
	}
	var rates []model.Rate
	if err := db.Find(&rates).Error; err != nil {
		return nil, fmt.Errorf("load rates: %w", err)
	}

	return BuildRateTable(baristas, cafes, rates), nil
}

func lookupErr(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", op, service.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}
