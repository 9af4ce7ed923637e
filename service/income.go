package service

import (
	"context"
	"errors"
	"time"

	"baristasalary/logger"
	"baristasalary/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type IncomeInput struct {
	Date   time.Time
	CafeID uint
	Amount int
}

// IncomeResult is a written income together with the shift whose salary it
// recomputed.
type IncomeResult struct {
	Income model.Income `json:"income"`
	Shift  model.Shift  `json:"shift"`
}

type IncomeService struct {
	db *gorm.DB
}

func NewIncomeService(db *gorm.DB) *IncomeService {
	return &IncomeService{db: db}
}

// Create records a cafe's income for one day and stores the salary of the
// barista on shift. Both writes happen in one transaction.
func (s *IncomeService) Create(ctx context.Context, in IncomeInput) (*IncomeResult, error) {
	var result IncomeResult

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if in.Date.IsZero() {
			return invalid(ErrInvalid, "Income date is required.")
		}
		income := model.Income{
			Date:   model.Day(in.Date),
			CafeID: in.CafeID,
			Amount: in.Amount,
		}

		cafe, err := loadCafe(tx, income.CafeID)
		if err != nil {
			return err
		}

		dup, err := exists(tx, &model.Income{}, "date = ? AND cafe_id = ?", income.Date, income.CafeID)
		if err != nil {
			return storageErr("check income", err)
		}
		if dup {
			return invalid(ErrDuplicate, "Income for '%s' cafe on %s already exists.",
				cafe.Name, income.Date.Format(model.DateLayout))
		}

		shift, rate, err := validateIncome(tx, &income, cafe)
		if err != nil {
			return err
		}

		if err := tx.Omit("Cafe").Create(&income).Error; err != nil {
			return storageErr("create income", err)
		}
		if err := storeSalary(tx, shift, SalaryFor(*rate, income.Amount)); err != nil {
			return err
		}

		result = IncomeResult{Income: income, Shift: *shift}
		return nil
	})
	if err != nil {
		return nil, passThrough("create income", err)
	}

	logIncome(ctx, "income created", &result)
	return &result, nil
}

// Update changes the amount of an existing income. Its date and cafe are
// fixed; the shift salary is recomputed in the same transaction.
func (s *IncomeService) Update(ctx context.Context, id uint, amount int) (*IncomeResult, error) {
	var result IncomeResult

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var income model.Income
		if err := tx.First(&income, id).Error; err != nil {
			return storageErr("load income", err)
		}

		cafe, err := loadCafe(tx, income.CafeID)
		if err != nil {
			return err
		}

		shift, rate, err := validateIncome(tx, &income, cafe)
		if err != nil {
			return err
		}

		income.Amount = amount
		if err := tx.Model(&income).Update("income", amount).Error; err != nil {
			return storageErr("update income", err)
		}
		if err := storeSalary(tx, shift, SalaryFor(*rate, amount)); err != nil {
			return err
		}

		result = IncomeResult{Income: income, Shift: *shift}
		return nil
	})
	if err != nil {
		return nil, passThrough("update income", err)
	}

	logIncome(ctx, "income updated", &result)
	return &result, nil
}

// Delete removes an income and clears the salary of the shift it paid.
func (s *IncomeService) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var income model.Income
		if err := tx.First(&income, id).Error; err != nil {
			return storageErr("load income", err)
		}
		if err := tx.Delete(&income).Error; err != nil {
			return storageErr("delete income", err)
		}
		err := tx.Model(&model.Shift{}).
			Where("date = ? AND cafe_id = ?", model.Day(income.Date), income.CafeID).
			Update("salary", nil).Error
		return storageErr("clear salary", err)
	})
	if err != nil {
		return passThrough("delete income", err)
	}

	logger.FromContext(ctx).Info().Uint("income_id", id).Msg("income deleted")
	return nil
}

func (s *IncomeService) Get(ctx context.Context, id uint) (*model.Income, error) {
	var income model.Income
	if err := s.db.WithContext(ctx).Preload("Cafe").First(&income, id).Error; err != nil {
		return nil, storageErr("load income", err)
	}
	return &income, nil
}

// validateIncome checks that a barista is on shift at the cafe that day and
// has a rate there. The shift row is locked until the transaction ends.
func validateIncome(tx *gorm.DB, income *model.Income, cafe *model.Cafe) (*model.Shift, *model.Rate, error) {
	var shift model.Shift
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("date = ? AND cafe_id = ?", model.Day(income.Date), income.CafeID).
		First(&shift).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, invalid(ErrNoShift, "There is no barista on shift at the '%s' Cafe on %s!",
				cafe.Name, income.Date.Format(model.DateLayout))
		}
		return nil, nil, storageErr("load shift", err)
	}

	barista, err := loadBarista(tx, shift.BaristaID)
	if err != nil {
		return nil, nil, err
	}
	rate, err := findRate(tx, cafe, barista)
	if err != nil {
		return nil, nil, err
	}
	return &shift, rate, nil
}

func storeSalary(tx *gorm.DB, shift *model.Shift, salary int) error {
	if err := tx.Model(shift).Update("salary", salary).Error; err != nil {
		return storageErr("store salary", err)
	}
	shift.Salary = &salary
	return nil
}

func logIncome(ctx context.Context, msg string, r *IncomeResult) {
	ev := logger.FromContext(ctx).Info().
		Uint("income_id", r.Income.ID).
		Uint("cafe_id", r.Income.CafeID).
		Str("date", r.Income.Date.Format(model.DateLayout)).
		Int("income", r.Income.Amount).
		Uint("shift_id", r.Shift.ID)
	if r.Shift.Salary != nil {
		ev = ev.Int("salary", *r.Shift.Salary)
	}
	ev.Msg(msg)
}
