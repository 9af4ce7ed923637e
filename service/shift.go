package service

import (
	"context"
	"time"

	"baristasalary/logger"
	"baristasalary/model"

	"gorm.io/gorm"
)

type ShiftInput struct {
	Date      time.Time
	CafeID    uint
	BaristaID uint
}

type ShiftService struct {
	db *gorm.DB
}

func NewShiftService(db *gorm.DB) *ShiftService {
	return &ShiftService{db: db}
}

// Create schedules a barista at a cafe for one day. When the cafe's income
// for that day is already known the salary is computed right away.
func (s *ShiftService) Create(ctx context.Context, in ShiftInput) (*model.Shift, error) {
	shift := model.Shift{
		Date:      model.Day(in.Date),
		CafeID:    in.CafeID,
		BaristaID: in.BaristaID,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := prepareShift(tx, &shift); err != nil {
			return err
		}
		return storageErr("create shift", tx.Omit("Cafe", "Barista").Create(&shift).Error)
	})
	if err != nil {
		return nil, passThrough("create shift", err)
	}

	logger.FromContext(ctx).Info().
		Uint("shift_id", shift.ID).
		Uint("cafe_id", shift.CafeID).
		Uint("barista_id", shift.BaristaID).
		Str("date", shift.Date.Format(model.DateLayout)).
		Msg("shift created")
	return &shift, nil
}

// Update moves a shift to another day, cafe or barista. The same rules as
// for creation apply and the salary follows the income of the new slot.
func (s *ShiftService) Update(ctx context.Context, id uint, in ShiftInput) (*model.Shift, error) {
	var shift model.Shift

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&shift, id).Error; err != nil {
			return storageErr("load shift", err)
		}
		shift.Date = model.Day(in.Date)
		shift.CafeID = in.CafeID
		shift.BaristaID = in.BaristaID

		if err := prepareShift(tx, &shift); err != nil {
			return err
		}
		return storageErr("update shift", tx.Omit("Cafe", "Barista").Save(&shift).Error)
	})
	if err != nil {
		return nil, passThrough("update shift", err)
	}

	logger.FromContext(ctx).Info().Uint("shift_id", shift.ID).Msg("shift updated")
	return &shift, nil
}

// Delete removes a shift. The cafe's income for that day is kept.
func (s *ShiftService) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&model.Shift{}, id)
	if res.Error != nil {
		return storageErr("delete shift", res.Error)
	}
	if res.RowsAffected == 0 {
		return storageErr("delete shift", gorm.ErrRecordNotFound)
	}
	logger.FromContext(ctx).Info().Uint("shift_id", id).Msg("shift deleted")
	return nil
}

func (s *ShiftService) Get(ctx context.Context, id uint) (*model.Shift, error) {
	var shift model.Shift
	err := s.db.WithContext(ctx).Preload("Cafe").Preload("Barista").First(&shift, id).Error
	if err != nil {
		return nil, storageErr("load shift", err)
	}
	return &shift, nil
}

// prepareShift validates shift against the scheduling rules and fills in its
// salary. It performs no writes.
func prepareShift(tx *gorm.DB, shift *model.Shift) error {
	rate, err := validateShift(tx, shift)
	if err != nil {
		return err
	}

	income, err := findIncome(tx, shift.Date, shift.CafeID)
	if err != nil {
		return err
	}
	shift.Salary = nil
	if income != nil {
		salary := SalaryFor(*rate, income.Amount)
		shift.Salary = &salary
	}
	return nil
}

// validateShift checks, in order: the barista has a rate at the cafe, the
// barista is not working at another cafe that day and the cafe has no other
// barista that day. It returns the matched rate.
func validateShift(tx *gorm.DB, shift *model.Shift) (*model.Rate, error) {
	if shift.Date.IsZero() {
		return nil, invalid(ErrInvalid, "Shift date is required.")
	}

	cafe, err := loadCafe(tx, shift.CafeID)
	if err != nil {
		return nil, err
	}
	barista, err := loadBarista(tx, shift.BaristaID)
	if err != nil {
		return nil, err
	}

	rate, err := findRate(tx, cafe, barista)
	if err != nil {
		return nil, err
	}

	day := shift.Date.Format(model.DateLayout)

	busy, err := exists(tx, &model.Shift{},
		"date = ? AND barista_id = ? AND cafe_id <> ? AND id <> ?",
		shift.Date, shift.BaristaID, shift.CafeID, shift.ID)
	if err != nil {
		return nil, storageErr("check barista schedule", err)
	}
	if busy {
		return nil, invalid(ErrBaristaBusy, "On %s, barista %s is already busy in another cafe.", day, barista.FullName)
	}

	staffed, err := exists(tx, &model.Shift{},
		"date = ? AND cafe_id = ? AND id <> ?",
		shift.Date, shift.CafeID, shift.ID)
	if err != nil {
		return nil, storageErr("check cafe schedule", err)
	}
	if staffed {
		return nil, invalid(ErrCafeStaffed, "On %s, cafe '%s' already has a barista on shift.", day, cafe.Name)
	}

	return rate, nil
}
