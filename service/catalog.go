package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"baristasalary/logger"
	"baristasalary/model"

	"gorm.io/gorm"
)

const (
	maxCafeNameLen    = 63
	maxBaristaNameLen = 150
)

type RateInput struct {
	CafeID    uint
	BaristaID uint
	MinWage   int
	Percent   int
	Additive  int
}

type Summary struct {
	Cafes    int64 `json:"num_cafes"`
	Baristas int64 `json:"num_baristas"`
}

// CatalogService manages cafes, baristas and their rates.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

func (s *CatalogService) Summary(ctx context.Context) (*Summary, error) {
	var sum Summary
	db := s.db.WithContext(ctx)
	if err := db.Model(&model.Cafe{}).Count(&sum.Cafes).Error; err != nil {
		return nil, storageErr("count cafes", err)
	}
	if err := db.Model(&model.Barista{}).Count(&sum.Baristas).Error; err != nil {
		return nil, storageErr("count baristas", err)
	}
	return &sum, nil
}

// Cafes

func (s *CatalogService) ListCafes(ctx context.Context) ([]model.Cafe, error) {
	var cafes []model.Cafe
	if err := s.db.WithContext(ctx).Order("id").Find(&cafes).Error; err != nil {
		return nil, storageErr("list cafes", err)
	}
	return cafes, nil
}

func (s *CatalogService) GetCafe(ctx context.Context, id uint) (*model.Cafe, error) {
	var cafe model.Cafe
	if err := s.db.WithContext(ctx).First(&cafe, id).Error; err != nil {
		return nil, storageErr("load cafe", err)
	}
	return &cafe, nil
}

func (s *CatalogService) CreateCafe(ctx context.Context, name string) (*model.Cafe, error) {
	cafe := model.Cafe{Name: strings.TrimSpace(name)}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := validateCafeName(tx, cafe.Name, 0); err != nil {
			return err
		}
		return storageErr("create cafe", tx.Create(&cafe).Error)
	})
	if err != nil {
		return nil, passThrough("create cafe", err)
	}

	logger.FromContext(ctx).Info().Uint("cafe_id", cafe.ID).Str("name", cafe.Name).Msg("cafe created")
	return &cafe, nil
}

func (s *CatalogService) UpdateCafe(ctx context.Context, id uint, name string) (*model.Cafe, error) {
	var cafe model.Cafe

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&cafe, id).Error; err != nil {
			return storageErr("load cafe", err)
		}
		cafe.Name = strings.TrimSpace(name)
		if err := validateCafeName(tx, cafe.Name, cafe.ID); err != nil {
			return err
		}
		return storageErr("update cafe", tx.Save(&cafe).Error)
	})
	if err != nil {
		return nil, passThrough("update cafe", err)
	}
	return &cafe, nil
}

// DeleteCafe removes a cafe together with its rates, shifts and incomes.
func (s *CatalogService) DeleteCafe(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cafe model.Cafe
		if err := tx.First(&cafe, id).Error; err != nil {
			return storageErr("load cafe", err)
		}
		for _, dep := range []interface{}{&model.Income{}, &model.Shift{}, &model.Rate{}} {
			if err := tx.Where("cafe_id = ?", id).Delete(dep).Error; err != nil {
				return storageErr("delete cafe records", err)
			}
		}
		return storageErr("delete cafe", tx.Delete(&cafe).Error)
	})
	if err != nil {
		return passThrough("delete cafe", err)
	}

	logger.FromContext(ctx).Info().Uint("cafe_id", id).Msg("cafe deleted")
	return nil
}

func validateCafeName(tx *gorm.DB, name string, selfID uint) error {
	if name == "" {
		return invalid(ErrInvalid, "Cafe name is required.")
	}
	if utf8.RuneCountInString(name) > maxCafeNameLen {
		return invalid(ErrInvalid, "Cafe name must be at most %d characters.", maxCafeNameLen)
	}
	taken, err := exists(tx, &model.Cafe{}, "name = ? AND id <> ?", name, selfID)
	if err != nil {
		return storageErr("check cafe name", err)
	}
	if taken {
		return invalid(ErrDuplicate, "Cafe with name '%s' already exists.", name)
	}
	return nil
}

// Baristas

func (s *CatalogService) ListBaristas(ctx context.Context) ([]model.Barista, error) {
	var baristas []model.Barista
	if err := s.db.WithContext(ctx).Order("id").Find(&baristas).Error; err != nil {
		return nil, storageErr("list baristas", err)
	}
	return baristas, nil
}

func (s *CatalogService) GetBarista(ctx context.Context, id uint) (*model.Barista, error) {
	var barista model.Barista
	if err := s.db.WithContext(ctx).First(&barista, id).Error; err != nil {
		return nil, storageErr("load barista", err)
	}
	return &barista, nil
}

func (s *CatalogService) CreateBarista(ctx context.Context, fullName string) (*model.Barista, error) {
	barista := model.Barista{FullName: strings.TrimSpace(fullName)}
	if err := validateBaristaName(barista.FullName); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(&barista).Error; err != nil {
		return nil, storageErr("create barista", err)
	}

	logger.FromContext(ctx).Info().Uint("barista_id", barista.ID).Msg("barista created")
	return &barista, nil
}

func (s *CatalogService) UpdateBarista(ctx context.Context, id uint, fullName string) (*model.Barista, error) {
	name := strings.TrimSpace(fullName)
	if err := validateBaristaName(name); err != nil {
		return nil, err
	}

	var barista model.Barista
	db := s.db.WithContext(ctx)
	if err := db.First(&barista, id).Error; err != nil {
		return nil, storageErr("load barista", err)
	}
	barista.FullName = name
	if err := db.Save(&barista).Error; err != nil {
		return nil, storageErr("update barista", err)
	}
	return &barista, nil
}

// DeleteBarista removes a barista together with their rates and shifts.
func (s *CatalogService) DeleteBarista(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var barista model.Barista
		if err := tx.First(&barista, id).Error; err != nil {
			return storageErr("load barista", err)
		}
		for _, dep := range []interface{}{&model.Shift{}, &model.Rate{}} {
			if err := tx.Where("barista_id = ?", id).Delete(dep).Error; err != nil {
				return storageErr("delete barista records", err)
			}
		}
		return storageErr("delete barista", tx.Delete(&barista).Error)
	})
	if err != nil {
		return passThrough("delete barista", err)
	}

	logger.FromContext(ctx).Info().Uint("barista_id", id).Msg("barista deleted")
	return nil
}

func validateBaristaName(name string) error {
	if name == "" {
		return invalid(ErrInvalid, "Barista full name is required.")
	}
	if utf8.RuneCountInString(name) > maxBaristaNameLen {
		return invalid(ErrInvalid, "Barista full name must be at most %d characters.", maxBaristaNameLen)
	}
	return nil
}

// Rates

func (s *CatalogService) ListRates(ctx context.Context) ([]model.Rate, error) {
	var rates []model.Rate
	err := s.db.WithContext(ctx).
		Preload("Cafe").
		Preload("Barista").
		Order("barista_id, cafe_id").
		Find(&rates).Error
	if err != nil {
		return nil, storageErr("list rates", err)
	}
	return rates, nil
}

func (s *CatalogService) CreateRate(ctx context.Context, in RateInput) (*model.Rate, error) {
	rate := model.Rate{
		CafeID:    in.CafeID,
		BaristaID: in.BaristaID,
		MinWage:   in.MinWage,
		Percent:   in.Percent,
		Additive:  in.Additive,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cafe, err := loadCafe(tx, in.CafeID)
		if err != nil {
			return err
		}
		barista, err := loadBarista(tx, in.BaristaID)
		if err != nil {
			return err
		}
		dup, err := exists(tx, &model.Rate{}, "cafe_id = ? AND barista_id = ?", in.CafeID, in.BaristaID)
		if err != nil {
			return storageErr("check rate", err)
		}
		if dup {
			return invalid(ErrDuplicate, "Barista %s already has a rate for '%s' cafe.", barista.FullName, cafe.Name)
		}
		return storageErr("create rate", tx.Omit("Cafe", "Barista").Create(&rate).Error)
	})
	if err != nil {
		return nil, passThrough("create rate", err)
	}

	logger.FromContext(ctx).Info().
		Uint("rate_id", rate.ID).
		Uint("cafe_id", rate.CafeID).
		Uint("barista_id", rate.BaristaID).
		Msg("rate created")
	return &rate, nil
}

// UpdateRate changes the formula parameters of a rate. Salaries already
// stored on shifts are left as they are.
func (s *CatalogService) UpdateRate(ctx context.Context, id uint, minWage, percent, additive int) (*model.Rate, error) {
	var rate model.Rate
	db := s.db.WithContext(ctx)
	if err := db.First(&rate, id).Error; err != nil {
		return nil, storageErr("load rate", err)
	}

	rate.MinWage = minWage
	rate.Percent = percent
	rate.Additive = additive
	if err := db.Omit("Cafe", "Barista").Save(&rate).Error; err != nil {
		return nil, storageErr("update rate", err)
	}
	return &rate, nil
}

// DeleteRate removes a rate. Existing shifts stay, but the barista can no
// longer be scheduled at that cafe.
func (s *CatalogService) DeleteRate(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&model.Rate{}, id)
	if res.Error != nil {
		return storageErr("delete rate", res.Error)
	}
	if res.RowsAffected == 0 {
		return storageErr("delete rate", gorm.ErrRecordNotFound)
	}
	logger.FromContext(ctx).Info().Uint("rate_id", id).Msg("rate deleted")
	return nil
}
