package repository

import (
	"time"
	"vacation-manager/internal/models"

	"gorm.io/gorm"
)

type NonWorkingDayRepository interface {
	GetByYear(year int) ([]models.NonWorkingDay, error)
	GetAll() ([]models.NonWorkingDay, error)
	ReplaceAll(days []models.NonWorkingDay) error
	IsNonWorkingDay(date time.Time) (bool, error)
}

type GormNonWorkingDayRepository struct {
	db *gorm.DB
}

func NewGormNonWorkingDayRepository(db *gorm.DB) (NonWorkingDayRepository, error) {
	if err := db.AutoMigrate(&models.NonWorkingDay{}); err != nil {
		return nil, err
	}

	return &GormNonWorkingDayRepository{db: db}, nil
}

// ReplaceAll swaps the whole closure table in one transaction.
func (r *GormNonWorkingDayRepository) ReplaceAll(days []models.NonWorkingDay) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM non_working_days").Error; err != nil {
			return err
		}
		if len(days) == 0 {
			return nil
		}
		return tx.Create(&days).Error
	})
}

func (r *GormNonWorkingDayRepository) GetByYear(year int) ([]models.NonWorkingDay, error) {
	var days []models.NonWorkingDay
	err := r.db.Where("year = ?", year).Order("date").Find(&days).Error
	return days, err
}

func (r *GormNonWorkingDayRepository) GetAll() ([]models.NonWorkingDay, error) {
	var days []models.NonWorkingDay
	err := r.db.Order("date").Find(&days).Error
	return days, err
}

func (r *GormNonWorkingDayRepository) IsNonWorkingDay(date time.Time) (bool, error) {
	var count int64
	err := r.db.Model(&models.NonWorkingDay{}).
		Where("date = ?", date).
		Count(&count).Error
	return count > 0, err
}
