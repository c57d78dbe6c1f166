package repository

import (
	"errors"
	"vacation-manager/internal/models"

	"gorm.io/gorm"
)

type EmployeeRepository interface {
	Create(employee *models.Employee) error
	GetByID(id uint) (*models.Employee, error)
	GetBySupervisorID(supervisorID uint) ([]models.Employee, error)
	CountBySupervisorID(supervisorID uint) (int64, error)
}

type GormEmployeeRepository struct {
	db *gorm.DB
}

func NewGormEmployeeRepository(db *gorm.DB) (EmployeeRepository, error) {
	if err := db.AutoMigrate(&models.Employee{}); err != nil {
		return nil, err
	}
	return &GormEmployeeRepository{db: db}, nil
}

func (r *GormEmployeeRepository) Create(employee *models.Employee) error {
	return r.db.Create(employee).Error
}

func (r *GormEmployeeRepository) GetByID(id uint) (*models.Employee, error) {
	var employee models.Employee
	err := r.db.First(&employee, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *GormEmployeeRepository) GetBySupervisorID(supervisorID uint) ([]models.Employee, error) {
	var employees []models.Employee
	err := r.db.Where("supervisor_id = ?", supervisorID).
		Order("last_name, first_name").
		Find(&employees).Error
	return employees, err
}

func (r *GormEmployeeRepository) CountBySupervisorID(supervisorID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Employee{}).
		Where("supervisor_id = ?", supervisorID).
		Count(&count).Error
	return count, err
}
