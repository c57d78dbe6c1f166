package repository

import (
	"errors"
	"vacation-manager/internal/models"

	"gorm.io/gorm"
)

type SupervisorRepository interface {
	Create(supervisor *models.Supervisor) error
	GetByID(id uint) (*models.Supervisor, error)
	GetByFirebaseUID(uid string) (*models.Supervisor, error)
	GetAll() ([]models.Supervisor, error)
}

type GormSupervisorRepository struct {
	db *gorm.DB
}

func NewGormSupervisorRepository(db *gorm.DB) (SupervisorRepository, error) {
	if err := db.AutoMigrate(&models.Supervisor{}); err != nil {
		return nil, err
	}
	return &GormSupervisorRepository{db: db}, nil
}

func (r *GormSupervisorRepository) Create(supervisor *models.Supervisor) error {
	var count int64
	err := r.db.Model(&models.Supervisor{}).
		Where("firebase_uid = ? OR email = ?", supervisor.FirebaseUID, supervisor.Email).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrConflict
	}

	return r.db.Create(supervisor).Error
}

func (r *GormSupervisorRepository) GetByID(id uint) (*models.Supervisor, error) {
	var supervisor models.Supervisor
	err := r.db.First(&supervisor, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &supervisor, nil
}

func (r *GormSupervisorRepository) GetByFirebaseUID(uid string) (*models.Supervisor, error) {
	var supervisor models.Supervisor
	err := r.db.Where("firebase_uid = ?", uid).First(&supervisor).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &supervisor, nil
}

func (r *GormSupervisorRepository) GetAll() ([]models.Supervisor, error) {
	var supervisors []models.Supervisor
	err := r.db.Order("id").Find(&supervisors).Error
	return supervisors, err
}
