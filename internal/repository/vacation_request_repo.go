package repository

import (
	"errors"
	"time"
	"vacation-manager/internal/models"

	"gorm.io/gorm"
)

type VacationRequestRepository interface {
	Create(request *models.VacationRequest) error
	GetByID(id uint) (*models.VacationRequest, error)
	GetBySupervisorID(supervisorID uint) ([]models.VacationRequest, error)
	UpdateStatus(id, supervisorID uint, status string) error
	GetApprovedStartingBetween(supervisorID uint, after, until time.Time) ([]models.VacationRequest, error)
	GetUpcomingApproved(supervisorID uint, from time.Time, limit int) ([]models.VacationRequest, error)
	CountByStatus(supervisorID uint) (map[string]int64, error)
}

type GormVacationRequestRepository struct {
	db *gorm.DB
}

func NewGormVacationRequestRepository(db *gorm.DB) (VacationRequestRepository, error) {
	if err := db.AutoMigrate(&models.VacationRequest{}); err != nil {
		return nil, err
	}
	return &GormVacationRequestRepository{db: db}, nil
}

func (r *GormVacationRequestRepository) Create(request *models.VacationRequest) error {
	return r.db.Create(request).Error
}

func (r *GormVacationRequestRepository) GetByID(id uint) (*models.VacationRequest, error) {
	var request models.VacationRequest
	err := r.db.Preload("Employee").First(&request, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *GormVacationRequestRepository) GetBySupervisorID(supervisorID uint) ([]models.VacationRequest, error) {
	var requests []models.VacationRequest
	err := r.db.Preload("Employee").
		Where("supervisor_id = ?", supervisorID).
		Order("created_at DESC, id DESC").
		Find(&requests).Error
	return requests, err
}

// UpdateStatus changes the status only when the request belongs to the supervisor.
func (r *GormVacationRequestRepository) UpdateStatus(id, supervisorID uint, status string) error {
	result := r.db.Model(&models.VacationRequest{}).
		Where("id = ? AND supervisor_id = ?", id, supervisorID).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetApprovedStartingBetween - approved requests with after < start_date <= until
func (r *GormVacationRequestRepository) GetApprovedStartingBetween(supervisorID uint, after, until time.Time) ([]models.VacationRequest, error) {
	var requests []models.VacationRequest
	err := r.db.Preload("Employee").
		Where("supervisor_id = ? AND status = ? AND start_date > ? AND start_date <= ?",
			supervisorID, models.VacationStatusApproved, after, until).
		Order("start_date, id").
		Find(&requests).Error
	return requests, err
}

func (r *GormVacationRequestRepository) GetUpcomingApproved(supervisorID uint, from time.Time, limit int) ([]models.VacationRequest, error) {
	var requests []models.VacationRequest
	err := r.db.Preload("Employee").
		Where("supervisor_id = ? AND status = ? AND start_date >= ?",
			supervisorID, models.VacationStatusApproved, from).
		Order("start_date, id").
		Limit(limit).
		Find(&requests).Error
	return requests, err
}

func (r *GormVacationRequestRepository) CountByStatus(supervisorID uint) (map[string]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := r.db.Model(&models.VacationRequest{}).
		Select("status, COUNT(*) AS count").
		Where("supervisor_id = ?", supervisorID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
