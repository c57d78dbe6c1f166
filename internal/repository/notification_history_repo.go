package repository

import (
	"time"
	"vacation-manager/internal/models"

	"gorm.io/gorm"
)

type NotificationHistoryRepository interface {
	Create(entry *models.NotificationHistory) error
	CountSentBetween(supervisorID, vacationRequestID uint, from, to time.Time) (int64, error)
	GetByVacationRequestID(vacationRequestID uint) ([]models.NotificationHistory, error)
}

type GormNotificationHistoryRepository struct {
	db *gorm.DB
}

func NewGormNotificationHistoryRepository(db *gorm.DB) (NotificationHistoryRepository, error) {
	if err := db.AutoMigrate(&models.NotificationHistory{}); err != nil {
		return nil, err
	}
	return &GormNotificationHistoryRepository{db: db}, nil
}

func (r *GormNotificationHistoryRepository) Create(entry *models.NotificationHistory) error {
	return r.db.Create(entry).Error
}

// CountSentBetween counts 'sent' rows with from <= sent_at < to. Times are compared in UTC.
func (r *GormNotificationHistoryRepository) CountSentBetween(supervisorID, vacationRequestID uint, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.NotificationHistory{}).
		Where("supervisor_id = ? AND vacation_request_id = ? AND status = ? AND sent_at >= ? AND sent_at < ?",
			supervisorID, vacationRequestID, models.NotificationStatusSent, from.UTC(), to.UTC()).
		Count(&count).Error
	return count, err
}

func (r *GormNotificationHistoryRepository) GetByVacationRequestID(vacationRequestID uint) ([]models.NotificationHistory, error) {
	var entries []models.NotificationHistory
	err := r.db.Where("vacation_request_id = ?", vacationRequestID).
		Order("id").
		Find(&entries).Error
	return entries, err
}
