package repository

import (
	"errors"
	"vacation-manager/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NotificationPreferenceRepository interface {
	GetBySupervisorID(supervisorID uint) (*models.NotificationPreference, error)
	GetAll() ([]models.NotificationPreference, error)
	Upsert(pref *models.NotificationPreference) error
}

type GormNotificationPreferenceRepository struct {
	db *gorm.DB
}

func NewGormNotificationPreferenceRepository(db *gorm.DB) (NotificationPreferenceRepository, error) {
	if err := db.AutoMigrate(&models.NotificationPreference{}); err != nil {
		return nil, err
	}
	return &GormNotificationPreferenceRepository{db: db}, nil
}

// GetBySupervisorID returns nil, nil when the supervisor has no stored preference.
func (r *GormNotificationPreferenceRepository) GetBySupervisorID(supervisorID uint) (*models.NotificationPreference, error) {
	var pref models.NotificationPreference
	err := r.db.Where("supervisor_id = ?", supervisorID).First(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pref, nil
}

func (r *GormNotificationPreferenceRepository) GetAll() ([]models.NotificationPreference, error) {
	var prefs []models.NotificationPreference
	err := r.db.Order("supervisor_id").Find(&prefs).Error
	return prefs, err
}

// Upsert inserts or replaces the supervisor's single preference row.
func (r *GormNotificationPreferenceRepository) Upsert(pref *models.NotificationPreference) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "supervisor_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"sms_enabled",
			"days_before_vacation",
			"notifications_per_day",
			"notification_times",
			"phone_number_override",
			"timezone",
			"updated_at",
		}),
	}).Create(pref).Error
}
