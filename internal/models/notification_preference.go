package models

import (
	"strings"
	"time"
)

// Defaults applied when a supervisor has no stored preference
const (
	DefaultSMSEnabled          = true
	DefaultDaysBeforeVacation  = 2
	DefaultNotificationsPerDay = 1
	DefaultNotificationTime    = "09:00"
	DefaultTimezone            = "America/Chicago"
)

// Ranges accepted by the preference update surface
const (
	MinDaysBeforeVacation  = 0
	MaxDaysBeforeVacation  = 30
	MinNotificationsPerDay = 1
	MaxNotificationsPerDay = 10
)

type NotificationPreference struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	SupervisorID        uint      `gorm:"uniqueIndex;not null" json:"supervisor_id"`
	SMSEnabled          bool      `gorm:"not null" json:"sms_enabled"`
	DaysBeforeVacation  int       `gorm:"not null;check:days_before_vacation >= 0 AND days_before_vacation <= 30" json:"days_before_vacation"`
	NotificationsPerDay int       `gorm:"not null;check:notifications_per_day >= 1 AND notifications_per_day <= 10" json:"notifications_per_day"`
	NotificationTimes   string    `gorm:"not null" json:"notification_times"` // "HH:MM,HH:MM"
	PhoneNumberOverride *string   `json:"phone_number_override"`
	Timezone            string    `gorm:"not null" json:"timezone"`
	CreatedAt           time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (NotificationPreference) TableName() string {
	return "notification_preferences"
}

// DefaultNotificationPreference returns the settings used for a supervisor without a stored row.
func DefaultNotificationPreference(supervisorID uint) NotificationPreference {
	return NotificationPreference{
		SupervisorID:        supervisorID,
		SMSEnabled:          DefaultSMSEnabled,
		DaysBeforeVacation:  DefaultDaysBeforeVacation,
		NotificationsPerDay: DefaultNotificationsPerDay,
		NotificationTimes:   DefaultNotificationTime,
		Timezone:            DefaultTimezone,
	}
}

// Times splits the stored clock-times. Blank entries are dropped.
func (p *NotificationPreference) Times() []string {
	var times []string
	for _, t := range strings.Split(p.NotificationTimes, ",") {
		if t = strings.TrimSpace(t); t != "" {
			times = append(times, t)
		}
	}
	return times
}

func (p *NotificationPreference) SetTimes(times []string) {
	p.NotificationTimes = strings.Join(times, ",")
}

// OverridePhone returns the override number, or "" when none is set.
func (p *NotificationPreference) OverridePhone() string {
	if p.PhoneNumberOverride == nil {
		return ""
	}
	return strings.TrimSpace(*p.PhoneNumberOverride)
}
