package models

import "time"

// Delivery statuses of a notification attempt
const (
	NotificationStatusSent   = "sent"
	NotificationStatusFailed = "failed"
)

// NotificationHistory - append-only log of reminder attempts
type NotificationHistory struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	SupervisorID      uint       `gorm:"not null;index:idx_history_cap,priority:1" json:"supervisor_id"`
	VacationRequestID uint       `gorm:"not null;index:idx_history_cap,priority:2" json:"vacation_request_id"`
	PhoneNumber       string     `gorm:"size:32;not null" json:"phone_number"`
	MessageContent    string     `gorm:"type:text;not null" json:"message_content"`
	TransportID       *string    `gorm:"size:64" json:"transport_id"`
	TransportStatus   *string    `gorm:"size:32" json:"transport_status"`
	ErrorCode         *string    `gorm:"size:32" json:"error_code"`
	ErrorMessage      *string    `gorm:"type:text" json:"error_message"`
	Status            string     `gorm:"type:varchar(20);not null;index:idx_history_cap,priority:3" json:"status"`
	SentAt            *time.Time `gorm:"index:idx_history_cap,priority:4" json:"sent_at"`
	CreatedAt         time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (NotificationHistory) TableName() string {
	return "notification_history"
}
