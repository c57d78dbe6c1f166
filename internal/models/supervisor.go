package models

import "time"

type Supervisor struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	FirebaseUID string    `gorm:"uniqueIndex;not null" json:"firebase_uid"`
	Email       string    `gorm:"uniqueIndex;not null" json:"email"`
	FirstName   string    `gorm:"not null" json:"first_name"`
	LastName    string    `gorm:"not null" json:"last_name"`
	Department  string    `gorm:"not null" json:"department"`
	Shift       string    `gorm:"not null" json:"shift"`
	PhoneNumber string    `json:"phone_number"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Supervisor) TableName() string {
	return "supervisors"
}

// FullName returns "First Last".
func (s *Supervisor) FullName() string {
	return joinName(s.FirstName, s.LastName)
}
