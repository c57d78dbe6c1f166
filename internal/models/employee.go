package models

import (
	"strings"
	"time"
)

type Employee struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	SupervisorID uint      `gorm:"not null;index" json:"supervisor_id"`
	FirstName    string    `gorm:"not null" json:"first_name"`
	LastName     string    `gorm:"not null" json:"last_name"`
	PhoneNumber  string    `gorm:"not null" json:"phone_number"`
	Department   string    `gorm:"not null" json:"department"`
	Shift        string    `gorm:"not null" json:"shift"`
	WorkLine     string    `json:"work_line"`
	WorkArea     string    `json:"work_area"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Supervisor Supervisor `gorm:"foreignKey:SupervisorID" json:"-"`
}

func (Employee) TableName() string {
	return "employees"
}

func (e *Employee) FullName() string {
	return joinName(e.FirstName, e.LastName)
}

func joinName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}
