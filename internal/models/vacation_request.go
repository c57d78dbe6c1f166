package models

import "time"

// Vacation request statuses
const (
	VacationStatusPending  = "Pending"
	VacationStatusApproved = "Approved"
	VacationStatusDenied   = "Denied"
)

type VacationRequest struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	EmployeeID   uint      `gorm:"not null;index" json:"employee_id"`
	SupervisorID uint      `gorm:"not null;index" json:"supervisor_id"`
	StartDate    time.Time `gorm:"type:date;not null;index" json:"start_date"`
	EndDate      time.Time `gorm:"type:date;not null" json:"end_date"`
	ReturnDate   time.Time `gorm:"type:date;not null" json:"return_date"`
	TotalHours   int       `gorm:"not null;default:0" json:"total_hours"`
	Status       string    `gorm:"type:varchar(20);not null;default:'Pending';index" json:"status"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`

	Employee   Employee   `gorm:"foreignKey:EmployeeID" json:"employee"`
	Supervisor Supervisor `gorm:"foreignKey:SupervisorID" json:"-"`
}

func (VacationRequest) TableName() string {
	return "vacation_requests"
}

// IsValidVacationStatus reports whether status is one of the known statuses.
func IsValidVacationStatus(status string) bool {
	switch status {
	case VacationStatusPending, VacationStatusApproved, VacationStatusDenied:
		return true
	}
	return false
}
