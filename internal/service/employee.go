package service

import (
	"fmt"
	"sort"
	"strings"
	"vacation-manager/internal/models"
	"vacation-manager/internal/repository"

	"github.com/sirupsen/logrus"
)

type EmployeeService struct {
	repo   repository.EmployeeRepository
	logger *logrus.Logger
}

func NewEmployeeService(repo repository.EmployeeRepository, logger *logrus.Logger) *EmployeeService {
	return &EmployeeService{repo: repo, logger: logger}
}

// Add puts an employee on the supervisor's roster.
func (s *EmployeeService) Add(supervisorID uint, employee *models.Employee) error {
	missing := missingFields(map[string]string{
		"first_name":   employee.FirstName,
		"last_name":    employee.LastName,
		"phone_number": employee.PhoneNumber,
		"department":   employee.Department,
		"shift":        employee.Shift,
		"work_line":    employee.WorkLine,
		"work_area":    employee.WorkArea,
	})
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required field: %s", ErrValidation, strings.Join(missing, ", "))
	}

	employee.SupervisorID = supervisorID
	if err := s.repo.Create(employee); err != nil {
		return fmt.Errorf("create employee: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"id":            employee.ID,
		"supervisor_id": supervisorID,
	}).Info("Employee added")
	return nil
}

func (s *EmployeeService) Roster(supervisorID uint) ([]models.Employee, error) {
	return s.repo.GetBySupervisorID(supervisorID)
}

func missingFields(fields map[string]string) []string {
	var missing []string
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}
