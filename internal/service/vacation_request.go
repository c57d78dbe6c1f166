package service

import (
	"errors"
	"fmt"
	"sync"
	"time"
	"vacation-manager/internal/models"
	"vacation-manager/internal/repository"
	"vacation-manager/pkg/businessdays"
	"vacation-manager/pkg/holidays"

	"github.com/sirupsen/logrus"
)

const upcomingVacationsLimit = 10

// DashboardStats - numbers shown on the supervisor dashboard
type DashboardStats struct {
	TotalEmployees    int64
	PendingRequests   int64
	ApprovedRequests  int64
	DeniedRequests    int64
	UpcomingVacations []models.VacationRequest
}

type VacationRequestService struct {
	requestRepo  repository.VacationRequestRepository
	employeeRepo repository.EmployeeRepository
	logger       *logrus.Logger

	mu         sync.RWMutex
	calculator *businessdays.Calculator
}

func NewVacationRequestService(
	requestRepo repository.VacationRequestRepository,
	employeeRepo repository.EmployeeRepository,
	logger *logrus.Logger,
) *VacationRequestService {
	return &VacationRequestService{
		requestRepo:  requestRepo,
		employeeRepo: employeeRepo,
		logger:       logger,
		calculator:   businessdays.New(),
	}
}

// SetClosures makes company closures count as non-business days for new requests.
func (s *VacationRequestService) SetClosures(dates []time.Time) {
	s.mu.Lock()
	s.calculator = businessdays.New().WithClosures(dates...)
	s.mu.Unlock()
}

func (s *VacationRequestService) currentCalculator() *businessdays.Calculator {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.calculator
}

// CalculateDuration returns total hours and return date for "YYYY-MM-DD" bounds.
func (s *VacationRequestService) CalculateDuration(start, end string) (businessdays.Duration, error) {
	duration, err := s.currentCalculator().Calculate(start, end)
	if err != nil {
		return businessdays.Duration{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return duration, nil
}

// Create stamps total hours and return date and stores a Pending request.
func (s *VacationRequestService) Create(supervisorID, employeeID uint, start, end string) (*models.VacationRequest, error) {
	duration, err := s.CalculateDuration(start, end)
	if err != nil {
		return nil, err
	}

	employee, err := s.employeeRepo.GetByID(employeeID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: employee %d not found", ErrValidation, employeeID)
	}
	if err != nil {
		return nil, fmt.Errorf("load employee: %w", err)
	}
	if employee.SupervisorID != supervisorID {
		return nil, fmt.Errorf("%w: employee %d is not managed by supervisor %d", ErrValidation, employeeID, supervisorID)
	}

	// already validated by CalculateDuration
	startDate, _ := businessdays.ParseDate(start)
	endDate, _ := businessdays.ParseDate(end)

	request := &models.VacationRequest{
		EmployeeID:   employeeID,
		SupervisorID: supervisorID,
		StartDate:    startDate,
		EndDate:      endDate,
		ReturnDate:   duration.ReturnDate,
		TotalHours:   duration.TotalHours,
		Status:       models.VacationStatusPending,
	}

	if err := s.requestRepo.Create(request); err != nil {
		s.logger.WithError(err).Error("Failed to create vacation request")
		return nil, fmt.Errorf("create vacation request: %w", err)
	}
	request.Employee = *employee

	s.logger.WithFields(logrus.Fields{
		"id":            request.ID,
		"employee_id":   employeeID,
		"supervisor_id": supervisorID,
		"start":         start,
		"end":           end,
		"total_hours":   request.TotalHours,
		"return_date":   request.ReturnDate.Format(businessdays.DateLayout),
	}).Info("Vacation request created")

	return request, nil
}

func (s *VacationRequestService) Approve(supervisorID, requestID uint) (*models.VacationRequest, error) {
	return s.setStatus(supervisorID, requestID, models.VacationStatusApproved)
}

func (s *VacationRequestService) Deny(supervisorID, requestID uint) (*models.VacationRequest, error) {
	return s.setStatus(supervisorID, requestID, models.VacationStatusDenied)
}

// setStatus returns the request as stored after the change.
func (s *VacationRequestService) setStatus(supervisorID, requestID uint, status string) (*models.VacationRequest, error) {
	if err := s.requestRepo.UpdateStatus(requestID, supervisorID, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("vacation request %d not found or unauthorized: %w", requestID, err)
		}
		return nil, fmt.Errorf("update vacation request status: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"id":            requestID,
		"supervisor_id": supervisorID,
		"status":        status,
	}).Info("Vacation request status changed")

	request, err := s.requestRepo.GetByID(requestID)
	if err != nil {
		return nil, fmt.Errorf("load vacation request: %w", err)
	}
	return request, nil
}

// ListForSupervisor returns the supervisor's requests, newest first. An empty status lists all of them.
func (s *VacationRequestService) ListForSupervisor(supervisorID uint, status string) ([]models.VacationRequest, error) {
	if status != "" && !models.IsValidVacationStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	requests, err := s.requestRepo.GetBySupervisorID(supervisorID)
	if err != nil || status == "" {
		return requests, err
	}

	filtered := requests[:0]
	for _, request := range requests {
		if request.Status == status {
			filtered = append(filtered, request)
		}
	}
	return filtered, nil
}

// DashboardStats counts employees and requests and lists up to ten upcoming approved vacations.
func (s *VacationRequestService) DashboardStats(supervisorID uint, today time.Time) (*DashboardStats, error) {
	total, err := s.employeeRepo.CountBySupervisorID(supervisorID)
	if err != nil {
		return nil, fmt.Errorf("count employees: %w", err)
	}

	counts, err := s.requestRepo.CountByStatus(supervisorID)
	if err != nil {
		return nil, fmt.Errorf("count vacation requests: %w", err)
	}

	upcoming, err := s.requestRepo.GetUpcomingApproved(supervisorID, holidays.DateOf(today), upcomingVacationsLimit)
	if err != nil {
		return nil, fmt.Errorf("load upcoming vacations: %w", err)
	}

	return &DashboardStats{
		TotalEmployees:    total,
		PendingRequests:   counts[models.VacationStatusPending],
		ApprovedRequests:  counts[models.VacationStatusApproved],
		DeniedRequests:    counts[models.VacationStatusDenied],
		UpcomingVacations: upcoming,
	}, nil
}
