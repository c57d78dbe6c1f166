package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"vacation-manager/internal/database"
	"vacation-manager/internal/models"
	"vacation-manager/internal/repository"
	"vacation-manager/pkg/sms"
)

type repos struct {
	supervisors repository.SupervisorRepository
	employees   repository.EmployeeRepository
	vacations   repository.VacationRequestRepository
	preferences repository.NotificationPreferenceRepository
	history     repository.NotificationHistoryRepository
	closures    repository.NonWorkingDayRepository
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newRepos(t *testing.T) repos {
	t.Helper()

	db, err := database.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared", quietLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	var r repos
	r.supervisors, err = repository.NewGormSupervisorRepository(db)
	require.NoError(t, err)
	r.employees, err = repository.NewGormEmployeeRepository(db)
	require.NoError(t, err)
	r.vacations, err = repository.NewGormVacationRequestRepository(db)
	require.NoError(t, err)
	r.preferences, err = repository.NewGormNotificationPreferenceRepository(db)
	require.NoError(t, err)
	r.history, err = repository.NewGormNotificationHistoryRepository(db)
	require.NoError(t, err)
	r.closures, err = repository.NewGormNonWorkingDayRepository(db)
	require.NoError(t, err)
	return r
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func newSupervisor(t *testing.T, r repos, uid, phoneNumber string) *models.Supervisor {
	t.Helper()
	supervisor := &models.Supervisor{
		FirebaseUID: uid,
		Email:       uid + "@example.com",
		FirstName:   "Maria",
		LastName:    "Lopez",
		Department:  "Packaging",
		Shift:       "1st",
		PhoneNumber: phoneNumber,
	}
	require.NoError(t, r.supervisors.Create(supervisor))
	return supervisor
}

func newEmployee(t *testing.T, r repos, supervisorID uint, first, last string) *models.Employee {
	t.Helper()
	employee := &models.Employee{
		SupervisorID: supervisorID,
		FirstName:    first,
		LastName:     last,
		PhoneNumber:  "512-555-0199",
		Department:   "Packaging",
		Shift:        "1st",
		WorkLine:     "L3",
		WorkArea:     "Fillers",
	}
	require.NoError(t, r.employees.Create(employee))
	return employee
}

func newApprovedVacation(t *testing.T, r repos, employee *models.Employee, start, end time.Time, hours int) *models.VacationRequest {
	t.Helper()
	request := &models.VacationRequest{
		EmployeeID:   employee.ID,
		SupervisorID: employee.SupervisorID,
		StartDate:    start,
		EndDate:      end,
		ReturnDate:   end.AddDate(0, 0, 1),
		TotalHours:   hours,
		Status:       models.VacationStatusApproved,
	}
	require.NoError(t, r.vacations.Create(request))
	return request
}

func savePreference(t *testing.T, r repos, supervisorID uint, mutate func(*models.NotificationPreference)) {
	t.Helper()
	pref := models.DefaultNotificationPreference(supervisorID)
	if mutate != nil {
		mutate(&pref)
	}
	require.NoError(t, r.preferences.Upsert(&pref))
}

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(ctx context.Context, to, body string) (sms.Result, error) {
	args := m.Called(ctx, to, body)
	return args.Get(0).(sms.Result), args.Error(1)
}

type mockReporter struct {
	mock.Mock
}

func (m *mockReporter) ReportDeliveryFailure(supervisorID, vacationRequestID uint, phoneNumber string, cause error) {
	m.Called(supervisorID, vacationRequestID, phoneNumber, cause)
}

type mockRescheduler struct {
	mock.Mock
}

func (m *mockRescheduler) Reschedule(prefs []models.NotificationPreference) {
	m.Called(prefs)
}
