package repository

import (
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"vacation-manager/internal/database"
	"vacation-manager/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	db, err := database.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared", logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func seedSupervisor(t *testing.T, repo SupervisorRepository, uid string) *models.Supervisor {
	t.Helper()
	supervisor := &models.Supervisor{
		FirebaseUID: uid,
		Email:       uid + "@example.com",
		FirstName:   "Maria",
		LastName:    "Lopez",
		Department:  "Packaging",
		Shift:       "1st",
		PhoneNumber: "512-555-0100",
	}
	require.NoError(t, repo.Create(supervisor))
	return supervisor
}

func seedEmployee(t *testing.T, repo EmployeeRepository, supervisorID uint, first string) *models.Employee {
	t.Helper()
	employee := &models.Employee{
		SupervisorID: supervisorID,
		FirstName:    first,
		LastName:     "Garcia",
		PhoneNumber:  "512-555-0199",
		Department:   "Packaging",
		Shift:        "1st",
		WorkLine:     "L3",
		WorkArea:     "Fillers",
	}
	require.NoError(t, repo.Create(employee))
	return employee
}
