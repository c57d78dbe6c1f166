package service

import (
	"errors"
	"fmt"
	"strings"
	"vacation-manager/internal/models"
	"vacation-manager/internal/repository"

	"github.com/sirupsen/logrus"
)

type SupervisorService struct {
	repo   repository.SupervisorRepository
	logger *logrus.Logger
}

func NewSupervisorService(repo repository.SupervisorRepository, logger *logrus.Logger) *SupervisorService {
	return &SupervisorService{repo: repo, logger: logger}
}

// Register creates a supervisor account linked to an external identity.
func (s *SupervisorService) Register(supervisor *models.Supervisor) error {
	missing := missingFields(map[string]string{
		"firebase_uid": supervisor.FirebaseUID,
		"email":        supervisor.Email,
		"first_name":   supervisor.FirstName,
		"last_name":    supervisor.LastName,
		"department":   supervisor.Department,
		"shift":        supervisor.Shift,
	})
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required field: %s", ErrValidation, strings.Join(missing, ", "))
	}

	if err := s.repo.Create(supervisor); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return fmt.Errorf("email or firebase uid already exists: %w", err)
		}
		return fmt.Errorf("create supervisor: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"id":         supervisor.ID,
		"department": supervisor.Department,
	}).Info("Supervisor registered")
	return nil
}

func (s *SupervisorService) GetByFirebaseUID(uid string) (*models.Supervisor, error) {
	return s.repo.GetByFirebaseUID(uid)
}

func (s *SupervisorService) GetByID(id uint) (*models.Supervisor, error) {
	return s.repo.GetByID(id)
}

func (s *SupervisorService) List() ([]models.Supervisor, error) {
	return s.repo.GetAll()
}
