package service

import (
	"time"
	"vacation-manager/internal/models"
	"vacation-manager/internal/repository"
	"vacation-manager/pkg/closures"

	"github.com/sirupsen/logrus"
)

type NonWorkingDayService struct {
	repo   repository.NonWorkingDayRepository
	logger *logrus.Logger
}

func NewNonWorkingDayService(repo repository.NonWorkingDayRepository, logger *logrus.Logger) *NonWorkingDayService {
	return &NonWorkingDayService{repo: repo, logger: logger}
}

// LoadFromJSON replaces stored closures with the contents of the file.
func (s *NonWorkingDayService) LoadFromJSON(filePath string) (int, error) {
	days, err := closures.ParseFile(filePath)
	if err != nil {
		return 0, err
	}

	nonWorkingDays := make([]models.NonWorkingDay, 0, len(days))
	for _, d := range days {
		nonWorkingDays = append(nonWorkingDays, models.NonWorkingDay{
			Date:  d.Date,
			Year:  d.Year,
			Month: d.Month,
			Day:   d.Day,
		})
	}

	if err := s.repo.ReplaceAll(nonWorkingDays); err != nil {
		return 0, err
	}

	s.logger.WithFields(logrus.Fields{
		"file":  filePath,
		"count": len(nonWorkingDays),
	}).Info("Non-working days loaded")

	return len(nonWorkingDays), nil
}

// Dates returns every stored closure date.
func (s *NonWorkingDayService) Dates() ([]time.Time, error) {
	days, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}

	dates := make([]time.Time, 0, len(days))
	for _, d := range days {
		dates = append(dates, d.Date)
	}
	return dates, nil
}

// ForYear returns the closure dates of one year in calendar order.
func (s *NonWorkingDayService) ForYear(year int) ([]time.Time, error) {
	days, err := s.repo.GetByYear(year)
	if err != nil {
		return nil, err
	}

	dates := make([]time.Time, 0, len(days))
	for _, d := range days {
		dates = append(dates, d.Date)
	}
	return dates, nil
}

func (s *NonWorkingDayService) IsNonWorkingDay(date time.Time) (bool, error) {
	return s.repo.IsNonWorkingDay(date)
}
