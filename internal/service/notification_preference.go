package service

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"vacation-manager/internal/models"
	"vacation-manager/internal/repository"

	"github.com/sirupsen/logrus"
)

// Rescheduler rebuilds the notification timers from the full preference set.
type Rescheduler interface {
	Reschedule(prefs []models.NotificationPreference)
}

// PreferenceInput - fields accepted from the web layer
type PreferenceInput struct {
	SMSEnabled          bool
	DaysBeforeVacation  int
	NotificationsPerDay int
	NotificationTimes   []string
	PhoneNumberOverride *string
	Timezone            string
}

type NotificationPreferenceService struct {
	repo           repository.NotificationPreferenceRepository
	supervisorRepo repository.SupervisorRepository
	rescheduler    Rescheduler
	logger         *logrus.Logger
}

func NewNotificationPreferenceService(
	repo repository.NotificationPreferenceRepository,
	supervisorRepo repository.SupervisorRepository,
	rescheduler Rescheduler,
	logger *logrus.Logger,
) *NotificationPreferenceService {
	return &NotificationPreferenceService{
		repo:           repo,
		supervisorRepo: supervisorRepo,
		rescheduler:    rescheduler,
		logger:         logger,
	}
}

// Get returns the stored preference or the defaults when the supervisor never saved one.
func (s *NotificationPreferenceService) Get(supervisorID uint) (*models.NotificationPreference, error) {
	pref, err := s.repo.GetBySupervisorID(supervisorID)
	if err != nil {
		return nil, fmt.Errorf("load notification preference: %w", err)
	}
	if pref == nil {
		def := models.DefaultNotificationPreference(supervisorID)
		return &def, nil
	}
	return pref, nil
}

// Update validates and stores the preference, then rebuilds the scheduler.
func (s *NotificationPreferenceService) Update(supervisorID uint, input PreferenceInput) (*models.NotificationPreference, error) {
	pref, err := BuildPreference(supervisorID, input)
	if err != nil {
		s.logger.WithError(err).WithField("supervisor_id", supervisorID).Warn("Rejected notification preference")
		return nil, err
	}

	if err := s.repo.Upsert(pref); err != nil {
		s.logger.WithError(err).WithField("supervisor_id", supervisorID).Error("Failed to save notification preference")
		return nil, fmt.Errorf("save notification preference: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"supervisor_id": supervisorID,
		"sms_enabled":   pref.SMSEnabled,
		"days_before":   pref.DaysBeforeVacation,
		"per_day":       pref.NotificationsPerDay,
		"times":         pref.NotificationTimes,
		"timezone":      pref.Timezone,
	}).Info("Notification preference updated")

	if err := s.RescheduleAll(); err != nil {
		return pref, err
	}
	return pref, nil
}

// RescheduleAll feeds the preference of every supervisor to the scheduler, defaults included.
func (s *NotificationPreferenceService) RescheduleAll() error {
	if s.rescheduler == nil {
		return nil
	}

	prefs, err := LoadEffectivePreferences(s.repo, s.supervisorRepo)
	if err != nil {
		s.logger.WithError(err).Error("Failed to load preferences for rescheduling")
		return fmt.Errorf("load preferences for rescheduling: %w", err)
	}

	s.rescheduler.Reschedule(prefs)
	return nil
}

// LoadEffectivePreferences reads stored rows and every supervisor and merges them with EffectivePreferences.
func LoadEffectivePreferences(
	prefRepo repository.NotificationPreferenceRepository,
	supervisorRepo repository.SupervisorRepository,
) ([]models.NotificationPreference, error) {
	stored, err := prefRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("load preferences: %w", err)
	}
	supervisors, err := supervisorRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("load supervisors: %w", err)
	}
	return EffectivePreferences(supervisors, stored), nil
}

// EffectivePreferences returns the stored rows plus defaults for supervisors who never saved one,
// ordered by supervisor.
func EffectivePreferences(supervisors []models.Supervisor, stored []models.NotificationPreference) []models.NotificationPreference {
	prefs := make([]models.NotificationPreference, 0, len(supervisors)+len(stored))
	saved := make(map[uint]struct{}, len(stored))
	for _, pref := range stored {
		saved[pref.SupervisorID] = struct{}{}
		prefs = append(prefs, pref)
	}
	for _, supervisor := range supervisors {
		if _, ok := saved[supervisor.ID]; !ok {
			prefs = append(prefs, models.DefaultNotificationPreference(supervisor.ID))
		}
	}

	sort.SliceStable(prefs, func(i, j int) bool {
		return prefs[i].SupervisorID < prefs[j].SupervisorID
	})
	return prefs
}

// BuildPreference validates input and returns the row to persist.
func BuildPreference(supervisorID uint, input PreferenceInput) (*models.NotificationPreference, error) {
	var problems []string

	if input.DaysBeforeVacation < models.MinDaysBeforeVacation || input.DaysBeforeVacation > models.MaxDaysBeforeVacation {
		problems = append(problems, fmt.Sprintf("days_before_vacation must be between %d and %d",
			models.MinDaysBeforeVacation, models.MaxDaysBeforeVacation))
	}
	if input.NotificationsPerDay < models.MinNotificationsPerDay || input.NotificationsPerDay > models.MaxNotificationsPerDay {
		problems = append(problems, fmt.Sprintf("notifications_per_day must be between %d and %d",
			models.MinNotificationsPerDay, models.MaxNotificationsPerDay))
	}

	times := make([]string, 0, len(input.NotificationTimes))
	for _, raw := range input.NotificationTimes {
		normalized, err := NormalizeClockTime(raw)
		if err != nil {
			problems = append(problems, err.Error())
			continue
		}
		times = append(times, normalized)
	}
	if len(input.NotificationTimes) == 0 {
		times = []string{models.DefaultNotificationTime}
	}

	timezone := strings.TrimSpace(input.Timezone)
	if timezone == "" {
		timezone = models.DefaultTimezone
	}
	if _, err := time.LoadLocation(timezone); err != nil {
		problems = append(problems, fmt.Sprintf("unknown timezone %q", timezone))
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, strings.Join(problems, "; "))
	}

	pref := &models.NotificationPreference{
		SupervisorID:        supervisorID,
		SMSEnabled:          input.SMSEnabled,
		DaysBeforeVacation:  input.DaysBeforeVacation,
		NotificationsPerDay: input.NotificationsPerDay,
		Timezone:            timezone,
	}
	pref.SetTimes(times)

	if input.PhoneNumberOverride != nil {
		if override := strings.TrimSpace(*input.PhoneNumberOverride); override != "" {
			pref.PhoneNumberOverride = &override
		}
	}

	return pref, nil
}

// NormalizeClockTime accepts "HH:MM" or "HH:MM:SS" and returns "HH:MM".
func NormalizeClockTime(value string) (string, error) {
	value = strings.TrimSpace(value)
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("15:04"), nil
		}
	}
	return "", fmt.Errorf("invalid notification time %q, expected HH:MM", value)
}
