package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"vacation-manager/internal/metrics"
	"vacation-manager/internal/models"
	"vacation-manager/internal/repository"
	"vacation-manager/pkg/holidays"
	"vacation-manager/pkg/phone"
	"vacation-manager/pkg/sms"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// CandidateHorizonDays bounds the vacation query independently of the lead time.
const CandidateHorizonDays = 30

// Skip reasons reported in logs and metrics
const (
	SkipOutsideWindow = "outside_window"
	SkipCapReached    = "cap_reached"
	SkipNoPhone       = "no_phone"
)

// FailureReporter is told about every reminder the transport rejected.
type FailureReporter interface {
	ReportDeliveryFailure(supervisorID, vacationRequestID uint, phoneNumber string, cause error)
}

// SweepResult - counters of a single sweep
type SweepResult struct {
	SweepID     string
	Preferences int
	Candidates  int
	Sent        int
	Failed      int
	Skipped     map[string]int
}

type NotificationDispatcher struct {
	preferenceRepo repository.NotificationPreferenceRepository
	vacationRepo   repository.VacationRequestRepository
	historyRepo    repository.NotificationHistoryRepository
	supervisorRepo repository.SupervisorRepository
	sender         sms.Sender
	reporter       FailureReporter
	location       *time.Location
	now            func() time.Time
	logger         *logrus.Logger
}

func NewNotificationDispatcher(
	preferenceRepo repository.NotificationPreferenceRepository,
	vacationRepo repository.VacationRequestRepository,
	historyRepo repository.NotificationHistoryRepository,
	supervisorRepo repository.SupervisorRepository,
	sender sms.Sender,
	location *time.Location,
	logger *logrus.Logger,
) *NotificationDispatcher {
	if location == nil {
		location = time.UTC
	}
	return &NotificationDispatcher{
		preferenceRepo: preferenceRepo,
		vacationRepo:   vacationRepo,
		historyRepo:    historyRepo,
		supervisorRepo: supervisorRepo,
		sender:         sender,
		location:       location,
		now:            time.Now,
		logger:         logger,
	}
}

// WithFailureReporter sets where transport failures are reported in addition to the history log.
func (d *NotificationDispatcher) WithFailureReporter(reporter FailureReporter) *NotificationDispatcher {
	d.reporter = reporter
	return d
}

// WithClock replaces the time source.
func (d *NotificationDispatcher) WithClock(now func() time.Time) *NotificationDispatcher {
	d.now = now
	return d
}

// Sweep sends due reminders for every supervisor whose effective preference is enabled.
// Supervisors without a stored preference use the defaults.
//
// A failing preference or supervisor query aborts the sweep. A store failure while handling one supervisor
// abandons only that supervisor; the error is logged and returned joined with the others once
// every supervisor has been visited. Transport failures are never returned, they end up in history.
func (d *NotificationDispatcher) Sweep(ctx context.Context) (SweepResult, error) {
	started := time.Now()
	result := SweepResult{
		SweepID: uuid.NewString(),
		Skipped: map[string]int{},
	}
	log := d.logger.WithField("sweep_id", result.SweepID)

	prefs, err := LoadEffectivePreferences(d.preferenceRepo, d.supervisorRepo)
	if err != nil {
		metrics.Sweeps.WithLabelValues("error").Inc()
		log.WithError(err).Error("Failed to load notification preferences")
		return result, err
	}

	var errs []error
	for i := range prefs {
		pref := &prefs[i]
		if !pref.SMSEnabled {
			continue
		}
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		result.Preferences++
		if err := d.sweepPreference(ctx, pref, &result, log); err != nil {
			log.WithError(err).WithField("supervisor_id", pref.SupervisorID).
				Error("Reminder sweep aborted for supervisor")
			errs = append(errs, fmt.Errorf("supervisor %d: %w", pref.SupervisorID, err))
		}
	}

	metrics.SweepDuration.Observe(time.Since(started).Seconds())
	if len(errs) > 0 {
		metrics.Sweeps.WithLabelValues("partial").Inc()
	} else {
		metrics.Sweeps.WithLabelValues("ok").Inc()
	}

	log.WithFields(logrus.Fields{
		"preferences": result.Preferences,
		"candidates":  result.Candidates,
		"sent":        result.Sent,
		"failed":      result.Failed,
		"skipped":     result.Skipped,
	}).Info("Reminder sweep finished")

	return result, errors.Join(errs...)
}

func (d *NotificationDispatcher) sweepPreference(
	ctx context.Context,
	pref *models.NotificationPreference,
	result *SweepResult,
	log *logrus.Entry,
) error {
	loc := d.preferenceLocation(pref, log)
	now := d.now().In(loc)
	today := holidays.DateOf(now)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	candidates, err := d.vacationRepo.GetApprovedStartingBetween(
		pref.SupervisorID, today, today.AddDate(0, 0, CandidateHorizonDays))
	if err != nil {
		return fmt.Errorf("load approved vacations: %w", err)
	}

	resolver := &phoneResolver{pref: pref, repo: d.supervisorRepo}

	for i := range candidates {
		vacation := &candidates[i]
		result.Candidates++

		entry := log.WithFields(logrus.Fields{
			"supervisor_id":       pref.SupervisorID,
			"vacation_request_id": vacation.ID,
		})

		window := EvaluateWindow(vacation.StartDate, today, pref.DaysBeforeVacation)
		if !window.InWindow {
			d.skip(result, SkipOutsideWindow)
			entry.WithField("days_until", window.DaysUntil).Debug("Vacation outside lead-time window")
			continue
		}

		sentToday, err := d.historyRepo.CountSentBetween(pref.SupervisorID, vacation.ID, dayStart, dayEnd)
		if err != nil {
			return fmt.Errorf("count sent reminders: %w", err)
		}
		if sentToday >= int64(pref.NotificationsPerDay) {
			d.skip(result, SkipCapReached)
			entry.WithField("sent_today", sentToday).Debug("Daily reminder cap reached")
			continue
		}

		rawPhone, err := resolver.resolve()
		if err != nil {
			return fmt.Errorf("resolve phone: %w", err)
		}
		if rawPhone == "" {
			d.skip(result, SkipNoPhone)
			entry.Warn("No phone number for supervisor, reminder skipped")
			continue
		}

		if err := d.deliver(ctx, pref, vacation, window.DaysUntil, phone.Normalize(rawPhone), result, entry); err != nil {
			return err
		}
	}

	return nil
}

func (d *NotificationDispatcher) deliver(
	ctx context.Context,
	pref *models.NotificationPreference,
	vacation *models.VacationRequest,
	daysUntil int,
	to string,
	result *SweepResult,
	log *logrus.Entry,
) error {
	body := FormatReminder(employeeName(vacation), vacation.StartDate, vacation.EndDate, vacation.TotalHours, daysUntil)

	sendResult, sendErr := d.sender.Send(ctx, to, body)
	attemptAt := d.now().UTC()

	history := &models.NotificationHistory{
		SupervisorID:      pref.SupervisorID,
		VacationRequestID: vacation.ID,
		PhoneNumber:       to,
		MessageContent:    body,
		SentAt:            &attemptAt,
	}

	if sendErr != nil {
		history.Status = models.NotificationStatusFailed
		history.ErrorMessage = stringPtr(sendErr.Error())
		if code := sms.ErrorCode(sendErr); code != "" {
			history.ErrorCode = stringPtr(code)
		}
		result.Failed++
		metrics.SMSAttempts.WithLabelValues(models.NotificationStatusFailed).Inc()
		log.WithError(sendErr).WithField("to", to).Warn("Vacation reminder failed")

		if d.reporter != nil {
			d.reporter.ReportDeliveryFailure(pref.SupervisorID, vacation.ID, to, sendErr)
		}
	} else {
		history.Status = models.NotificationStatusSent
		history.TransportID = optionalString(sendResult.ID)
		history.TransportStatus = optionalString(sendResult.Status)
		result.Sent++
		metrics.SMSAttempts.WithLabelValues(models.NotificationStatusSent).Inc()
		log.WithFields(logrus.Fields{
			"to":         to,
			"days_until": daysUntil,
			"sid":        sendResult.ID,
		}).Info("Vacation reminder sent")
	}

	if err := d.historyRepo.Create(history); err != nil {
		return fmt.Errorf("record notification history: %w", err)
	}
	return nil
}

func (d *NotificationDispatcher) skip(result *SweepResult, reason string) {
	result.Skipped[reason]++
	metrics.SkippedCandidates.WithLabelValues(reason).Inc()
}

// preferenceLocation - the supervisor's own zone decides what "today" means for them
func (d *NotificationDispatcher) preferenceLocation(pref *models.NotificationPreference, log *logrus.Entry) *time.Location {
	if pref.Timezone == "" {
		return d.location
	}
	loc, err := time.LoadLocation(pref.Timezone)
	if err != nil {
		log.WithError(err).WithField("supervisor_id", pref.SupervisorID).
			Warn("Unknown preference timezone, using scheduler timezone")
		return d.location
	}
	return loc
}

// phoneResolver loads the supervisor profile at most once per preference.
type phoneResolver struct {
	pref     *models.NotificationPreference
	repo     repository.SupervisorRepository
	resolved bool
	phone    string
}

func (r *phoneResolver) resolve() (string, error) {
	if override := r.pref.OverridePhone(); override != "" {
		return override, nil
	}
	if r.resolved {
		return r.phone, nil
	}

	supervisor, err := r.repo.GetByID(r.pref.SupervisorID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return "", err
	}
	if supervisor != nil {
		r.phone = strings.TrimSpace(supervisor.PhoneNumber)
	}
	r.resolved = true
	return r.phone, nil
}

func employeeName(vacation *models.VacationRequest) string {
	if name := vacation.Employee.FullName(); name != "" {
		return name
	}
	return fmt.Sprintf("Employee #%d", vacation.EmployeeID)
}

func stringPtr(s string) *string {
	return &s
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
