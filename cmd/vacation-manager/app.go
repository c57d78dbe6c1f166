package main

import (
	"fmt"
	"vacation-manager/internal/config"
	"vacation-manager/internal/database"
	"vacation-manager/internal/handler"
	"vacation-manager/internal/repository"
	"vacation-manager/internal/service"
	"vacation-manager/pkg/sms"
	"vacation-manager/pkg/telegram"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// app holds the wired services shared by the subcommands.
type app struct {
	cfg    *config.Config
	logger *logrus.Logger
	db     *gorm.DB

	supervisorRepo repository.SupervisorRepository
	preferenceRepo repository.NotificationPreferenceRepository

	supervisors *service.SupervisorService
	employees   *service.EmployeeService
	vacations   *service.VacationRequestService
	closures    *service.NonWorkingDayService
	preferences *service.NotificationPreferenceService
	dispatcher  *service.NotificationDispatcher
	telegram    *telegram.Client
}

func newApp(cfg *config.Config, logger *logrus.Logger) (*app, error) {
	db, err := database.Open(cfg.DatabaseURL, logger)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: logger, db: db}
	if err := a.wire(); err != nil {
		_ = database.Close(db)
		return nil, err
	}
	return a, nil
}

func (a *app) wire() error {
	var err error
	a.supervisorRepo, err = repository.NewGormSupervisorRepository(a.db)
	if err != nil {
		return fmt.Errorf("create supervisor repository: %w", err)
	}
	employeeRepo, err := repository.NewGormEmployeeRepository(a.db)
	if err != nil {
		return fmt.Errorf("create employee repository: %w", err)
	}
	vacationRepo, err := repository.NewGormVacationRequestRepository(a.db)
	if err != nil {
		return fmt.Errorf("create vacation request repository: %w", err)
	}
	a.preferenceRepo, err = repository.NewGormNotificationPreferenceRepository(a.db)
	if err != nil {
		return fmt.Errorf("create notification preference repository: %w", err)
	}
	historyRepo, err := repository.NewGormNotificationHistoryRepository(a.db)
	if err != nil {
		return fmt.Errorf("create notification history repository: %w", err)
	}
	closureRepo, err := repository.NewGormNonWorkingDayRepository(a.db)
	if err != nil {
		return fmt.Errorf("create non-working day repository: %w", err)
	}

	a.supervisors = service.NewSupervisorService(a.supervisorRepo, a.logger)
	a.employees = service.NewEmployeeService(employeeRepo, a.logger)
	a.vacations = service.NewVacationRequestService(vacationRepo, employeeRepo, a.logger)
	a.closures = service.NewNonWorkingDayService(closureRepo, a.logger)
	a.loadClosures()

	sender, err := a.newSender()
	if err != nil {
		return err
	}

	a.dispatcher = service.NewNotificationDispatcher(
		a.preferenceRepo,
		vacationRepo,
		historyRepo,
		a.supervisorRepo,
		sender,
		a.cfg.Location(),
		a.logger,
	)

	if a.cfg.TelegramToken != "" {
		a.telegram, err = telegram.NewClient(a.cfg.TelegramToken, a.cfg.BaseAdminChatID, a.logger)
		if err != nil {
			return fmt.Errorf("create telegram client: %w", err)
		}
		a.logger.Infof("Telegram alerts enabled for account %s", a.telegram.Bot.Self.UserName)
		a.dispatcher.WithFailureReporter(a.telegram)
	}

	return nil
}

// withScheduler creates the preference service once the scheduler exists.
func (a *app) withScheduler(rescheduler service.Rescheduler) {
	a.preferences = service.NewNotificationPreferenceService(a.preferenceRepo, a.supervisorRepo, rescheduler, a.logger)
}

// services bundles what the admin console routes through. Call after withScheduler.
func (a *app) services() handler.Services {
	return handler.Services{
		Supervisors: a.supervisors,
		Employees:   a.employees,
		Vacations:   a.vacations,
		Closures:    a.closures,
		Preferences: a.preferences,
	}
}

func (a *app) newSender() (sms.Sender, error) {
	if a.cfg.DryRun || !a.cfg.TwilioConfigured() {
		a.logger.Warn("Twilio is not configured or dry run is on, reminders will only be logged")
		return sms.NewLogSender(a.logger), nil
	}

	sender, err := sms.NewTwilioSender(a.cfg.TwilioAccountSID, a.cfg.TwilioAuthToken, a.cfg.TwilioFromNumber, a.logger)
	if err != nil {
		return nil, fmt.Errorf("create twilio sender: %w", err)
	}
	return sender, nil
}

// loadClosures refreshes stored closures from file, then feeds every stored closure to the calculator.
func (a *app) loadClosures() {
	if a.cfg.NonWorkingDaysFile != "" {
		if _, err := a.closures.LoadFromJSON(a.cfg.NonWorkingDaysFile); err != nil {
			a.logger.WithError(err).WithField("file", a.cfg.NonWorkingDaysFile).
				Warn("Failed to load non-working days, keeping stored ones")
		}
	}

	dates, err := a.closures.Dates()
	if err != nil {
		a.logger.WithError(err).Warn("Failed to read non-working days")
		return
	}
	a.vacations.SetClosures(dates)
}

func (a *app) close() {
	if err := database.Close(a.db); err != nil {
		a.logger.WithError(err).Warn("Error closing database")
	}
}
