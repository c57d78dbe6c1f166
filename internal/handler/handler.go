package handler

import (
	"context"
	"time"
	"vacation-manager/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// Messenger delivers a text reply to a chat.
type Messenger interface {
	Send(chatID int64, text string) error
}

// SweepRunner is the part of the scheduler the admin commands drive.
type SweepRunner interface {
	RunNow(ctx context.Context) (service.SweepResult, bool, error)
	SlotLabels() []string
}

// Services are the domain services the admin commands route through.
type Services struct {
	Supervisors *service.SupervisorService
	Employees   *service.EmployeeService
	Vacations   *service.VacationRequestService
	Closures    *service.NonWorkingDayService
	Preferences *service.NotificationPreferenceService
}

// Handler answers operator commands sent to the bot from the admin chat.
type Handler struct {
	messenger    Messenger
	adminChatID  int64
	scheduler    SweepRunner
	services     Services
	closuresFile string
	logger       *logrus.Logger
	now          func() time.Time
}

func NewHandler(
	messenger Messenger,
	adminChatID int64,
	scheduler SweepRunner,
	services Services,
	closuresFile string,
	logger *logrus.Logger,
) *Handler {
	return &Handler{
		messenger:    messenger,
		adminChatID:  adminChatID,
		scheduler:    scheduler,
		services:     services,
		closuresFile: closuresFile,
		logger:       logger,
		now:          time.Now,
	}
}

// HandleUpdates consumes updates until the channel is closed.
func (h *Handler) HandleUpdates(updates tgbotapi.UpdatesChannel) {
	for update := range updates {
		if update.Message == nil {
			continue
		}

		h.handleMessage(update.Message)
	}
}

func (h *Handler) handleMessage(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	entry := h.logger.WithFields(logrus.Fields{
		"chat_id": chatID,
		"text":    message.Text,
	})
	if message.From != nil {
		entry = entry.WithField("user", message.From.UserName)
	}
	entry.Debug("Telegram message received")

	if chatID != h.adminChatID {
		entry.Warn("Ignoring message from non-admin chat")
		h.reply(chatID, "❌ Access denied. This bot only answers the operations chat.")
		return
	}

	if !message.IsCommand() {
		h.reply(chatID, "Send /help for the list of commands.")
		return
	}

	h.handleCommand(message)
}

func (h *Handler) reply(chatID int64, text string) {
	if err := h.messenger.Send(chatID, text); err != nil {
		h.logger.WithError(err).WithField("chat_id", chatID).Warn("Failed to send Telegram reply")
	}
}
