package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// Client wraps the bot API for the single admin chat that receives operational alerts.
type Client struct {
	Bot          *tgbotapi.BotAPI
	UpdateConfig tgbotapi.UpdateConfig
	AdminChatID  int64
	logger       *logrus.Logger
}

func NewClient(token string, adminChatID int64, logger *logrus.Logger) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60

	return &Client{
		Bot:          bot,
		UpdateConfig: updateConfig,
		AdminChatID:  adminChatID,
		logger:       logger,
	}, nil
}

// Updates starts long polling for incoming messages.
func (c *Client) Updates() tgbotapi.UpdatesChannel {
	return c.Bot.GetUpdatesChan(c.UpdateConfig)
}

// StopUpdates ends long polling; the updates channel is closed afterwards.
func (c *Client) StopUpdates() {
	c.Bot.StopReceivingUpdates()
}

// Send posts a plain message to any chat
func (c *Client) Send(chatID int64, text string) error {
	_, err := c.Bot.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

// SendText posts a plain message to the admin chat
func (c *Client) SendText(text string) error {
	return c.Send(c.AdminChatID, text)
}

// ReportDeliveryFailure - alert about a reminder that could not be delivered
func (c *Client) ReportDeliveryFailure(supervisorID, vacationRequestID uint, phoneNumber string, cause error) {
	text := FormatDeliveryFailure(supervisorID, vacationRequestID, phoneNumber, cause)
	if err := c.SendText(text); err != nil {
		c.logger.WithError(err).WithFields(logrus.Fields{
			"supervisor_id":       supervisorID,
			"vacation_request_id": vacationRequestID,
		}).Warn("Failed to send delivery failure alert to Telegram")
	}
}

func FormatDeliveryFailure(supervisorID, vacationRequestID uint, phoneNumber string, cause error) string {
	return fmt.Sprintf("❌ Vacation reminder failed\nSupervisor: %d\nRequest: %d\nPhone: %s\nError: %v",
		supervisorID, vacationRequestID, phoneNumber, cause)
}
