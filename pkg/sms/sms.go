package sms

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/twilio/twilio-go"
	twilioclient "github.com/twilio/twilio-go/client"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Result - what the transport reports back for an accepted message
type Result struct {
	ID     string
	Status string
}

// Sender is the outbound SMS capability.
type Sender interface {
	Send(ctx context.Context, to, body string) (Result, error)
}

// Error - transport-level failure with the provider's error code when it has one
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return fmt.Sprintf("%s (code %s)", e.Message, e.Code)
}

// ErrorCode extracts the provider error code from err, if any.
func ErrorCode(err error) string {
	var smsErr *Error
	if errors.As(err, &smsErr) {
		return smsErr.Code
	}
	return ""
}

type TwilioSender struct {
	client *twilio.RestClient
	from   string
	logger *logrus.Logger
}

func NewTwilioSender(accountSID, authToken, from string, logger *logrus.Logger) (*TwilioSender, error) {
	if accountSID == "" || authToken == "" {
		return nil, errors.New("twilio credentials are not configured")
	}
	if from == "" {
		return nil, errors.New("twilio sender number is not configured")
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})

	return &TwilioSender{client: client, from: from, logger: logger}, nil
}

func (s *TwilioSender) Send(ctx context.Context, to, body string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		var restErr *twilioclient.TwilioRestError
		if errors.As(err, &restErr) {
			return Result{}, &Error{Code: fmt.Sprint(restErr.Code), Message: restErr.Message}
		}
		return Result{}, &Error{Message: err.Error()}
	}

	result := Result{}
	if resp.Sid != nil {
		result.ID = *resp.Sid
	}
	if resp.Status != nil {
		result.Status = *resp.Status
	}

	s.logger.WithFields(logrus.Fields{
		"to":     to,
		"sid":    result.ID,
		"status": result.Status,
	}).Debug("SMS accepted by Twilio")

	return result, nil
}

// LogSender only logs messages. Used when no SMS provider is configured.
type LogSender struct {
	logger *logrus.Logger
}

func NewLogSender(logger *logrus.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(ctx context.Context, to, body string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	s.logger.WithFields(logrus.Fields{
		"to":   to,
		"body": body,
	}).Info("SMS provider not configured, message logged only")

	return Result{ID: "log-" + strings.TrimPrefix(to, "+"), Status: "logged"}, nil
}
