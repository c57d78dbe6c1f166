package sms

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestErrorCode(t *testing.T) {
	err := fmt.Errorf("send reminder: %w", &Error{Code: "21211", Message: "invalid To number"})
	assert.Equal(t, "21211", ErrorCode(err))
	assert.Equal(t, "invalid To number (code 21211)", errors.Unwrap(err).Error())
	assert.Equal(t, "", ErrorCode(errors.New("boom")))
}

func TestNewTwilioSenderRequiresCredentials(t *testing.T) {
	_, err := NewTwilioSender("", "token", "+15125550000", quietLogger())
	assert.Error(t, err)

	_, err = NewTwilioSender("AC123", "token", "", quietLogger())
	assert.Error(t, err)

	sender, err := NewTwilioSender("AC123", "token", "+15125550000", quietLogger())
	require.NoError(t, err)
	assert.Equal(t, "+15125550000", sender.from)
}

func TestLogSender(t *testing.T) {
	sender := NewLogSender(quietLogger())

	result, err := sender.Send(context.Background(), "+15125550100", "hello")
	require.NoError(t, err)
	assert.Equal(t, "log-15125550100", result.ID)
	assert.Equal(t, "logged", result.Status)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = sender.Send(ctx, "+15125550100", "hello")
	assert.ErrorIs(t, err, context.Canceled)
}
