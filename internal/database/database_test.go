package database

import (
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenInMemory(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	db, err := Open("file:"+uuid.NewString()+"?mode=memory&cache=shared", logger)
	require.NoError(t, err)

	var enabled int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&enabled).Error)
	assert.Equal(t, 1, enabled)

	assert.NoError(t, Close(db))
}
