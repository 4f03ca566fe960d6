package logging

import (
	"bytes"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupInfoIsBare(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Setup("info", &buf))

	log.WithField("wd", 1).Info("IN_CREATE a.txt")
	log.Debug("hidden")
	log.Warn("careful")

	out := buf.String()
	assert.Contains(t, out, "IN_CREATE a.txt\n")
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `level=warning msg=careful`)
}

func TestSetupDebugUsesFields(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Setup("debug", &buf))
	defer Setup("info", nil)

	log.WithField("wd", 1).Info("event")
	assert.Contains(t, buf.String(), "wd=1")
	assert.Equal(t, log.DebugLevel, log.GetLevel())
}

func TestSetupRejectsUnknownLevel(t *testing.T) {
	err := Setup("loud", nil)
	assert.ErrorContains(t, err, `log level "loud"`)
}
