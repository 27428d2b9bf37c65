package logging

import (
	"bytes"
	"encoding/json"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(logrus.InfoLevel, "json", &buf)
	require.NoError(t, err)

	logger.WithField("hotel", "The River Lee").Info("Listed")
	logger.Debug("dropped")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Listed", entry["msg"])
	assert.Equal(t, "The River Lee", entry["hotel"])
	assert.Equal(t, "info", entry["level"])
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(logrus.DebugLevel, "text", &buf)
	require.NoError(t, err)

	logger.WithField("filter", "Spa").Debug("Applied filter")
	assert.Contains(t, buf.String(), "Applied filter")
	assert.Contains(t, buf.String(), "filter=Spa")
}

func TestNew_UnknownFormat(t *testing.T) {
	_, err := New(logrus.InfoLevel, "xml", &bytes.Buffer{})
	assert.Error(t, err)
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	assert.Equal(t, io.Discard, logger.Out)

	// entries still reach hooks, so callers may observe them
	hook := test.NewLocal(logger)
	logger.Info("dropped")
	assert.Len(t, hook.AllEntries(), 1)
}
