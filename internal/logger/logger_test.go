package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]logrus.Level{
		"trace":   logrus.TraceLevel,
		"DEBUG":   logrus.DebugLevel,
		" warn ":  logrus.WarnLevel,
		"warning": logrus.WarnLevel,
		"error":   logrus.ErrorLevel,
		"":        logrus.InfoLevel,
		"bogus":   logrus.InfoLevel,
	}
	for in, want := range cases {
		require.Equal(t, want, parseLevel(in), "level=%q", in)
	}
}

func TestNewWithOutput_JSONOutsideDevelopment(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithOutput(&buf, "info", "production")

	l.WithField("component", "relay").Info("hello")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "hello", entry["msg"])
	require.Equal(t, "relay", entry["component"])
}

func TestNewWithOutput_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithOutput(&buf, "warn", "production")

	l.Info("dropped")
	require.Zero(t, buf.Len())

	l.Warn("kept")
	require.Contains(t, buf.String(), "kept")
}
